package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rishank14/serenityspace-cli/internal/buildinfo"
	"github.com/rishank14/serenityspace-cli/internal/client/cli"
	"github.com/rishank14/serenityspace-cli/internal/client/config"
	"github.com/rishank14/serenityspace-cli/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}

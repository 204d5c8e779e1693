package config

import (
	"flag"
	"os"
	"time"

	"github.com/rishank14/serenityspace-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend REST API (default from Config)
//	-s int      vault sweep interval in seconds (default from Config)
//	-d string   path of the local metadata database (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend REST API")
	sweepInterval := fs.Int("s", int(cfg.SweepInterval.Seconds()), "vault sweep interval (in seconds)")
	fs.StringVar(&cfg.MetadataDBPath, "d", cfg.MetadataDBPath, "path of the local metadata database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SweepInterval = time.Duration(*sweepInterval) * time.Second
}

package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	_ "modernc.org/sqlite"

	"github.com/rishank14/serenityspace-cli/internal/client/api"
	"github.com/rishank14/serenityspace-cli/internal/client/config"
	"github.com/rishank14/serenityspace-cli/internal/client/repositories/metadata"
	"github.com/rishank14/serenityspace-cli/internal/client/services"
	"github.com/rishank14/serenityspace-cli/internal/client/session"
	"github.com/rishank14/serenityspace-cli/internal/client/vault"
	"github.com/rishank14/serenityspace-cli/internal/common"
	"github.com/rishank14/serenityspace-cli/internal/logging"
)

// App ties the services together behind the REPL.
type App struct {
	config  *config.Config
	log     logging.Logger
	session *session.Session
	db      *sql.DB

	auth        services.AuthService
	vault       services.VaultService
	vents       services.VentService
	reflections services.ReflectionService
	chat        services.ChatService

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := metadata.Open(ctx, cfg.MetadataDBPath)
	if err != nil {
		return nil, err
	}

	sess := session.New()
	apiClient, err := api.NewRESTClient(cfg.APIBaseURL, cfg.RequestTimeout, sess, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	out := os.Stdout
	notifier := NewTerminalNotifier(out)
	reconciler := vault.NewReconciler(apiClient, notifier, log,
		vault.WithHighlightWindow(cfg.HighlightWindow))

	wsURL, err := vault.Endpoint(cfg.APIBaseURL)
	if err != nil {
		log.Warn(ctx, "push channel disabled", "error", err)
		wsURL = ""
	}

	return &App{
		config:      cfg,
		log:         log,
		session:     sess,
		db:          db,
		auth:        services.NewAuthService(apiClient, sess, db, log),
		vault:       services.NewVaultService(apiClient, sess, reconciler, wsURL, cfg.SweepInterval, log),
		vents:       services.NewVentService(apiClient, sess),
		reflections: services.NewReflectionService(apiClient, sess),
		chat:        services.NewChatService(apiClient, log),
		reader:      bufio.NewReader(os.Stdin),
		out:         out,
	}, nil
}

// Run restores any persisted session and drives the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	user, err := a.auth.Restore(ctx)
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "Welcome back, %s!\n", user.Username)
	case errors.Is(err, common.ErrNotSignedIn):
		// Nothing persisted; start signed out.
	default:
		a.log.Warn(ctx, "session restore failed", "error", err)
	}

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

// report prints err for the user. An expired session additionally wipes local
// state so the next prompt is the signed-out one.
func (a *App) report(ctx context.Context, err error) {
	var credErr *api.CredentialError
	switch {
	case errors.Is(err, api.ErrSessionExpired):
		a.session.Reset()
		if clearErr := a.clearPersistedSession(ctx); clearErr != nil {
			a.log.Warn(ctx, "clearing persisted session failed", "error", clearErr)
		}
		fmt.Fprintln(a.out, "Your session has expired. Please sign in again.")
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Cannot reach the server. Check your connection and try again.")
	case errors.As(err, &credErr):
		fmt.Fprintln(a.out, credErr.Message)
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}

func (a *App) clearPersistedSession(ctx context.Context) error {
	return metadata.NewSQLiteRepository(a.db).Clear(ctx)
}

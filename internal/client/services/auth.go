// Package services contains the application services behind the CLI: thin
// orchestration over the API client, the session, the local metadata store
// and the vault reconciler.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rishank14/serenityspace-cli/internal/client/api"
	"github.com/rishank14/serenityspace-cli/internal/client/models"
	"github.com/rishank14/serenityspace-cli/internal/client/repositories/metadata"
	"github.com/rishank14/serenityspace-cli/internal/client/session"
	"github.com/rishank14/serenityspace-cli/internal/common"
	"github.com/rishank14/serenityspace-cli/internal/dbx"
	"github.com/rishank14/serenityspace-cli/internal/logging"
)

// AuthService manages sign-in state.
//
// Contract:
//   - Login/Register: authenticate against the server, then persist the token
//     and user locally so a restarted client can restore the session.
//   - Restore: re-establish a persisted session; returns common.ErrNotSignedIn
//     when nothing is persisted.
//   - Logout: best-effort server call; local state is always cleared.
//
// All methods honor context cancellation.
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (models.User, error)
	Register(ctx context.Context, username, email, password string) (models.User, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (models.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	UpdateProfile(ctx context.Context, username, email string) (models.User, error)
}

type authService struct {
	client  api.Client
	session *session.Session
	db      *sql.DB
	log     logging.Logger
}

func NewAuthService(client api.Client, sess *session.Session, db *sql.DB, log logging.Logger) AuthService {
	return &authService{client: client, session: sess, db: db, log: log.With("component", "auth")}
}

func (a *authService) metadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (a *authService) Login(ctx context.Context, identifier, password string) (models.User, error) {
	result, err := a.client.Login(ctx, identifier, password)
	if err != nil {
		return models.User{}, err
	}
	return a.establish(ctx, result)
}

func (a *authService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	result, err := a.client.Register(ctx, username, email, password)
	if err != nil {
		return models.User{}, err
	}
	return a.establish(ctx, result)
}

// establish stores the fresh session in memory and on disk, in one
// transaction so a crash never leaves a token without its user.
func (a *authService) establish(ctx context.Context, result models.AuthResult) (models.User, error) {
	a.session.SetToken(result.AccessToken)
	a.session.SetUser(result.User)

	userJSON, err := json.Marshal(result.User)
	if err != nil {
		return models.User{}, fmt.Errorf("marshal user: %w", err)
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.metadataRepo(tx)
		if err := repo.Set(ctx, metadata.KeyAccessToken, []byte(result.AccessToken)); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyUser, userJSON)
	})
	if err != nil {
		return models.User{}, fmt.Errorf("persist session: %w", err)
	}

	return result.User, nil
}

// Logout tells the server to revoke the refresh credential and clears local
// state regardless of whether that call succeeded — the user asked to leave.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server logout failed", "error", err)
	}
	a.session.Reset()
	return a.metadataRepo(a.db).Clear(ctx)
}

// Restore loads a persisted token, verifies it against /users/current-user,
// and refreshes the persisted user object. A verification failure wipes the
// stale local session.
func (a *authService) Restore(ctx context.Context) (models.User, error) {
	repo := a.metadataRepo(a.db)

	token, err := repo.Get(ctx, metadata.KeyAccessToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.User{}, common.ErrNotSignedIn
		}
		return models.User{}, err
	}
	a.session.SetToken(string(token))

	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			return models.User{}, err
		}
		a.log.Info(ctx, "persisted session no longer valid")
		a.session.Reset()
		_ = repo.Clear(ctx)
		return models.User{}, common.ErrNotSignedIn
	}

	a.session.SetUser(user)
	if userJSON, err := json.Marshal(user); err == nil {
		_ = repo.Set(ctx, metadata.KeyUser, userJSON)
	}
	// The current-user probe may have refreshed the token transparently;
	// persist whatever the session holds now.
	_ = repo.Set(ctx, metadata.KeyAccessToken, []byte(a.session.Token()))

	return user, nil
}

func (a *authService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return a.client.ChangePassword(ctx, currentPassword, newPassword)
}

func (a *authService) UpdateProfile(ctx context.Context, username, email string) (models.User, error) {
	user, err := a.client.UpdateProfile(ctx, username, email)
	if err != nil {
		return models.User{}, err
	}
	a.session.SetUser(user)
	if userJSON, err := json.Marshal(user); err == nil {
		_ = a.metadataRepo(a.db).Set(ctx, metadata.KeyUser, userJSON)
	}
	return user, nil
}

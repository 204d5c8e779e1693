package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/rishank14/serenityspace-cli/internal/client/api"
	"github.com/rishank14/serenityspace-cli/internal/client/models"
	"github.com/rishank14/serenityspace-cli/internal/client/repositories/metadata"
	"github.com/rishank14/serenityspace-cli/internal/client/session"
	"github.com/rishank14/serenityspace-cli/internal/common"
)

func TestAuthService_LoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	db, err := metadata.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	user := models.User{ID: "u1", Username: "casey", Email: "casey@example.com"}
	client := &fakeClient{
		loginFunc: func(ctx context.Context, identifier, password string) (models.AuthResult, error) {
			assert.Equal(t, "casey@example.com", identifier)
			assert.Equal(t, "secret", password)
			return models.AuthResult{AccessToken: "tok-1", User: user}, nil
		},
	}

	sess := session.New()
	svc := NewAuthService(client, sess, db, testLogger())

	got, err := svc.Login(ctx, "casey@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	assert.Equal(t, "tok-1", sess.Token())
	assert.Equal(t, "u1", sess.UserID())

	repo := metadata.NewSQLiteRepository(db)
	tok, err := repo.Get(ctx, metadata.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok-1"), tok)
	_, err = repo.Get(ctx, metadata.KeyUser)
	require.NoError(t, err)
}

func TestAuthService_LoginFailureLeavesNoState(t *testing.T) {
	ctx := context.Background()
	db, err := metadata.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	client := &fakeClient{
		loginFunc: func(ctx context.Context, identifier, password string) (models.AuthResult, error) {
			return models.AuthResult{}, &api.CredentialError{Message: "Invalid user credentials"}
		},
	}

	sess := session.New()
	svc := NewAuthService(client, sess, db, testLogger())

	_, err = svc.Login(ctx, "casey@example.com", "wrong")
	var credErr *api.CredentialError
	require.ErrorAs(t, err, &credErr)

	assert.Empty(t, sess.Token())
	_, err = metadata.NewSQLiteRepository(db).Get(ctx, metadata.KeyAccessToken)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAuthService_LogoutClearsStateEvenWhenServerFails(t *testing.T) {
	ctx := context.Background()
	db, err := metadata.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo := metadata.NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, metadata.KeyAccessToken, []byte("tok")))

	client := &fakeClient{
		logoutFunc: func(ctx context.Context) error { return api.ErrUnavailable },
	}

	sess := signedInSession("u1")
	svc := NewAuthService(client, sess, db, testLogger())

	require.NoError(t, svc.Logout(ctx))

	assert.False(t, sess.Active())
	assert.Empty(t, sess.UserID())
	_, err = repo.Get(ctx, metadata.KeyAccessToken)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAuthService_RestoreWithoutPersistedToken(t *testing.T) {
	ctx := context.Background()
	db, err := metadata.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	svc := NewAuthService(&fakeClient{}, session.New(), db, testLogger())

	_, err = svc.Restore(ctx)
	assert.ErrorIs(t, err, common.ErrNotSignedIn)
}

func TestAuthService_RestoreVerifiesToken(t *testing.T) {
	ctx := context.Background()
	db, err := metadata.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, metadata.NewSQLiteRepository(db).Set(ctx, metadata.KeyAccessToken, []byte("tok-old")))

	user := models.User{ID: "u1", Username: "casey"}
	client := &fakeClient{
		currentUserFunc: func(ctx context.Context) (models.User, error) { return user, nil },
	}

	sess := session.New()
	svc := NewAuthService(client, sess, db, testLogger())

	got, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, got)
	assert.Equal(t, "tok-old", sess.Token())
	assert.Equal(t, "u1", sess.UserID())
}

func TestAuthService_RestoreWipesStaleSession(t *testing.T) {
	ctx := context.Background()
	db, err := metadata.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo := metadata.NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, metadata.KeyAccessToken, []byte("tok-stale")))

	client := &fakeClient{
		currentUserFunc: func(ctx context.Context) (models.User, error) {
			return models.User{}, api.ErrSessionExpired
		},
	}

	sess := session.New()
	svc := NewAuthService(client, sess, db, testLogger())

	_, err = svc.Restore(ctx)
	assert.ErrorIs(t, err, common.ErrNotSignedIn)
	assert.False(t, sess.Active())
	_, err = repo.Get(ctx, metadata.KeyAccessToken)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAuthService_RestoreKeepsStateWhenServerUnreachable(t *testing.T) {
	ctx := context.Background()
	db, err := metadata.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo := metadata.NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, metadata.KeyAccessToken, []byte("tok")))

	client := &fakeClient{
		currentUserFunc: func(ctx context.Context) (models.User, error) {
			return models.User{}, api.ErrUnavailable
		},
	}

	svc := NewAuthService(client, session.New(), db, testLogger())

	_, err = svc.Restore(ctx)
	assert.ErrorIs(t, err, api.ErrUnavailable)

	// The persisted token survives a transient outage.
	_, err = repo.Get(ctx, metadata.KeyAccessToken)
	assert.NoError(t, err)
}

func TestAuthService_UpdateProfileRefreshesSessionUser(t *testing.T) {
	ctx := context.Background()
	db, err := metadata.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	updated := models.User{ID: "u1", Username: "casey2", Email: "casey2@example.com"}
	client := &fakeClient{
		updateProfileFunc: func(ctx context.Context, username, email string) (models.User, error) {
			return updated, nil
		},
	}

	sess := signedInSession("u1")
	svc := NewAuthService(client, sess, db, testLogger())

	got, err := svc.UpdateProfile(ctx, "casey2", "casey2@example.com")
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	u, ok := sess.User()
	require.True(t, ok)
	assert.Equal(t, "casey2", u.Username)
}

func TestAuthService_ChangePasswordPassesThrough(t *testing.T) {
	ctx := context.Background()
	db, err := metadata.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	wantErr := errors.New("boom")
	client := &fakeClient{
		changePasswordFunc: func(ctx context.Context, currentPassword, newPassword string) error {
			assert.Equal(t, "old", currentPassword)
			assert.Equal(t, "new", newPassword)
			return wantErr
		},
	}

	svc := NewAuthService(client, signedInSession("u1"), db, testLogger())
	assert.ErrorIs(t, svc.ChangePassword(ctx, "old", "new"), wantErr)
}

package metadata

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/rishank14/serenityspace-cli/internal/common"
)

func TestSQLiteRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLiteRepository(db)

	_, err = repo.Get(ctx, KeyAccessToken)
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, repo.Set(ctx, KeyAccessToken, []byte("tok-1")))
	got, err := repo.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok-1"), got)

	// Upsert replaces.
	require.NoError(t, repo.Set(ctx, KeyAccessToken, []byte("tok-2")))
	got, err = repo.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok-2"), got)
}

func TestSQLiteRepository_Clear(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, KeyAccessToken, []byte("t")))
	require.NoError(t, repo.Set(ctx, KeyUser, []byte(`{"_id":"u1"}`)))

	require.NoError(t, repo.Clear(ctx))

	_, err = repo.Get(ctx, KeyAccessToken)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.Get(ctx, KeyUser)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteRepository_GetQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT value FROM metadata`).
		WithArgs(KeyUser).
		WillReturnError(errors.New("disk I/O error"))

	repo := NewSQLiteRepository(db)
	_, err = repo.Get(context.Background(), KeyUser)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_SetExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO metadata`).
		WithArgs(KeyUser, []byte("v")).
		WillReturnError(errors.New("database is locked"))

	repo := NewSQLiteRepository(db)
	require.Error(t, repo.Set(context.Background(), KeyUser, []byte("v")))
	require.NoError(t, mock.ExpectationsWereMet())
}

package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"usersvc/pkg/domain"
	"usersvc/pkg/storage"
	"usersvc/pkg/storage/postgres"

	"github.com/stretchr/testify/require"
)

func countUsernames(t *testing.T, db *sql.DB, username string) int {
	t.Helper()
	row := db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM users WHERE username = $1`, username)
	var c int
	require.NoError(t, row.Scan(&c))

	return c
}

func TestPgSQL_Begin_SuccessAndAlreadyInTx(t *testing.T) {
	t.Parallel()

	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	require.NotNil(t, txStorage)

	inner, ok := txStorage.(*postgres.PgSQL)
	require.True(t, ok)
	_, isTx := inner.DB.(*sql.Tx)
	require.True(t, isTx)

	_, err = inner.Begin(ctx)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)

	require.NoError(t, inner.Rollback())
}

func TestPgSQL_Commit_SuccessAndNotInTx(t *testing.T) {
	t.Parallel()

	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	db := pg.DB.(*sql.DB)
	ctx := context.Background()

	err := pg.Commit()
	require.ErrorIs(t, err, storage.ErrNotInTx)

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)

	_, err = txStorage.InsertUser(ctx, domain.UserCandidate{Username: "committed", Email: "committed@example.com"})
	require.NoError(t, err)
	// not visible outside the transaction yet
	require.Equal(t, 0, countUsernames(t, db, "committed"))

	require.NoError(t, txStorage.Commit())
	require.Equal(t, 1, countUsernames(t, db, "committed"))
}

func TestPgSQL_Rollback_SuccessAndNotInTx(t *testing.T) {
	t.Parallel()

	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	db := pg.DB.(*sql.DB)
	ctx := context.Background()

	err := pg.Rollback()
	require.ErrorIs(t, err, storage.ErrNotInTx)

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)

	_, err = txStorage.InsertUser(ctx, domain.UserCandidate{Username: "discarded", Email: "discarded@example.com"})
	require.NoError(t, err)

	require.NoError(t, txStorage.Rollback())
	require.Equal(t, 0, countUsernames(t, db, "discarded"))
}

func TestPgSQL_WithTx_CommitAndRollback(t *testing.T) {
	t.Parallel()

	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	db := pg.DB.(*sql.DB)
	ctx := context.Background()

	err := pg.WithTx(ctx, func(s storage.AllStorage) error {
		_, e := s.InsertUser(ctx, domain.UserCandidate{Username: "kept", Email: "kept@example.com"})

		return e //nolint: wrapcheck
	})
	require.NoError(t, err)
	require.Equal(t, 1, countUsernames(t, db, "kept"))

	boom := errors.New("boom")
	err = pg.WithTx(ctx, func(s storage.AllStorage) error {
		_, _ = s.InsertUser(ctx, domain.UserCandidate{Username: "dropped", Email: "dropped@example.com"})

		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, countUsernames(t, db, "dropped"))
}

func TestPgSQL_WithTx_UniqueViolationSurfacesOnWrite(t *testing.T) {
	t.Parallel()

	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	ctx := context.Background()
	_, err := pg.InsertUser(ctx, domain.UserCandidate{Username: "taken", Email: "taken@example.com"})
	require.NoError(t, err)

	err = pg.WithTx(ctx, func(s storage.AllStorage) error {
		_, e := s.InsertUser(ctx, domain.UserCandidate{Username: "taken", Email: "other@example.com"})

		return e //nolint: wrapcheck
	})
	require.Error(t, err)
	require.Equal(t, 1, countUsernames(t, pg.DB.(*sql.DB), "taken"))
}

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"usersvc/pkg/domain"
	"usersvc/pkg/storage"
	"usersvc/pkg/storage/postgres"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/riverqueue/river/rivertest"
	"github.com/stretchr/testify/require"
)

type reportJobArgs struct {
	Days int `json:"days"`
}

func (reportJobArgs) Kind() string { return "test_report" }

func migrateRiver(t *testing.T, pg *postgres.PgSQL) {
	t.Helper()
	migrator, err := rivermigrate.New(riverdatabasesql.New(pg.DB.(*sql.DB)), nil)
	require.NoError(t, err)
	migrations := migrator.AllVersions()
	_, err = migrator.Migrate(t.Context(), rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{
		TargetVersion: migrations[len(migrations)-1].Version,
	})
	require.NoError(t, err)
}

func TestPgSQL_AddJob_OutsideTransaction(t *testing.T) {
	t.Parallel()

	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	migrateRiver(t, pg)
	ctx := context.Background()

	inserted, err := pg.AddJob(ctx, reportJobArgs{Days: 7}, nil)
	require.NoError(t, err)
	require.True(t, inserted)

	rivertest.RequireInserted[*riverdatabasesql.Driver, *sql.Tx](
		ctx,
		t,
		riverdatabasesql.New(pg.DB.(*sql.DB)),
		&reportJobArgs{},
		nil,
	)
}

func TestPgSQL_AddJob_JoinsTransaction(t *testing.T) {
	t.Parallel()

	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	migrateRiver(t, pg)
	ctx := context.Background()

	err := pg.WithTx(ctx, func(s storage.AllStorage) error {
		if _, err := s.InsertUser(ctx, domain.UserCandidate{Username: "queued", Email: "queued@example.com"}); err != nil {
			return err //nolint: wrapcheck
		}
		_, err := s.AddJob(ctx, reportJobArgs{Days: 1}, nil)

		return err //nolint: wrapcheck
	})
	require.NoError(t, err)

	rivertest.RequireInserted[*riverdatabasesql.Driver, *sql.Tx](
		ctx,
		t,
		riverdatabasesql.New(pg.DB.(*sql.DB)),
		&reportJobArgs{},
		nil,
	)
}

func TestPgSQL_AddJob_UniqueSkipsDuplicates(t *testing.T) {
	t.Parallel()

	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	migrateRiver(t, pg)
	ctx := context.Background()

	opts := &river.InsertOpts{UniqueOpts: river.UniqueOpts{ByArgs: true}}
	inserted, err := pg.AddJob(ctx, reportJobArgs{Days: 7}, opts)
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = pg.AddJob(ctx, reportJobArgs{Days: 7}, opts)
	require.NoError(t, err)
	require.False(t, inserted)
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	root "usersvc"
	"usersvc/internal/config"
	"usersvc/pkg/logger"

	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const usersMigrationsDir = "migrations"

// migrateUsersSchema applies the embedded goose migrations creating the users table.
func migrateUsersSchema(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(root.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("could not set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, usersMigrationsDir); err != nil {
		return fmt.Errorf("could not migrate users schema: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("could not read users schema version: %w", err)
	}
	logger.Info(ctx, "users schema is up to date", zap.Int64("version", version))

	return nil
}

// migrateJobsSchema brings the river job tables used by the registration
// report to the latest version known by the linked river release.
func migrateJobsSchema(ctx context.Context, db *sql.DB) error {
	migrator, err := rivermigrate.New(riverdatabasesql.New(db), nil)
	if err != nil {
		return fmt.Errorf("could not create river migrator: %w", err)
	}

	all := migrator.AllVersions()
	latest := all[len(all)-1].Version

	existing, err := migrator.ExistingVersions(ctx)
	if err != nil {
		return fmt.Errorf("could not read river schema version: %w", err)
	}
	if len(existing) > 0 && existing[len(existing)-1].Version >= latest {
		logger.Info(ctx, "jobs schema is up to date", zap.Int("version", latest))

		return nil
	}

	res, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{TargetVersion: latest})
	if err != nil {
		return fmt.Errorf("could not migrate river schema: %w", err)
	}
	logger.Info(ctx, "jobs schema migrated",
		zap.Int("version", latest), zap.Int("applied", len(res.Versions)))

	return nil
}

// migrateCommand constructs the 'migrate' subcommand creating the users table
// and the river job tables.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Creates or upgrades the users and job queue tables",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			db, ok := strg.DB.(*sql.DB)
			if !ok {
				logger.Fatal(ctx, "migrations need a non transactional database handle")
			}

			if err := migrateUsersSchema(ctx, db); err != nil {
				logger.Fatal(ctx, "could not migrate users schema", zap.Error(err))
			}
			if err := migrateJobsSchema(ctx, db); err != nil {
				logger.Fatal(ctx, "could not migrate jobs schema", zap.Error(err))
			}
		},
	}

	return cmd
}

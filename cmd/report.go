package main

import (
	"context"
	"usersvc/internal/config"
	"usersvc/internal/worker"
	"usersvc/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reportCommand constructs the 'report' subcommand that enqueues a registration
// report for the running workers to pick up. A report that is already pending
// is not enqueued twice.
func reportCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Enqueues a recent registrations report",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			inserted, err := strg.AddJob(ctx, worker.RegistrationReportArgs{}, nil)
			if err != nil {
				logger.Fatal(ctx, "could not enqueue registration report", zap.Error(err))
			}
			if !inserted {
				logger.Info(ctx, "registration report is already pending")

				return
			}

			logger.Info(ctx, "registration report enqueued")
		},
	}

	return cmd
}

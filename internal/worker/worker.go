// Package worker runs the background jobs of the users service on River.
package worker

import (
	"context"
	"fmt"
	"time"
	"usersvc/internal/config"
	"usersvc/internal/service"
	"usersvc/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.opentelemetry.io/otel/metric"
)

const defaultMaxWorkers = 10

// Options configure the background job runner.
type Options struct {
	// RegistrationReportInterval is the period of the registration report.
	RegistrationReportInterval time.Duration
	// MaxWorkers bounds the number of jobs worked concurrently.
	MaxWorkers int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		RegistrationReportInterval: cfg.Reports.RegistrationInterval,
		MaxWorkers:                 defaultMaxWorkers,
	}
}

// PeriodicJobs returns the jobs River schedules by itself.
func PeriodicJobs(opts Options) []*river.PeriodicJob {
	return []*river.PeriodicJob{
		river.NewPeriodicJob(
			river.PeriodicInterval(opts.RegistrationReportInterval),
			func() (river.JobArgs, *river.InsertOpts) {
				return RegistrationReportArgs{}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: true},
		),
	}
}

// Start registers the workers and starts a River client processing jobs
// until ctx is canceled or the client is stopped.
func Start(ctx context.Context,
	dbPool *pgxpool.Pool,
	stats service.Service,
	mp metric.MeterProvider,
	opts Options) (*river.Client[pgx.Tx], error) {
	reportWorker, err := NewRegistrationReportWorker(stats, mp)
	if err != nil {
		return nil, err
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, reportWorker)

	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: maxWorkers},
		},
		Workers:      workers,
		PeriodicJobs: PeriodicJobs(opts),
		Logger:       logger.Slog(ctx),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}

package worker

import (
	"context"
	"fmt"
	"usersvc/internal/service"
	"usersvc/pkg/logger"

	"github.com/riverqueue/river"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const meterName = "usersvc/internal/worker"

// RegistrationReportWorker counts the users registered during the last week,
// logs the figure and publishes it on the users.registered_last_week gauge.
type RegistrationReportWorker struct {
	river.WorkerDefaults[RegistrationReportArgs]

	stats      service.Service
	registered metric.Int64Gauge
}

func NewRegistrationReportWorker(stats service.Service, mp metric.MeterProvider) (*RegistrationReportWorker, error) {
	gauge, err := mp.Meter(meterName).Int64Gauge("users.registered_last_week",
		metric.WithDescription("Number of users registered during the last 7 days"))
	if err != nil {
		return nil, fmt.Errorf("could not create registrations gauge: %w", err)
	}

	return &RegistrationReportWorker{
		stats:      stats,
		registered: gauge,
	}, nil
}

func (w *RegistrationReportWorker) Work(ctx context.Context, job *river.Job[RegistrationReportArgs]) error {
	ctx = logger.WithFields(ctx, zap.Int64("jobID", job.ID), zap.Int("attempt", job.Attempt))

	count, err := w.stats.CountRegisteredLastWeek(ctx)
	if err != nil {
		logger.Error(ctx, "error in building registration report", zap.Error(err))

		return fmt.Errorf("could not count recent registrations: %w", err)
	}

	w.registered.Record(ctx, count)
	logger.Info(ctx, "registration report built", zap.Int64("registeredLastWeek", count))

	return nil
}

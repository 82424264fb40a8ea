package jobs

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// LocationCleanupJob periodically drops the stored locations of delivered
// and cancelled orders.
type LocationCleanupJob struct {
	handler  commands.PurgeDeliveryLocationsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewLocationCleanupJob(
	handler commands.PurgeDeliveryLocationsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *LocationCleanupJob {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &LocationCleanupJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "location_cleanup_job"),
	}
}

// Start registers the purge on the job's schedule and starts the scheduler.
func (j *LocationCleanupJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location cleanup job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single purge. Errors are logged; the next tick retries.
func (j *LocationCleanupJob) RunOnce(ctx context.Context) {
	deleted, err := j.handler.Handle(ctx, commands.NewPurgeDeliveryLocationsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Location cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		j.logger.InfoContext(ctx, "Purged delivery locations", "count", deleted)
	}
}

func (j *LocationCleanupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Location cleanup job stopped")
}

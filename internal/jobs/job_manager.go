package jobs

import (
	"fmt"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
)

// DefaultSchedule runs a job at the top of every minute. Schedules use the
// six-field cron syntax with seconds.
const DefaultSchedule = "0 * * * * *"

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	locationCleanupJob *LocationCleanupJob
	promotionExpiryJob *PromotionExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
// An empty schedule falls back to DefaultSchedule.
func NewJobManager(
	purgeLocationsHandler commands.PurgeDeliveryLocationsCommandHandler,
	expirePromotionsHandler commands.DeactivateExpiredPromotionsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		locationCleanupJob: NewLocationCleanupJob(purgeLocationsHandler, schedule, logger),
		promotionExpiryJob: NewPromotionExpiryJob(expirePromotionsHandler, schedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.locationCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start location cleanup job: %w", err)
	}

	if err := jm.promotionExpiryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.locationCleanupJob.Stop()
		return fmt.Errorf("failed to start promotion expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks to finish.
func (jm *JobManager) StopAll() {
	jm.promotionExpiryJob.Stop()
	jm.locationCleanupJob.Stop()
}

package jobs

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PromotionExpiryJob deactivates promotions whose validity has run out, so
// they stop showing up as active in the store.
type PromotionExpiryJob struct {
	handler  commands.DeactivateExpiredPromotionsCommandHandler
	schedule string
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewPromotionExpiryJob(
	handler commands.DeactivateExpiredPromotionsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *PromotionExpiryJob {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &PromotionExpiryJob{
		handler:  handler,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "promotion_expiry_job"),
	}
}

func (j *PromotionExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Promotion expiry job started", "schedule", j.schedule)
	return nil
}

// RunOnce deactivates everything expired as of now.
func (j *PromotionExpiryJob) RunOnce(ctx context.Context) {
	deactivated, err := j.handler.Handle(ctx, commands.NewDeactivateExpiredPromotionsCommand(j.now()))
	if err != nil {
		j.logger.ErrorContext(ctx, "Promotion expiry failed", "error", err)
		return
	}
	if deactivated > 0 {
		j.logger.InfoContext(ctx, "Deactivated expired promotions", "count", deactivated)
	}
}

func (j *PromotionExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Promotion expiry job stopped")
}

package jobs

import (
	"context"
	"log/slog"

	"bakery/internal/core/application/services"

	"github.com/robfig/cron/v3"
)

// DeliveryStatsJob periodically snapshots the delivery counters so that the
// operational log carries a heartbeat of the order pipeline.
type DeliveryStatsJob struct {
	dashboard *services.DashboardService
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewDeliveryStatsJob creates a job that logs the delivery counters once a
// minute.
func NewDeliveryStatsJob(dashboard *services.DashboardService, logger *slog.Logger) *DeliveryStatsJob {
	return &DeliveryStatsJob{
		dashboard: dashboard,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "delivery_stats_job"),
	}
}

// Start begins the delivery stats job to run at the top of every minute.
func (j *DeliveryStatsJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		stats, err := j.dashboard.GetDeliveryStats(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Delivery stats job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Delivery stats",
			"dueToday", stats.DueToday,
			"dueTomorrow", stats.DueTomorrow,
			"deliveredToday", stats.DeliveredToday,
			"notAvailableToday", stats.NotAvailableToday,
			"newOrders", stats.NewOrders,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery stats job started (running every minute)")
	return nil
}

// Stop stops the delivery stats job.
func (j *DeliveryStatsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery stats job stopped")
}

package jobs

import (
	"context"
	"log/slog"

	"bakery/internal/core/application/services"
	"bakery/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// UpcomingOrdersJob reports once an hour how much work is waiting on the
// order board: everything due today or later that is not yet delivered.
type UpcomingOrdersJob struct {
	orders *services.OrderService
	cron   *cron.Cron
	logger *slog.Logger
}

// NewUpcomingOrdersJob creates a job that logs the upcoming workload every
// hour.
func NewUpcomingOrdersJob(orders *services.OrderService, logger *slog.Logger) *UpcomingOrdersJob {
	return &UpcomingOrdersJob{
		orders: orders,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "upcoming_orders_job"),
	}
}

// Start begins the upcoming orders job to run at the top of every hour.
func (j *UpcomingOrdersJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()

		summaries, err := j.orders.FindAnyMatchingStartingToday(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Upcoming orders job failed", "error", err)
			return
		}

		open := 0
		problems := 0
		for _, summary := range summaries {
			switch summary.State {
			case order.Delivered, order.Cancelled:
			case order.Problem:
				problems++
				open++
			default:
				open++
			}
		}

		j.logger.InfoContext(ctx, "Upcoming orders",
			"total", len(summaries),
			"open", open,
			"problems", problems,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Upcoming orders job started (running every hour)")
	return nil
}

// Stop stops the upcoming orders job.
func (j *UpcomingOrdersJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Upcoming orders job stopped")
}

package jobs

import (
	"fmt"
	"log/slog"

	"bakery/internal/core/application/services"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryStatsJob  *DeliveryStatsJob
	upcomingOrdersJob *UpcomingOrdersJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes application services as dependencies to wire up the job execution.
func NewJobManager(
	orders *services.OrderService,
	dashboard *services.DashboardService,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deliveryStatsJob:  NewDeliveryStatsJob(dashboard, logger),
		upcomingOrdersJob: NewUpcomingOrdersJob(orders, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryStatsJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery stats job: %w", err)
	}

	if err := jm.upcomingOrdersJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.deliveryStatsJob.Stop()
		return fmt.Errorf("failed to start upcoming orders job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.upcomingOrdersJob.Stop()
	jm.deliveryStatsJob.Stop()
}

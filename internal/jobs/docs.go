// Package jobs provides scheduled background tasks for the bakery.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic reporting the order pipeline needs.
//
// # Available Jobs
//
// 1. DeliveryStatsJob - Runs every minute to log the delivery counters (due today, delivered today, new orders)
// 2. UpcomingOrdersJob - Runs every hour to log the open workload on the order board
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required services
//	jobManager := jobs.NewJobManager(orderService, dashboardService, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs log failures and keep running; a failed snapshot only costs one
// log entry. Failed job starts will stop any already running jobs.
package jobs

// Package jobs provides scheduled background tasks for the tracking core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the service.
//
// # Available Jobs
//
// 1. BatchReconciliationJob - Runs every minute to derive batch statuses
// from the statuses of their items, moving batches forward through
// processing, ready, dispatched, and completed.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, logger)
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
// Reconciliation errors are logged and the pass is retried on the next tick;
// a failed job start stops any already running jobs.
package jobs

// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and each one wraps a
// single command handler.
//
// # Available Jobs
//
// 1. LocationCleanupJob - drops the stored delivery locations of orders that are delivered or cancelled
// 2. PromotionExpiryJob - deactivates promotions whose validUntil has passed
//
// # Usage
//
//	jobManager := jobs.NewJobManager(purgeHandler, expireHandler, jobs.DefaultSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried on the next tick. A job that fails to
// start stops the jobs already running.
package jobs

// Package jobs provides scheduled background tasks for the cafe service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second and publishes pending order events from the outbox
// 2. OpenOrdersMonitorJob - Runs every minute and logs the unpaid orders of the recent window
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, 100, time.Minute, openOrdersHandler, 24, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job failures are logged and the next tick tries again. A relay that fails half way
// has already acknowledged what it published; the rest stays pending.
package jobs

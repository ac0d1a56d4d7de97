// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs are cron based (github.com/robfig/cron/v3, seconds field enabled).
//
// # Available Jobs
//
// OutboxRelayJob publishes order events stored in the outbox. The default
// schedule "*/5 * * * * *" runs it every five seconds; each run relays at most
// one batch and overlapping runs are skipped.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, jobs.Config{
//		RelaySchedule:  cfg.OutboxRelaySchedule,
//		RelayBatchSize: cfg.OutboxBatchSize,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Unavailable errors from the broker or the database are logged as warnings
// and the batch is retried on the next tick. Delivery is at least once.
package jobs

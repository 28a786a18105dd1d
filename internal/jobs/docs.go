// Package jobs runs the background work of the orders service on
// github.com/robfig/cron/v3 schedules with second resolution.
//
// OrderCompletionJob finalizes orders whose completion was requested through
// the API and whose delay has elapsed. Because the due time is stored with the
// order, completions requested before a restart are picked up after it.
//
//	jobManager, err := jobs.NewJobManager(finalizeHandler, jobs.Config{
//		CompletionSchedule:  jobs.EverySecond,
//		CompletionBatchSize: 100,
//	}, logger)
//	if err != nil {
//		return err
//	}
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// A failed run is logged and its batch is retried on the next tick.
package jobs

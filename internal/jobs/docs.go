// Package jobs provides scheduled background tasks for the forwarding service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// MonthlySummaryJob runs the summary report over the previous calendar
// month and logs the counts. The default schedule "0 0 1 1 * *" fires at
// 01:00 on the first of every month in the business time zone; the
// SUMMARY_JOB_SCHEDULE setting overrides it.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewMonthlySummaryJob(reportHandler, serviceActor, clock, loc, schedule, logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the next tick runs again. Failed job starts
// stop any already running jobs.
package jobs

// Package jobs provides scheduled background tasks for the picking service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DocumentAutosaveJob - writes back the documents of sessions changed by scans
// 2. SessionReaperJob - saves and closes sessions idle longer than the configured timeout
//
// # Usage
//
//	jobManager := jobs.NewJobManager(saveDirtyHandler, closeIdleHandler, jobs.Schedules{
//		Autosave:           "*/30 * * * * *",
//		Reaper:             "0 * * * * *",
//		SessionIdleTimeout: 30 * time.Minute,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job runs log failures and keep the schedule. A job that cannot be scheduled fails
// StartAll, which stops any job already running.
package jobs

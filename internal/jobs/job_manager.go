package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Schedules of the background jobs, as six field cron expressions with seconds.
type Schedules struct {
	Autosave           string
	Reaper             string
	SessionIdleTimeout time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	autosaveJob *DocumentAutosaveJob
	reaperJob   *SessionReaperJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	saveDirtyHandler SaveDirtySessionsHandler,
	closeIdleHandler CloseIdleSessionsHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		autosaveJob: NewDocumentAutosaveJob(saveDirtyHandler, schedules.Autosave, logger),
		reaperJob:   NewSessionReaperJob(closeIdleHandler, schedules.Reaper, schedules.SessionIdleTimeout, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.autosaveJob.Start(); err != nil {
		return fmt.Errorf("failed to start document autosave job: %w", err)
	}

	if err := jm.reaperJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.autosaveJob.Stop()
		return fmt.Errorf("failed to start session reaper job: %w", err)
	}

	return nil
}

// StopAll stops the reaper first so that it does not close sessions while the last
// autosave runs.
func (jm *JobManager) StopAll() {
	jm.reaperJob.Stop()
	jm.autosaveJob.Stop()
}

package jobs

import (
	"context"
	"log/slog"

	"picking/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SaveDirtySessionsHandler persists the documents of sessions with unsaved changes.
type SaveDirtySessionsHandler interface {
	Handle(ctx context.Context, command commands.SaveDirtySessionsCommand) (int, error)
}

// DocumentAutosaveJob periodically writes back documents that scans have changed.
type DocumentAutosaveJob struct {
	handler  SaveDirtySessionsHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewDocumentAutosaveJob(handler SaveDirtySessionsHandler, schedule string, logger *slog.Logger) *DocumentAutosaveJob {
	return &DocumentAutosaveJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "document_autosave_job"),
	}
}

func (j *DocumentAutosaveJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Document autosave job started", "schedule", j.schedule)
	return nil
}

// Run saves dirty documents once.
func (j *DocumentAutosaveJob) Run() {
	ctx := context.Background()
	saved, err := j.handler.Handle(ctx, commands.NewSaveDirtySessionsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Document autosave job failed", "error", err, "saved", saved)
		return
	}
	if saved > 0 {
		j.logger.DebugContext(ctx, "Documents saved", "saved", saved)
	}
}

// Stop waits for a running save to finish.
func (j *DocumentAutosaveJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Document autosave job stopped")
}

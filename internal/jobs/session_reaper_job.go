package jobs

import (
	"context"
	"log/slog"
	"time"

	"picking/internal/core/application/usecases/commands"
	"picking/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// CloseIdleSessionsHandler saves and closes sessions nobody scanned into for a while.
type CloseIdleSessionsHandler interface {
	Handle(ctx context.Context, command commands.CloseIdleSessionsCommand) ([]kernel.UUID, error)
}

// SessionReaperJob closes sessions abandoned by their scanner.
type SessionReaperJob struct {
	handler     CloseIdleSessionsHandler
	schedule    string
	idleTimeout time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

func NewSessionReaperJob(
	handler CloseIdleSessionsHandler,
	schedule string,
	idleTimeout time.Duration,
	logger *slog.Logger,
) *SessionReaperJob {
	return &SessionReaperJob{
		handler:     handler,
		schedule:    schedule,
		idleTimeout: idleTimeout,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "session_reaper_job"),
	}
}

func (j *SessionReaperJob) Start() error {
	if _, err := commands.NewCloseIdleSessionsCommand(j.idleTimeout); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session reaper job started",
		"schedule", j.schedule, "idle_timeout", j.idleTimeout.String())
	return nil
}

// Run closes idle sessions once.
func (j *SessionReaperJob) Run() {
	ctx := context.Background()
	cmd, err := commands.NewCloseIdleSessionsCommand(j.idleTimeout)
	if err != nil {
		j.logger.ErrorContext(ctx, "Session reaper job misconfigured", "error", err)
		return
	}

	closed, err := j.handler.Handle(ctx, cmd)
	for _, id := range closed {
		j.logger.InfoContext(ctx, "Idle session closed", "session_id", id.String())
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Session reaper job failed", "error", err)
	}
}

func (j *SessionReaperJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session reaper job stopped")
}

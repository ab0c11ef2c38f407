// Package notifier delivers operator feedback. The scanning client receives notices in
// every scan response; this adapter records them in the service log as well and keeps
// the dialogs still waiting for confirmation.
package notifier

import (
	"context"
	"log/slog"
	"sync"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/session"
)

// Dialog is a confirmation the operator has not dismissed yet.
type Dialog struct {
	Title string
	Body  string
}

// LogNotifier implements ports.Notifier on top of a structured logger.
type LogNotifier struct {
	logger *slog.Logger

	mu      sync.Mutex
	dialogs map[kernel.UUID][]Dialog
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{
		logger:  logger.With("component", "notifier"),
		dialogs: make(map[kernel.UUID][]Dialog),
	}
}

func (n *LogNotifier) Notify(ctx context.Context, sessionID kernel.UUID, notice session.Notice) {
	n.logger.Log(ctx, level(notice.Severity), notice.Message,
		"session_id", sessionID.String(),
		"severity", string(notice.Severity),
		"title", notice.Title,
	)
}

func (n *LogNotifier) ConfirmDialog(ctx context.Context, sessionID kernel.UUID, title string, body string) {
	n.mu.Lock()
	n.dialogs[sessionID] = append(n.dialogs[sessionID], Dialog{Title: title, Body: body})
	n.mu.Unlock()

	n.logger.WarnContext(ctx, body, "session_id", sessionID.String(), "title", title, "dialog", true)
}

// PendingDialogs returns and forgets the dialogs of a session.
func (n *LogNotifier) PendingDialogs(sessionID kernel.UUID) []Dialog {
	n.mu.Lock()
	defer n.mu.Unlock()
	dialogs := n.dialogs[sessionID]
	delete(n.dialogs, sessionID)
	return dialogs
}

func level(s session.Severity) slog.Level {
	switch s {
	case session.SeverityDanger:
		return slog.LevelError
	case session.SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

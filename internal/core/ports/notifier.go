package ports

import (
	"context"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/session"
)

// Notifier delivers operator feedback. Delivery is fire and forget.
type Notifier interface {
	Notify(ctx context.Context, sessionID kernel.UUID, notice session.Notice)

	ConfirmDialog(ctx context.Context, sessionID kernel.UUID, title string, body string)
}

// StateObserver is told after every scan that the session display changed.
type StateObserver interface {
	StateChanged(ctx context.Context, snapshot session.Snapshot)
}

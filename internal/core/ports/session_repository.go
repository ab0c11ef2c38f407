package ports

import (
	"context"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/session"
)

// SessionRepository keeps live sessions. A session is only used between Acquire and
// the release function it returns, which guarantees one scan at a time per session.
type SessionRepository interface {
	Add(ctx context.Context, s *session.Session) error

	// Acquire blocks until the session is free or ctx is done.
	Acquire(ctx context.Context, id kernel.UUID) (*session.Session, func(), error)

	Remove(ctx context.Context, id kernel.UUID) error

	IDs(ctx context.Context) ([]kernel.UUID, error)
}

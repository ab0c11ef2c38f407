package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/ports"
	"picking/internal/pkg/errs"
)

type CloseIdleSessionsCommandHandler struct {
	sessions ports.SessionRepository
	closer   CloseSessionCommandHandler
	now      func() time.Time
}

func NewCloseIdleSessionsCommandHandler(sessions ports.SessionRepository, gateway ports.DocumentGateway) CloseIdleSessionsCommandHandler {
	return CloseIdleSessionsCommandHandler{
		sessions: sessions,
		closer:   NewCloseSessionCommandHandler(sessions, gateway),
		now:      time.Now,
	}
}

// Handle returns the ids of the closed sessions.
func (h CloseIdleSessionsCommandHandler) Handle(ctx context.Context, command CloseIdleSessionsCommand) ([]kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	ids, err := h.sessions.IDs(ctx)
	if err != nil {
		return nil, err
	}

	var (
		closed  []kernel.UUID
		errList []error
	)
	for _, id := range ids {
		idle, idleErr := h.isIdle(ctx, id, command.IdleTimeout())
		if idleErr != nil {
			errList = append(errList, fmt.Errorf("session %s: %w", id, idleErr))
			continue
		}
		if !idle {
			continue
		}

		closeCmd, cmdErr := NewCloseSessionCommand(id)
		if cmdErr == nil {
			cmdErr = h.closer.Handle(ctx, closeCmd)
		}
		if cmdErr != nil {
			errList = append(errList, fmt.Errorf("session %s: %w", id, cmdErr))
			continue
		}
		closed = append(closed, id)
	}
	return closed, errors.Join(errList...)
}

func (h CloseIdleSessionsCommandHandler) isIdle(ctx context.Context, id kernel.UUID, timeout time.Duration) (bool, error) {
	s, release, err := h.sessions.Acquire(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer release()
	return s.IdleFor(h.now()) > timeout, nil
}

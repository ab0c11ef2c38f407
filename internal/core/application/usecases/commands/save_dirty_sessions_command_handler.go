package commands

import (
	"context"
	"errors"
	"fmt"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/ports"
	"picking/internal/pkg/errs"
)

type SaveDirtySessionsCommandHandler struct {
	sessions ports.SessionRepository
	gateway  ports.DocumentGateway
}

func NewSaveDirtySessionsCommandHandler(sessions ports.SessionRepository, gateway ports.DocumentGateway) SaveDirtySessionsCommandHandler {
	return SaveDirtySessionsCommandHandler{sessions: sessions, gateway: gateway}
}

// Handle saves dirty documents one session at a time and returns how many were saved.
// A failing session does not stop the others; the failures are joined.
func (h SaveDirtySessionsCommandHandler) Handle(ctx context.Context, command SaveDirtySessionsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.sessions.IDs(ctx)
	if err != nil {
		return 0, err
	}

	saved := 0
	var errList []error
	for _, id := range ids {
		ok, saveErr := h.save(ctx, id)
		if saveErr != nil {
			errList = append(errList, fmt.Errorf("session %s: %w", id, saveErr))
		}
		if ok {
			saved++
		}
	}
	return saved, errors.Join(errList...)
}

func (h SaveDirtySessionsCommandHandler) save(ctx context.Context, id kernel.UUID) (bool, error) {
	s, release, err := h.sessions.Acquire(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer release()

	if !s.IsDirty() || !s.Document().Status().IsEditable() {
		return false, nil
	}
	if err = h.gateway.Save(ctx, s.Document()); err != nil {
		return false, err
	}
	s.MarkSaved()
	return true, nil
}

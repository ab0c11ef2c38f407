package commands

import (
	"context"

	"picking/internal/core/ports"
)

type CloseSessionCommandHandler struct {
	sessions ports.SessionRepository
	gateway  ports.DocumentGateway
}

func NewCloseSessionCommandHandler(sessions ports.SessionRepository, gateway ports.DocumentGateway) CloseSessionCommandHandler {
	return CloseSessionCommandHandler{sessions: sessions, gateway: gateway}
}

// Handle saves pending changes of an editable document before removing the session.
// The session stays open when saving fails.
func (h CloseSessionCommandHandler) Handle(ctx context.Context, command CloseSessionCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	s, release, err := h.sessions.Acquire(ctx, command.SessionID())
	if err != nil {
		return err
	}
	defer release()

	if s.IsDirty() && s.Document().Status().IsEditable() {
		if err = h.gateway.Save(ctx, s.Document()); err != nil {
			return err
		}
		s.MarkSaved()
	}
	return h.sessions.Remove(ctx, s.ID())
}

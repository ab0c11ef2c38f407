package commands

import (
	"errors"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/guard"
)

var ErrCloseSessionCommandIsNotConstructed = errors.New(
	"CloseSessionCommand must be created via NewCloseSessionCommand constructor",
)

// CloseSessionCommand saves the session document and forgets the session.
type CloseSessionCommand struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCloseSessionCommand(sessionID kernel.UUID) (CloseSessionCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return CloseSessionCommand{}, err
	}
	return CloseSessionCommand{sessionID: sessionID, guard: guard.NewConstructorGuard()}, nil
}

func (c CloseSessionCommand) SessionID() kernel.UUID { return c.sessionID }

func (c CloseSessionCommand) Validate() error {
	return c.guard.Validate(ErrCloseSessionCommandIsNotConstructed)
}

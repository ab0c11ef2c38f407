package commands

import (
	"errors"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/guard"
)

var ErrOpenSessionCommandIsNotConstructed = errors.New(
	"OpenSessionCommand must be created via NewOpenSessionCommand constructor",
)

// OpenSessionCommand starts scanning a document. The session id is generated here so
// the caller knows it before the handler runs.
type OpenSessionCommand struct {
	sessionID  kernel.UUID
	documentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewOpenSessionCommand(documentID kernel.UUID) (OpenSessionCommand, error) {
	if err := documentID.Validate(); err != nil {
		return OpenSessionCommand{}, err
	}
	return OpenSessionCommand{
		sessionID:  kernel.NewUUID(),
		documentID: documentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c OpenSessionCommand) SessionID() kernel.UUID { return c.sessionID }
func (c OpenSessionCommand) DocumentID() kernel.UUID { return c.documentID }

func (c OpenSessionCommand) Validate() error {
	return c.guard.Validate(ErrOpenSessionCommandIsNotConstructed)
}

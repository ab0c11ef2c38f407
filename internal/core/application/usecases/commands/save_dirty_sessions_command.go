package commands

import (
	"errors"

	"picking/internal/pkg/guard"
)

var ErrSaveDirtySessionsCommandIsNotConstructed = errors.New(
	"SaveDirtySessionsCommand must be created via NewSaveDirtySessionsCommand constructor",
)

// SaveDirtySessionsCommand persists every session document with unsaved changes.
type SaveDirtySessionsCommand struct {
	guard guard.ConstructorGuard
}

func NewSaveDirtySessionsCommand() SaveDirtySessionsCommand {
	return SaveDirtySessionsCommand{guard: guard.NewConstructorGuard()}
}

func (c SaveDirtySessionsCommand) Validate() error {
	return c.guard.Validate(ErrSaveDirtySessionsCommandIsNotConstructed)
}

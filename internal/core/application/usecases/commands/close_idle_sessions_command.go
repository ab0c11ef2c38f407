package commands

import (
	"errors"
	"time"

	"picking/internal/pkg/errs"
	"picking/internal/pkg/guard"
)

var ErrCloseIdleSessionsCommandIsNotConstructed = errors.New(
	"CloseIdleSessionsCommand must be created via NewCloseIdleSessionsCommand constructor",
)

// CloseIdleSessionsCommand closes sessions without activity for longer than the
// idle timeout.
type CloseIdleSessionsCommand struct {
	idleTimeout time.Duration

	guard guard.ConstructorGuard
}

func NewCloseIdleSessionsCommand(idleTimeout time.Duration) (CloseIdleSessionsCommand, error) {
	if idleTimeout <= 0 {
		return CloseIdleSessionsCommand{}, errs.NewValueIsOutOfRangeError("idle timeout", idleTimeout, time.Nanosecond, "unbounded")
	}
	return CloseIdleSessionsCommand{idleTimeout: idleTimeout, guard: guard.NewConstructorGuard()}, nil
}

func (c CloseIdleSessionsCommand) IdleTimeout() time.Duration { return c.idleTimeout }

func (c CloseIdleSessionsCommand) Validate() error {
	return c.guard.Validate(ErrCloseIdleSessionsCommandIsNotConstructed)
}

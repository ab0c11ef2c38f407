package commands

import (
	"errors"
	"time"

	"picking/internal/core/domain/model/barcode"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/guard"
)

var ErrProcessScanCommandIsNotConstructed = errors.New(
	"ProcessScanCommand must be created via NewProcessScanCommand constructor",
)

// ProcessScanCommand feeds one scanned code into a session.
//
// Example:
//
//	cmd, err := NewProcessScanCommand(sessionID, "4006381333931", time.Now())
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type ProcessScanCommand struct {
	sessionID kernel.UUID
	event     barcode.ScanEvent

	guard guard.ConstructorGuard
}

func NewProcessScanCommand(sessionID kernel.UUID, raw string, scannedAt time.Time) (ProcessScanCommand, error) {
	event, err := barcode.NewScanEvent(raw, scannedAt)
	if err = errors.Join(sessionID.Validate(), err); err != nil {
		return ProcessScanCommand{}, err
	}
	return ProcessScanCommand{
		sessionID: sessionID,
		event:     event,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ProcessScanCommand) SessionID() kernel.UUID { return c.sessionID }
func (c ProcessScanCommand) Raw() string { return c.event.Raw() }
func (c ProcessScanCommand) ScannedAt() time.Time { return c.event.ScannedAt() }

func (c ProcessScanCommand) Validate() error {
	return c.guard.Validate(ErrProcessScanCommandIsNotConstructed)
}

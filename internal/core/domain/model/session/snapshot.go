package session

import (
	"picking/internal/core/domain/model/kernel"
)

// Outcome summarizes how a scan ended.
type Outcome string

const (
	OutcomeHandled    Outcome = "handled"
	OutcomeRejected   Outcome = "rejected"
	OutcomeRolledOver Outcome = "rolled_over"
	OutcomeFailed     Outcome = "failed"
)

// Snapshot is what observers learn after a scan.
type Snapshot struct {
	SessionID      kernel.UUID
	DocumentID     kernel.UUID
	DocumentName   string
	Barcode        string
	Outcome        Outcome
	LineCount      int
	SelectedLineID *kernel.UUID
	Rollovers      int
}

package picking

import (
	"fmt"

	"picking/internal/pkg/errs"
)

// Status is the lifecycle state of a document.
//
//	Draft ──> Ready ──> Done
//	  │         │
//	  └─────────┴──> Cancelled
type Status int

const (
	StatusUnknown Status = iota
	StatusDraft
	StatusReady
	StatusDone
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusDraft:     "draft",
	StatusReady:     "ready",
	StatusDone:      "done",
	StatusCancelled: "cancelled",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStatus converts a persisted status name back to a Status.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsEditable reports whether lines may still change.
func (s Status) IsEditable() bool {
	return s == StatusDraft || s == StatusReady
}

// Done transitions to StatusDone. Only editable documents can be done.
func (s Status) Done() (Status, error) {
	if !s.IsEditable() {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to validate", s),
		)
	}
	return StatusDone, nil
}

// Cancel transitions to StatusCancelled.
func (s Status) Cancel() (Status, error) {
	if !s.IsEditable() {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s),
		)
	}
	return StatusCancelled, nil
}

package barcode

import (
	"errors"
	"strings"
	"time"

	"picking/internal/pkg/errs"
	"picking/internal/pkg/guard"
)

var ErrScanEventIsNotConstructed = errors.New("ScanEvent must be created via NewScanEvent constructor")

// ScanEvent is a raw scanned string and the time the scanner produced it.
type ScanEvent struct {
	raw       string
	scannedAt time.Time
	guard     guard.ConstructorGuard
}

// NewScanEvent trims surrounding whitespace (scanners often append CR or LF) and rejects
// empty codes. A zero scannedAt is replaced by the current time.
func NewScanEvent(raw string, scannedAt time.Time) (ScanEvent, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ScanEvent{}, errs.NewValueIsRequiredError("barcode")
	}
	if scannedAt.IsZero() {
		scannedAt = time.Now()
	}
	return ScanEvent{
		raw:       raw,
		scannedAt: scannedAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (e ScanEvent) Validate() error {
	return e.guard.Validate(ErrScanEventIsNotConstructed)
}

func (e ScanEvent) Raw() string          { return e.raw }
func (e ScanEvent) ScannedAt() time.Time { return e.scannedAt }

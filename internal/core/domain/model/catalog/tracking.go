package catalog

import (
	"fmt"

	"picking/internal/pkg/errs"
)

// Tracking tells how individual units of a product are identified.
type Tracking int

const (
	TrackingUnknown Tracking = iota
	// TrackingNone products are counted, never identified.
	TrackingNone
	// TrackingLot products carry a lot number shared by many units.
	TrackingLot
	// TrackingSerial products carry a unique serial number per unit, so a serial line
	// never holds more than one unit.
	TrackingSerial
)

var trackingNames = map[Tracking]string{
	TrackingNone:   "none",
	TrackingLot:    "lot",
	TrackingSerial: "serial",
}

// ParseTracking converts the persisted name ("none", "lot", "serial") to a Tracking.
func ParseTracking(s string) (Tracking, error) {
	for t, name := range trackingNames {
		if name == s {
			return t, nil
		}
	}
	return TrackingUnknown, errs.NewValueIsInvalidErrorWithCause("tracking", fmt.Errorf("%q is not a tracking mode", s))
}

func (t Tracking) Validate() error {
	if _, ok := trackingNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("tracking", fmt.Errorf("%d is not a tracking mode", t))
	}
	return nil
}

func (t Tracking) String() string {
	if name, ok := trackingNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsTracked reports whether the product needs a lot or serial number.
func (t Tracking) IsTracked() bool {
	return t == TrackingLot || t == TrackingSerial
}

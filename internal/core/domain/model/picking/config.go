package picking

import (
	"errors"
	"fmt"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/errs"
)

// DestPolicy tells whether scanning a destination location is required.
type DestPolicy int

const (
	DestNone DestPolicy = iota
	DestOptional
	DestMandatory
)

var destPolicyNames = map[DestPolicy]string{
	DestNone:      "no",
	DestOptional:  "optional",
	DestMandatory: "mandatory",
}

func (p DestPolicy) String() string { return destPolicyNames[p] }

func ParseDestPolicy(s string) (DestPolicy, error) {
	for p, name := range destPolicyNames {
		if name == s {
			return p, nil
		}
	}
	return DestNone, errs.NewValueIsInvalidErrorWithCause("restrict_scan_dest_location", fmt.Errorf("%q is not a policy", s))
}

// PackPolicy tells when products must be put in a package.
type PackPolicy int

const (
	PackNone PackPolicy = iota
	// PackOptional lets the operator pack a group of products when they see fit.
	PackOptional
	// PackMandatory requires a package after each product, before switching product.
	PackMandatory
	// PackBeforeEachProduct requires scanning the package a product goes into before
	// scanning the product itself.
	PackBeforeEachProduct
)

var packPolicyNames = map[PackPolicy]string{
	PackNone:              "no",
	PackOptional:          "optional",
	PackMandatory:         "mandatory",
	PackBeforeEachProduct: "before_each_product",
}

func (p PackPolicy) String() string { return packPolicyNames[p] }

func ParsePackPolicy(s string) (PackPolicy, error) {
	for p, name := range packPolicyNames {
		if name == s {
			return p, nil
		}
	}
	return PackNone, errs.NewValueIsInvalidErrorWithCause("restrict_put_in_pack", fmt.Errorf("%q is not a policy", s))
}

// Config is the scanning policy of an operation type. It is copied into every session
// and never changes while the session lives.
type Config struct {
	PickingTypeID kernel.UUID

	RestrictScanSourceLocation bool
	RestrictScanDestLocation   DestPolicy
	RestrictPutInPack          PackPolicy
	RestrictScanProduct        bool

	// MaxLines caps the number of lines per document; 0 means unlimited.
	MaxLines int

	// DefaultProductBarcode names the serial tracked product substituted for unknown
	// license plate codes. Empty disables substitution.
	DefaultProductBarcode string
	DefaultProductID      *kernel.UUID
	// DefaultLocationID is the destination of lines created for the default product.
	DefaultLocationID *kernel.UUID

	GroupTrackingLot   bool
	GroupTrackingOwner bool

	UseCreateLots      bool
	UseExistingLots    bool
	MoveEntirePackages bool
}

func (c Config) Validate() error {
	var errList []error
	if err := c.PickingTypeID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if c.MaxLines < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("max lines", c.MaxLines, 0, "unbounded"))
	}
	if _, ok := destPolicyNames[c.RestrictScanDestLocation]; !ok {
		errList = append(errList, errs.NewValueIsInvalidError("restrict_scan_dest_location"))
	}
	if _, ok := packPolicyNames[c.RestrictPutInPack]; !ok {
		errList = append(errList, errs.NewValueIsInvalidError("restrict_put_in_pack"))
	}
	return errors.Join(errList...)
}

// CanCreateNewLot reports whether unknown codes may become new lot or serial names.
func (c Config) CanCreateNewLot() bool {
	return c.UseCreateLots
}

// IncrementTrackedLine is true when tracked products are counted without numbers.
func (c Config) IncrementTrackedLine() bool {
	return !(c.UseCreateLots || c.UseExistingLots)
}

// HasDefaultProduct reports whether license plate substitution is configured.
func (c Config) HasDefaultProduct() bool {
	return c.DefaultProductBarcode != ""
}

// CapacityReached reports whether a document holding lineCount lines may not receive
// another line.
func (c Config) CapacityReached(lineCount int) bool {
	return c.MaxLines > 0 && lineCount >= c.MaxLines
}

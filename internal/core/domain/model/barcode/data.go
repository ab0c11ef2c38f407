package barcode

import (
	"strings"

	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
)

// Kind is the dominant record type of a classified code.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindAction
	KindProduct
	KindWeight
	KindLot
	KindPackage
	KindPackageType
	KindLocation
)

func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindProduct:
		return "product"
	case KindWeight:
		return "weight"
	case KindLot:
		return "lot"
	case KindPackage:
		return "package"
	case KindPackageType:
		return "package_type"
	case KindLocation:
		return "location"
	default:
		return "unrecognized"
	}
}

// Action is a command code printed on the operator's command sheet.
type Action string

const (
	ActionNone      Action = ""
	ActionValidate  Action = "validate"
	ActionPutInPack Action = "put_in_pack"
	ActionDiscard   Action = "discard"
)

// Filters narrows ambiguous lookups. LotProductID restricts lot lookups to the lots
// of one product, used while a tracked line is selected.
type Filters struct {
	LotProductID *kernel.UUID
}

func (f Filters) IsEmpty() bool {
	return f.LotProductID == nil
}

// Data is the classification of one scanned code. It is mutable on purpose: the scan
// pipeline enriches it step by step (product from packaging, quantity defaults, unit
// conversion) before a line is touched.
type Data struct {
	Barcode string
	// Match is true when the code matched any catalog record at all, even one the
	// pipeline later ignores. An unmatched code is a candidate new lot or serial name.
	Match bool

	Action Action

	Product     *catalog.Product
	Packaging   *catalog.Packaging
	Lot         *catalog.Lot
	LotName     string
	Package     *catalog.Package
	PackageName string
	PackageType *catalog.PackageType
	// Location is a source location, DestLocation a destination one. The classifier
	// decides which role a scanned location plays.
	Location     *catalog.Location
	DestLocation *catalog.Location
	Owner        *catalog.Owner

	UoM      *catalog.UoM
	Quantity *kernel.Quantity
	Weight   *kernel.Quantity

	// Error is a soft parse failure; the code stays usable for fallbacks.
	Error error
}

// Kind reports the dominant record type.
func (d *Data) Kind() Kind {
	switch {
	case d.Action != ActionNone:
		return KindAction
	case d.Product != nil && d.Weight != nil:
		return KindWeight
	case d.Product != nil || d.Packaging != nil:
		return KindProduct
	case d.Lot != nil:
		return KindLot
	case d.Package != nil || d.PackageName != "":
		return KindPackage
	case d.PackageType != nil:
		return KindPackageType
	case d.Location != nil || d.DestLocation != nil:
		return KindLocation
	default:
		return KindUnrecognized
	}
}

// HasTrackingNumber reports whether the code carries a lot or serial, existing or new.
func (d *Data) HasTrackingNumber() bool {
	return d.Lot != nil || d.LotName != ""
}

// TrackingNumber returns the lot or serial name carried by the code.
func (d *Data) TrackingNumber() string {
	if d.LotName != "" {
		return d.LotName
	}
	if d.Lot != nil {
		return d.Lot.Name()
	}
	return ""
}

// QuantityOr returns the explicit quantity, or def when the code carries none.
func (d *Data) QuantityOr(def kernel.Quantity) kernel.Quantity {
	if d.Quantity == nil {
		return def
	}
	return *d.Quantity
}

// SetQuantity replaces the quantity carried by the code.
func (d *Data) SetQuantity(q kernel.Quantity) {
	d.Quantity = &q
}

// HasQuantity reports whether a non zero quantity was given.
func (d *Data) HasQuantity() bool {
	return d.Quantity != nil && !d.Quantity.IsZero()
}

// LooksLikeLicensePlate reports whether the raw code starts with "lpn" in any case.
func LooksLikeLicensePlate(raw string) bool {
	return strings.HasPrefix(strings.ToLower(raw), "lpn")
}

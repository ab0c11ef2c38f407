package picking

import (
	"errors"
	"fmt"

	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/errs"
	"picking/internal/pkg/guard"
)

var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine constructor")

// Line is one product quantity moving from a source to a destination location within a
// document. qtyDone is what the operator scanned, reservedQty what the document expects.
type Line struct {
	id              kernel.UUID
	product         *catalog.Product
	uom             catalog.UoM
	qtyDone         kernel.Quantity
	reservedQty     kernel.Quantity
	lot             *catalog.Lot
	lotName         string
	locationID      kernel.UUID
	destLocationID  kernel.UUID
	packageID       *kernel.UUID
	resultPackageID *kernel.UUID
	ownerID         *kernel.UUID
	sequence        int
	guard           guard.ConstructorGuard
}

// LineState is the flat form of a line, used to restore lines from storage and to
// expose them to read models.
type LineState struct {
	ID              kernel.UUID
	Product         *catalog.Product
	UoM             catalog.UoM
	QtyDone         kernel.Quantity
	ReservedQty     kernel.Quantity
	Lot             *catalog.Lot
	LotName         string
	LocationID      kernel.UUID
	DestLocationID  kernel.UUID
	PackageID       *kernel.UUID
	ResultPackageID *kernel.UUID
	OwnerID         *kernel.UUID
	Sequence        int
}

// NewLine creates an empty, unreserved line. The unit must share the product's unit
// category.
func NewLine(id kernel.UUID, product *catalog.Product, uom catalog.UoM, locationID, destLocationID kernel.UUID) (*Line, error) {
	if err := errors.Join(
		id.Validate(),
		product.Validate(),
		uom.Validate(),
		locationID.Validate(),
		destLocationID.Validate(),
	); err != nil {
		return nil, err
	}
	if !uom.SameCategory(product.UoM()) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"line uom",
			fmt.Errorf("%s is not in the category of %s", uom.Name(), product.UoM().Name()),
		)
	}

	return &Line{
		id:             id,
		product:        product,
		uom:            uom,
		locationID:     locationID,
		destLocationID: destLocationID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreLine rebuilds a persisted line.
func RestoreLine(s LineState) (*Line, error) {
	l, err := NewLine(s.ID, s.Product, s.UoM, s.LocationID, s.DestLocationID)
	if err != nil {
		return nil, err
	}
	if s.QtyDone.LessThan(kernel.Zero) || s.ReservedQty.LessThan(kernel.Zero) {
		return nil, errs.NewValueIsOutOfRangeError("line quantity", s.QtyDone.String(), 0, "unbounded")
	}
	l.qtyDone = s.QtyDone
	l.reservedQty = s.ReservedQty
	l.lotName = s.LotName
	l.packageID = s.PackageID
	l.resultPackageID = s.ResultPackageID
	l.ownerID = s.OwnerID
	l.sequence = s.Sequence
	if s.Lot != nil {
		if err = l.AssignLot(s.Lot); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// State returns a snapshot of the line.
func (l *Line) State() LineState {
	return LineState{
		ID:              l.id,
		Product:         l.product,
		UoM:             l.uom,
		QtyDone:         l.qtyDone,
		ReservedQty:     l.reservedQty,
		Lot:             l.lot,
		LotName:         l.lotName,
		LocationID:      l.locationID,
		DestLocationID:  l.destLocationID,
		PackageID:       l.packageID,
		ResultPackageID: l.resultPackageID,
		OwnerID:         l.ownerID,
		Sequence:        l.sequence,
	}
}

func (l *Line) ID() kernel.UUID { return l.id }
func (l *Line) Product() *catalog.Product { return l.product }
func (l *Line) UoM() catalog.UoM { return l.uom }
func (l *Line) QtyDone() kernel.Quantity { return l.qtyDone }
func (l *Line) ReservedQty() kernel.Quantity { return l.reservedQty }
func (l *Line) Lot() *catalog.Lot { return l.lot }
func (l *Line) LotName() string { return l.lotName }
func (l *Line) LocationID() kernel.UUID { return l.locationID }
func (l *Line) DestLocationID() kernel.UUID { return l.destLocationID }
func (l *Line) PackageID() *kernel.UUID { return l.packageID }
func (l *Line) ResultPackageID() *kernel.UUID { return l.resultPackageID }
func (l *Line) OwnerID() *kernel.UUID { return l.ownerID }
func (l *Line) Sequence() int { return l.sequence }
func (l *Line) IsReserved() bool { return l.reservedQty.IsPositive() }
func (l *Line) IsPacked() bool { return l.resultPackageID != nil }
func (l *Line) Tracking() catalog.Tracking { return l.product.Tracking() }

// TrackingNumber is the lot or serial on the line, new or existing. Empty when none.
func (l *Line) TrackingNumber() string {
	if l.lot != nil {
		return l.lot.Name()
	}
	return l.lotName
}

// RemainingQty is the reserved quantity still to scan, never negative.
func (l *Line) RemainingQty() kernel.Quantity {
	return l.reservedQty.Sub(l.qtyDone).Max(kernel.Zero)
}

// HasUnassignedQty reports whether units were counted on the line before any lot or
// serial was given to them.
func (l *Line) HasUnassignedQty() bool {
	return !l.qtyDone.IsZero() && l.lot == nil && l.lotName == ""
}

// CanTakeTrackingNumber reports whether a scanned number may be written on the line,
// replacing none or an unused one.
func (l *Line) CanTakeTrackingNumber(number string) bool {
	current := l.TrackingNumber()
	return current == "" || current == number || (l.lot == nil && l.qtyDone.IsZero())
}

// ForDefaultProduct reports whether the line moves the substitute default product.
func (l *Line) ForDefaultProduct(cfg Config) bool {
	if cfg.DefaultProductID != nil {
		return l.product.ID().IsEqual(*cfg.DefaultProductID)
	}
	return cfg.HasDefaultProduct() && l.product.HasBarcode(cfg.DefaultProductBarcode)
}

// Increment adds qty to the done quantity. Serial lines refuse to go above one unit.
func (l *Line) Increment(qty kernel.Quantity) error {
	return l.SetQtyDone(l.qtyDone.Add(qty))
}

func (l *Line) SetQtyDone(qty kernel.Quantity) error {
	if qty.LessThan(kernel.Zero) {
		return errs.NewValueIsOutOfRangeError("qty done", qty.String(), 0, "unbounded")
	}
	if l.product.IsSerial() && qty.GreaterThan(kernel.One) {
		return errs.NewQuantityConflictError(l.product.Name(), qty.String(), kernel.One.String())
	}
	l.qtyDone = qty
	return nil
}

// AssignLot sets an existing lot; it must belong to the line's product.
func (l *Line) AssignLot(lot *catalog.Lot) error {
	if lot == nil {
		return errs.NewValueIsRequiredError("lot")
	}
	if !lot.ProductID().IsEqual(l.product.ID()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"lot",
			fmt.Errorf("%s does not belong to %s", lot.Name(), l.product.Name()),
		)
	}
	l.lot = lot
	l.lotName = ""
	return nil
}

// AssignLotName sets a lot or serial name that has no record yet.
func (l *Line) AssignLotName(name string) {
	l.lot = nil
	l.lotName = name
}

func (l *Line) AssignPackage(id *kernel.UUID) { l.packageID = id }
func (l *Line) AssignResultPackage(id *kernel.UUID) { l.resultPackageID = id }
func (l *Line) AssignOwner(id *kernel.UUID) { l.ownerID = id }
func (l *Line) ChangeLocation(id kernel.UUID) { l.locationID = id }
func (l *Line) ChangeDestination(id kernel.UUID) { l.destLocationID = id }

// SetReservedQty is used when a reservation is computed for a new line.
func (l *Line) SetReservedQty(qty kernel.Quantity) error {
	if qty.LessThan(kernel.Zero) {
		return errs.NewValueIsOutOfRangeError("reserved qty", qty.String(), 0, "unbounded")
	}
	l.reservedQty = qty
	return nil
}

// CopyIdentity returns a new unreserved line with the same product, unit, tracking
// number, locations, packages and owner, and no quantity done.
func (l *Line) CopyIdentity(id kernel.UUID) (*Line, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	cp := l.clone()
	cp.id = id
	cp.qtyDone = kernel.Zero
	cp.reservedQty = kernel.Zero
	cp.sequence = 0
	return cp, nil
}

func (l *Line) clone() *Line {
	cp := *l
	return &cp
}

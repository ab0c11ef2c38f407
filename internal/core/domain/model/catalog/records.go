package catalog

import (
	"errors"
	"strings"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/errs"
)

// Lot is an existing lot or serial number of a product.
type Lot struct {
	id        kernel.UUID
	name      string
	productID kernel.UUID
}

func NewLot(id kernel.UUID, name string, productID kernel.UUID) (*Lot, error) {
	if err := errors.Join(id.Validate(), productID.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("lot name")
	}
	return &Lot{id: id, name: name, productID: productID}, nil
}

func (l *Lot) ID() kernel.UUID { return l.id }
func (l *Lot) Name() string { return l.name }
func (l *Lot) ProductID() kernel.UUID { return l.productID }

// Owner is the partner owning consigned stock.
type Owner struct {
	id   kernel.UUID
	name string
}

func NewOwner(id kernel.UUID, name string) (*Owner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Owner{id: id, name: name}, nil
}

func (o *Owner) ID() kernel.UUID { return o.id }
func (o *Owner) Name() string { return o.name }

// PackageType describes a kind of container (pallet, box). Scanning one without an
// existing package puts the current lines in a new package of that type.
type PackageType struct {
	id      kernel.UUID
	name    string
	barcode string
}

func NewPackageType(id kernel.UUID, name string, barcode string) (*PackageType, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("package type name")
	}
	return &PackageType{id: id, name: name, barcode: barcode}, nil
}

func (t *PackageType) ID() kernel.UUID { return t.id }
func (t *PackageType) Name() string { return t.name }
func (t *PackageType) Barcode() string { return t.barcode }

// Packaging is a barcode standing for a fixed multiple of a product, e.g. a case of 12.
type Packaging struct {
	id        kernel.UUID
	name      string
	barcode   string
	productID kernel.UUID
	qty       kernel.Quantity
}

func NewPackaging(id kernel.UUID, name string, barcode string, productID kernel.UUID, qty kernel.Quantity) (*Packaging, error) {
	if err := errors.Join(id.Validate(), productID.Validate()); err != nil {
		return nil, err
	}
	if !qty.IsPositive() {
		return nil, errs.NewValueIsOutOfRangeError("packaging qty", qty.String(), "0 (exclusive)", "unbounded")
	}
	return &Packaging{id: id, name: name, barcode: barcode, productID: productID, qty: qty}, nil
}

func (p *Packaging) ID() kernel.UUID { return p.id }
func (p *Packaging) Name() string { return p.name }
func (p *Packaging) Barcode() string { return p.barcode }
func (p *Packaging) ProductID() kernel.UUID { return p.productID }
func (p *Packaging) Qty() kernel.Quantity { return p.qty }

// Package is a physical container with stock in it. quantIDs lists the quants the
// package holds; an empty package has none.
type Package struct {
	id         kernel.UUID
	name       string
	locationID *kernel.UUID
	quantIDs   []kernel.UUID
}

func NewPackage(id kernel.UUID, name string, locationID *kernel.UUID, quantIDs []kernel.UUID) (*Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("package name")
	}
	return &Package{
		id:         id,
		name:       name,
		locationID: locationID,
		quantIDs:   append([]kernel.UUID(nil), quantIDs...),
	}, nil
}

func (p *Package) ID() kernel.UUID { return p.id }
func (p *Package) Name() string { return p.name }
func (p *Package) LocationID() *kernel.UUID { return p.locationID }
func (p *Package) QuantIDs() []kernel.UUID { return append([]kernel.UUID(nil), p.quantIDs...) }
func (p *Package) HasQuants() bool { return len(p.quantIDs) > 0 }
func (p *Package) IsAt(locationID kernel.UUID) bool {
	return p.locationID != nil && p.locationID.IsEqual(locationID)
}

// Quant is a quantity of one product (and optionally one lot and owner) lying in a
// location, possibly inside a package.
type Quant struct {
	id         kernel.UUID
	product    *Product
	locationID kernel.UUID
	lot        *Lot
	packageID  *kernel.UUID
	owner      *Owner
	quantity   kernel.Quantity
}

func NewQuant(
	id kernel.UUID,
	product *Product,
	locationID kernel.UUID,
	lot *Lot,
	packageID *kernel.UUID,
	owner *Owner,
	quantity kernel.Quantity,
) (*Quant, error) {
	if err := errors.Join(id.Validate(), product.Validate(), locationID.Validate()); err != nil {
		return nil, err
	}
	return &Quant{
		id:         id,
		product:    product,
		locationID: locationID,
		lot:        lot,
		packageID:  packageID,
		owner:      owner,
		quantity:   quantity,
	}, nil
}

func (q *Quant) ID() kernel.UUID { return q.id }
func (q *Quant) Product() *Product { return q.product }
func (q *Quant) LocationID() kernel.UUID { return q.locationID }
func (q *Quant) Lot() *Lot { return q.lot }
func (q *Quant) PackageID() *kernel.UUID { return q.packageID }
func (q *Quant) Owner() *Owner { return q.owner }
func (q *Quant) Quantity() kernel.Quantity { return q.quantity }

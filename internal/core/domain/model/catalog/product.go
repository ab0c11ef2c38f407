package catalog

import (
	"errors"
	"strings"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/errs"
	"picking/internal/pkg/guard"
)

var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

// Product is a storable product as seen by the scanner: its primary barcode, how its
// units are tracked, its stock unit of measure and the location used as counterpart for
// inventory adjustments.
type Product struct {
	id                  kernel.UUID
	name                string
	barcode             string
	tracking            Tracking
	uom                 UoM
	inventoryLocationID *kernel.UUID
	guard               guard.ConstructorGuard
}

// NewProduct creates a product. The barcode may be empty for products that are only
// reachable through packagings, lots or packages.
func NewProduct(id kernel.UUID, name string, barcode string, tracking Tracking, uom UoM) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("product name")
	}
	if err := errors.Join(id.Validate(), tracking.Validate(), uom.Validate()); err != nil {
		return nil, err
	}

	return &Product{
		id:       id,
		name:     name,
		barcode:  barcode,
		tracking: tracking,
		uom:      uom,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// WithInventoryLocation returns a copy of p whose inventory adjustment location is id.
func (p *Product) WithInventoryLocation(id kernel.UUID) *Product {
	cp := *p
	cp.inventoryLocationID = &id
	return &cp
}

func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p *Product) ID() kernel.UUID { return p.id }
func (p *Product) Name() string { return p.name }
func (p *Product) Barcode() string { return p.barcode }
func (p *Product) Tracking() Tracking { return p.tracking }
func (p *Product) UoM() UoM { return p.uom }
func (p *Product) IsSerial() bool { return p.tracking == TrackingSerial }
func (p *Product) IsTracked() bool { return p.tracking.IsTracked() }
func (p *Product) HasBarcode(b string) bool {
	return p.barcode != "" && p.barcode == b
}

// InventoryLocationID is the inventory adjustment location, nil when not configured.
func (p *Product) InventoryLocationID() *kernel.UUID { return p.inventoryLocationID }

func (p *Product) IsEqual(other *Product) bool {
	return p != nil && other != nil && p.id.IsEqual(other.id)
}

package services_test

import (
	"testing"

	"picking/internal/core/domain/model/barcode"
	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
	"picking/internal/core/domain/model/session"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	units catalog.UoM

	stock   *catalog.Location
	shelf   *catalog.Location
	output  *catalog.Location
	dock    *catalog.Location
	foreign *catalog.Location

	cable  *catalog.Product
	router *catalog.Product
	flour  *catalog.Product

	cfg   picking.Config
	doc   *picking.Document
	state *session.State
}

// newFixture builds a draft document moving stock from WH/Stock to WH/Output, with
// the serial tracked router as default product. configure may adjust the operation
// type before the document is created.
func newFixture(t *testing.T, configure ...func(*picking.Config)) *fixture {
	t.Helper()
	f := &fixture{}

	var err error
	f.units, err = catalog.NewUoM(kernel.NewUUID(), "Units", kernel.NewUUID(), kernel.One)
	require.NoError(t, err)

	f.stock = f.location(t, "WH/Stock", "/WH/Stock/")
	f.shelf = f.location(t, "WH/Stock/Shelf 1", "/WH/Stock/Shelf1/")
	f.output = f.location(t, "WH/Output", "/WH/Output/")
	f.dock = f.location(t, "WH/Output/Dock", "/WH/Output/Dock/")
	f.foreign = f.location(t, "Partners/Customers", "/Partners/Customers/")

	f.cable, err = catalog.NewProduct(kernel.NewUUID(), "Cable", "CABLE", catalog.TrackingNone, f.units)
	require.NoError(t, err)
	f.router, err = catalog.NewProduct(kernel.NewUUID(), "Router", "DP1", catalog.TrackingSerial, f.units)
	require.NoError(t, err)
	f.flour, err = catalog.NewProduct(kernel.NewUUID(), "Flour", "FLOUR", catalog.TrackingLot, f.units)
	require.NoError(t, err)

	routerID := f.router.ID()
	f.cfg = picking.Config{
		PickingTypeID:         kernel.NewUUID(),
		UseCreateLots:         true,
		UseExistingLots:       true,
		DefaultProductBarcode: "DP1",
		DefaultProductID:      &routerID,
	}
	for _, c := range configure {
		c(&f.cfg)
	}
	f.doc, err = picking.NewDocument(kernel.NewUUID(), "WH/OUT/00001", f.cfg, f.stock.ID(), f.output.ID())
	require.NoError(t, err)
	f.state = session.NewState(f.stock)
	return f
}

func (f *fixture) location(t *testing.T, name, path string) *catalog.Location {
	t.Helper()
	l, err := catalog.NewLocation(kernel.NewUUID(), name, name, path)
	require.NoError(t, err)
	return l
}

func (f *fixture) locations() session.Locations {
	return session.Locations{Source: f.stock, Destination: f.output}
}

// line adds a line of product from stock to output.
func (f *fixture) line(t *testing.T, product *catalog.Product, done, reserved int64) *picking.Line {
	t.Helper()
	l, err := picking.NewLine(kernel.NewUUID(), product, product.UoM(), f.stock.ID(), f.output.ID())
	require.NoError(t, err)
	require.NoError(t, l.SetReservedQty(kernel.QuantityFromInt(reserved)))
	require.NoError(t, l.SetQtyDone(kernel.QuantityFromInt(done)))
	require.NoError(t, f.doc.AddLine(l))
	return l
}

func (f *fixture) lot(t *testing.T, name string, product *catalog.Product) *catalog.Lot {
	t.Helper()
	lot, err := catalog.NewLot(kernel.NewUUID(), name, product.ID())
	require.NoError(t, err)
	return lot
}

func (f *fixture) pkg(t *testing.T, name string, at *catalog.Location, quants ...*catalog.Quant) *catalog.Package {
	t.Helper()
	var locationID *kernel.UUID
	if at != nil {
		id := at.ID()
		locationID = &id
	}
	ids := make([]kernel.UUID, 0, len(quants))
	for _, q := range quants {
		ids = append(ids, q.ID())
	}
	p, err := catalog.NewPackage(kernel.NewUUID(), name, locationID, ids)
	require.NoError(t, err)
	return p
}

func (f *fixture) quant(t *testing.T, product *catalog.Product, lot *catalog.Lot, qty int64) *catalog.Quant {
	t.Helper()
	q, err := catalog.NewQuant(kernel.NewUUID(), product, f.stock.ID(), lot, nil, nil, kernel.QuantityFromInt(qty))
	require.NoError(t, err)
	return q
}

func qty(n int64) *kernel.Quantity {
	q := kernel.QuantityFromInt(n)
	return &q
}

func productScan(p *catalog.Product) *barcode.Data {
	return &barcode.Data{Barcode: p.Barcode(), Match: true, Product: p}
}

func unknownScan(raw string) *barcode.Data {
	return &barcode.Data{Barcode: raw}
}

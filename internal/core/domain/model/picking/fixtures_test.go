package picking_test

import (
	"testing"

	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	units    catalog.UoM
	stock    kernel.UUID
	output   kernel.UUID
	cable    *catalog.Product
	router   *catalog.Product
	flour    *catalog.Product
	cfg      picking.Config
	document *picking.Document
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{stock: kernel.NewUUID(), output: kernel.NewUUID()}

	var err error
	f.units, err = catalog.NewUoM(kernel.NewUUID(), "Units", kernel.NewUUID(), kernel.One)
	require.NoError(t, err)
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
	f.document, err = picking.NewDocument(kernel.NewUUID(), "WH/OUT/00001", f.cfg, f.stock, f.output)
	require.NoError(t, err)
	return f
}

func (f *fixture) line(t *testing.T, product *catalog.Product, done, reserved int64) *picking.Line {
	t.Helper()
	l, err := picking.NewLine(kernel.NewUUID(), product, product.UoM(), f.stock, f.output)
	require.NoError(t, err)
	require.NoError(t, l.SetReservedQty(kernel.QuantityFromInt(reserved)))
	require.NoError(t, l.SetQtyDone(kernel.QuantityFromInt(done)))
	require.NoError(t, f.document.AddLine(l))
	return l
}

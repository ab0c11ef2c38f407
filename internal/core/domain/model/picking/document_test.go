package picking_test

import (
	"testing"

	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
	"picking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_AddLine(t *testing.T) {
	f := newFixture(t)

	a := f.line(t, f.cable, 0, 1)
	b := f.line(t, f.router, 0, 0)

	assert.Equal(t, 2, f.document.LineCount())
	assert.Equal(t, 1, a.Sequence())
	assert.Equal(t, 2, b.Sequence())
	assert.Same(t, b, f.document.Line(b.ID()))
	assert.ErrorIs(t, f.document.AddLine(a), errs.ErrValueIsInvalid)
}

func TestDocument_FindLine(t *testing.T) {
	t.Run("should prefer the selected line", func(t *testing.T) {
		f := newFixture(t)
		f.line(t, f.cable, 0, 5)
		selected := f.line(t, f.cable, 1, 0)
		id := selected.ID()

		got := f.document.FindLine(picking.LineQuery{ProductID: f.cable.ID(), PreferredLineID: &id})

		assert.Same(t, selected, got)
	})

	t.Run("should prefer a line with reserved quantity left", func(t *testing.T) {
		f := newFixture(t)
		f.line(t, f.cable, 5, 5)
		open := f.line(t, f.cable, 1, 3)

		assert.Same(t, open, f.document.FindLine(picking.LineQuery{ProductID: f.cable.ID()}))
	})

	t.Run("should skip a full serial line", func(t *testing.T) {
		f := newFixture(t)
		full := f.line(t, f.router, 1, 0)
		full.AssignLotName("SN-1")

		assert.Nil(t, f.document.FindLine(picking.LineQuery{ProductID: f.router.ID(), TrackingNumber: "SN-2"}))
		assert.Same(t, full, f.document.FindLine(picking.LineQuery{ProductID: f.router.ID(), TrackingNumber: "SN-1"}))
	})

	t.Run("should give a serial to counted units", func(t *testing.T) {
		f := newFixture(t)
		counted := f.line(t, f.router, 1, 0)

		assert.Same(t, counted, f.document.FindLine(picking.LineQuery{ProductID: f.router.ID(), TrackingNumber: "SN-9"}))
	})

	t.Run("should respect package and packed filters", func(t *testing.T) {
		f := newFixture(t)
		pkg := kernel.NewUUID()
		packed := f.line(t, f.cable, 1, 0)
		packed.AssignResultPackage(&pkg)

		assert.Nil(t, f.document.FindLine(picking.LineQuery{ProductID: f.cable.ID(), SkipPacked: true}))
		assert.Nil(t, f.document.FindLine(picking.LineQuery{ProductID: f.cable.ID(), PackageID: &pkg}))
		assert.Same(t, packed, f.document.FindLine(picking.LineQuery{ProductID: f.cable.ID()}))
	})
}

func TestDocument_HasUsedSerial(t *testing.T) {
	f := newFixture(t)
	l := f.line(t, f.router, 1, 0)
	l.AssignLotName("LPN123")
	pending := f.line(t, f.router, 0, 0)
	pending.AssignLotName("LPN999")

	assert.True(t, f.document.HasUsedSerial(f.router.ID(), "LPN123"))
	assert.False(t, f.document.HasUsedSerial(f.router.ID(), "LPN999"))
	assert.False(t, f.document.HasUsedSerial(f.cable.ID(), "LPN123"))
}

func TestDocument_PackageLines(t *testing.T) {
	f := newFixture(t)
	pkg := kernel.NewUUID()
	a := f.line(t, f.cable, 0, 4)
	b := f.line(t, f.flour, 0, 2)
	loose := f.line(t, f.cable, 0, 1)
	for _, l := range []*picking.Line{a, b} {
		l.AssignPackage(&pkg)
		l.AssignResultPackage(&pkg)
	}
	loose.AssignPackage(&pkg)

	groups := f.document.PackageLines()

	require.Len(t, groups, 1)
	assert.True(t, groups[0].PackageID.IsEqual(pkg))
	assert.Len(t, groups[0].Lines, 2)
	assert.True(t, groups[0].QtyDone().IsZero())
}

func TestDocument_PutInPack(t *testing.T) {
	f := newFixture(t)
	done := f.line(t, f.cable, 2, 2)
	f.line(t, f.cable, 0, 3)

	packed, err := f.document.PutInPack(kernel.NewUUID())
	require.NoError(t, err)
	assert.Equal(t, []*picking.Line{done}, packed)

	_, err = f.document.PutInPack(kernel.NewUUID())
	assert.ErrorIs(t, err, picking.ErrNothingToPack)
}

func TestDocument_MarkDone(t *testing.T) {
	t.Run("should refuse a document without done quantity", func(t *testing.T) {
		f := newFixture(t)
		f.line(t, f.cable, 0, 3)

		err := f.document.MarkDone()

		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, picking.StatusDraft, f.document.Status())
	})

	t.Run("should refuse tracked lines without number", func(t *testing.T) {
		f := newFixture(t)
		f.line(t, f.flour, 1, 0)

		assert.ErrorIs(t, f.document.MarkDone(), errs.ErrValidation)
	})

	t.Run("should validate and lock the document", func(t *testing.T) {
		f := newFixture(t)
		f.line(t, f.cable, 1, 1)

		require.NoError(t, f.document.MarkDone())
		assert.Equal(t, picking.StatusDone, f.document.Status())

		l, err := picking.NewLine(kernel.NewUUID(), f.cable, f.units, f.stock, f.output)
		require.NoError(t, err)
		assert.ErrorIs(t, f.document.AddLine(l), picking.ErrDocumentIsNotEditable)
		assert.ErrorIs(t, f.document.MarkDone(), errs.ErrValidation)
	})
}

func TestDocument_PrepareForValidation(t *testing.T) {
	f := newFixture(t)
	adjustment := kernel.NewUUID()
	router := f.router.WithInventoryLocation(adjustment)
	l, err := picking.NewLine(kernel.NewUUID(), router, f.units, f.stock, f.output)
	require.NoError(t, err)
	require.NoError(t, l.Increment(kernel.One))
	l.AssignLotName("LPN123")
	require.NoError(t, f.document.AddLine(l))
	cable := f.line(t, f.cable, 1, 1)

	needLots := f.document.PrepareForValidation()

	require.Len(t, needLots, 1)
	assert.Same(t, l, needLots[0])
	assert.True(t, l.LocationID().IsEqual(adjustment))
	assert.True(t, cable.LocationID().IsEqual(f.stock))
}

func TestDocument_CloneIsIndependent(t *testing.T) {
	f := newFixture(t)
	l := f.line(t, f.cable, 1, 5)

	cp := f.document.Clone()
	require.NoError(t, cp.Line(l.ID()).Increment(kernel.One))
	extra, err := picking.NewLine(kernel.NewUUID(), f.cable, f.units, f.stock, f.output)
	require.NoError(t, err)
	require.NoError(t, cp.AddLine(extra))

	assert.True(t, l.QtyDone().Equal(kernel.One))
	assert.Equal(t, 1, f.document.LineCount())
	assert.Equal(t, 2, cp.LineCount())
}

func TestDocument_SortedLines(t *testing.T) {
	f := newFixture(t)
	r2 := f.line(t, f.router, 1, 0)
	r2.AssignLotName("SN-2")
	c := f.line(t, f.cable, 1, 0)
	r1 := f.line(t, f.router, 1, 0)
	r1.AssignLotName("SN-1")

	assert.Equal(t, []*picking.Line{c, r1, r2}, f.document.SortedLines())
}

func TestRestoreDocument(t *testing.T) {
	f := newFixture(t)
	units := f.units
	line, err := picking.RestoreLine(picking.LineState{
		ID:             kernel.NewUUID(),
		Product:        f.cable,
		UoM:            units,
		QtyDone:        kernel.QuantityFromInt(2),
		ReservedQty:    kernel.QuantityFromInt(4),
		LocationID:     f.stock,
		DestLocationID: f.output,
		Sequence:       7,
	})
	require.NoError(t, err)

	doc, err := picking.RestoreDocument(kernel.NewUUID(), "WH/OUT/00002", picking.StatusReady, f.cfg, f.stock, f.output, []*picking.Line{line}, "LPN123")
	require.NoError(t, err)

	next, err := picking.NewLine(kernel.NewUUID(), f.cable, units, f.stock, f.output)
	require.NoError(t, err)
	require.NoError(t, doc.AddLine(next))
	assert.Equal(t, 8, next.Sequence())
	assert.Equal(t, "LPN123", doc.LastScannedBarcode())

	_, err = picking.RestoreLine(picking.LineState{
		ID: kernel.NewUUID(), Product: f.cable, UoM: units, LocationID: f.stock, DestLocationID: f.output,
		Lot: mustLot(t, f.router),
	})
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func mustLot(t *testing.T, p *catalog.Product) *catalog.Lot {
	t.Helper()
	lot, err := catalog.NewLot(kernel.NewUUID(), "SN-X", p.ID())
	require.NoError(t, err)
	return lot
}

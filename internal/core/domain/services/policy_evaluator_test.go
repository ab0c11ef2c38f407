package services_test

import (
	"testing"

	"picking/internal/core/domain/model/barcode"
	"picking/internal/core/domain/model/picking"
	"picking/internal/core/domain/services"
	"picking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyEvaluator_Check(t *testing.T) {
	evaluator := services.NewPolicyEvaluator()

	t.Run("should pass without restrictions", func(t *testing.T) {
		f := newFixture(t)

		check := evaluator.Check(f.doc, f.state, productScan(f.cable))

		assert.True(t, check.OK)
		assert.NoError(t, check.Err())
	})

	t.Run("should require a source location first", func(t *testing.T) {
		f := newFixture(t, func(c *picking.Config) { c.RestrictScanSourceLocation = true })

		check := evaluator.Check(f.doc, f.state, productScan(f.cable))

		require.False(t, check.OK)
		assert.Equal(t, "Mandatory Source Location", check.Title)
		assert.Equal(t, "You are supposed to scan WH/Stock or another source location", check.Message)
		assert.ErrorIs(t, check.Err(), errs.ErrPolicyViolation)
	})

	t.Run("should record a scanned source location", func(t *testing.T) {
		f := newFixture(t, func(c *picking.Config) { c.RestrictScanSourceLocation = true })

		check := evaluator.Check(f.doc, f.state, &barcode.Data{Location: f.shelf})

		assert.True(t, check.OK)
		assert.Same(t, f.shelf, f.state.LastScannedSource)
		assert.Same(t, f.shelf, f.state.Location)
	})

	t.Run("should read a destination as a source when destinations are not scanned", func(t *testing.T) {
		f := newFixture(t, func(c *picking.Config) { c.RestrictScanSourceLocation = true })
		f.state.LastScannedSource = f.stock
		data := &barcode.Data{DestLocation: f.shelf}

		check := evaluator.Check(f.doc, f.state, data)

		assert.True(t, check.OK)
		assert.Same(t, f.shelf, data.Location)
		assert.Nil(t, data.DestLocation)
	})

	t.Run("should require a product", func(t *testing.T) {
		f := newFixture(t, func(c *picking.Config) { c.RestrictScanProduct = true })
		lot := f.lot(t, "LOT-1", f.flour)

		lotCheck := evaluator.Check(f.doc, f.state, &barcode.Data{Lot: lot})
		anyCheck := evaluator.Check(f.doc, f.state, &barcode.Data{DestLocation: f.dock})

		assert.Equal(t, "Scan a product before scanning a tracking number", lotCheck.Message)
		assert.Equal(t, "You must scan a product", anyCheck.Message)
		assert.Equal(t, "Not the expected scan", anyCheck.Title)
	})

	t.Run("should require a package before each product", func(t *testing.T) {
		f := newFixture(t, func(c *picking.Config) { c.RestrictPutInPack = picking.PackBeforeEachProduct })

		check := evaluator.Check(f.doc, f.state, productScan(f.cable))

		require.False(t, check.OK)
		assert.Equal(t, "You must scan a package", check.Message)

		pkgCheck := evaluator.Check(f.doc, f.state, &barcode.Data{Package: f.pkg(t, "PACK1", nil)})
		assert.True(t, pkgCheck.OK)
	})

	t.Run("should require packing the done line before switching product", func(t *testing.T) {
		f := newFixture(t, func(c *picking.Config) { c.RestrictPutInPack = picking.PackMandatory })
		f.state.Select(f.line(t, f.cable, 1, 0).ID())

		same := evaluator.Check(f.doc, f.state, productScan(f.cable))
		other := evaluator.Check(f.doc, f.state, productScan(f.flour))

		assert.True(t, same.OK)
		assert.False(t, other.OK)
		assert.Equal(t, "You must scan a package or put in pack", other.Message)
	})

	t.Run("should require packing even when the selected line is untouched", func(t *testing.T) {
		f := newFixture(t, func(c *picking.Config) { c.RestrictPutInPack = picking.PackMandatory })
		f.state.Select(f.line(t, f.cable, 0, 2).ID())

		check := evaluator.Check(f.doc, f.state, productScan(f.flour))

		require.False(t, check.OK)
		assert.Equal(t, "You must scan a package or put in pack", check.Message)
		assert.True(t, evaluator.Check(f.doc, f.state, productScan(f.cable)).OK)
	})

	t.Run("should require a destination before switching product", func(t *testing.T) {
		f := newFixture(t, func(c *picking.Config) { c.RestrictScanDestLocation = picking.DestMandatory })
		f.state.Select(f.line(t, f.cable, 1, 0).ID())

		check := evaluator.Check(f.doc, f.state, productScan(f.flour))

		require.False(t, check.OK)
		assert.Equal(t, "Mandatory Destination Location", check.Title)
		assert.Equal(t, "Please scan destination location for Cable before scanning other product", check.Message)

		destCheck := evaluator.Check(f.doc, f.state, &barcode.Data{DestLocation: f.dock})
		assert.True(t, destCheck.OK)
		assert.Same(t, f.dock, f.state.LastScannedDest)
		assert.True(t, evaluator.Check(f.doc, f.state, productScan(f.flour)).OK)
	})

	t.Run("should report the first failing rule", func(t *testing.T) {
		f := newFixture(t, func(c *picking.Config) {
			c.RestrictScanSourceLocation = true
			c.RestrictScanProduct = true
			c.RestrictPutInPack = picking.PackBeforeEachProduct
		})

		check := evaluator.Check(f.doc, f.state, &barcode.Data{Lot: f.lot(t, "L", f.flour)})

		assert.Equal(t, "Mandatory Source Location", check.Title)
	})

}

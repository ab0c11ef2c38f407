package services

import (
	"context"
	"errors"
	"fmt"

	"picking/internal/core/domain/model/barcode"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
	"picking/internal/core/domain/model/session"
	"picking/internal/core/ports"
	"picking/internal/pkg/errs"
)

// ClassifyInput is what the classifier needs to know about the session.
type ClassifyInput struct {
	Raw          string
	Filters      barcode.Filters
	Config       picking.Config
	Locations    session.Locations
	LineSelected bool
}

// Classifier maps a raw scanned string to barcode.Data.
//
// Classification fails soft: unknown codes come back unmatched and unreadable codes
// carry their ParseError in Data.Error, so the caller can still apply fallbacks such
// as new serial numbers or default product substitution. Only infrastructure errors
// are returned.
type Classifier struct {
	catalog ports.BarcodeCatalog
}

func NewClassifier(catalog ports.BarcodeCatalog) Classifier {
	return Classifier{catalog: catalog}
}

func (c Classifier) Classify(ctx context.Context, in ClassifyInput) (barcode.Data, error) {
	data, err := c.catalog.Parse(ctx, in.Raw, in.Filters)
	switch {
	case errors.Is(err, errs.ErrParse):
		data = barcode.Data{Error: err}
	case err != nil:
		return barcode.Data{}, fmt.Errorf("classify %q: %w", in.Raw, err)
	}
	data.Barcode = in.Raw

	// The lot filter may hide a lot of another product that can be used as is.
	if !data.Match && !in.Filters.IsEmpty() && !in.Config.CanCreateNewLot() && in.Config.UseExistingLots {
		unfiltered, lookupErr := c.catalog.GetByBarcode(ctx, in.Raw, barcode.KindLot)
		if lookupErr != nil && !errors.Is(lookupErr, errs.ErrObjectNotFound) {
			return barcode.Data{}, fmt.Errorf("classify %q: %w", in.Raw, lookupErr)
		}
		if lookupErr == nil && unfiltered.Lot != nil {
			data.Lot = unfiltered.Lot
			data.Match = true
		}
	}

	if data.Packaging != nil {
		if err = c.expandPackaging(ctx, &data); err != nil {
			return barcode.Data{}, err
		}
	}

	assignLocationRole(&data, in)
	return data, nil
}

// expandPackaging turns a packaging code into its product, with the quantity
// multiplied by the packaging size and expressed in the product's unit.
func (c Classifier) expandPackaging(ctx context.Context, data *barcode.Data) error {
	product := data.Product
	if product == nil || !product.ID().IsEqual(data.Packaging.ProductID()) {
		p, err := c.catalog.Product(ctx, data.Packaging.ProductID())
		if err != nil {
			return fmt.Errorf("load product of packaging %s: %w", data.Packaging.Name(), err)
		}
		product = p
	}
	data.Product = product
	data.SetQuantity(data.QuantityOr(kernel.One).Mul(data.Packaging.Qty()))
	uom := product.UoM()
	data.UoM = &uom
	return nil
}

// assignLocationRole decides whether a scanned location is a source or a destination.
// Locations of the destination or default trees are destinations unless they also
// belong to the source tree, in which case they are destinations only while a line is
// selected. Locations outside every tree are dropped with a parse error.
func assignLocationRole(data *barcode.Data, in ClassifyInput) {
	loc := data.Location
	if loc == nil {
		loc = data.DestLocation
	}
	if loc == nil {
		return
	}
	data.Location, data.DestLocation = nil, nil

	inSource := loc.IsChildOf(in.Locations.Source)
	inDest := loc.IsChildOf(in.Locations.Destination) || loc.IsChildOf(in.Locations.Default)
	switch {
	case inDest && (!inSource || in.LineSelected):
		data.DestLocation = loc
	case inSource:
		data.Location = loc
	default:
		data.Error = errs.NewParseError(in.Raw, fmt.Sprintf("location %s is not part of this transfer", loc.Name()))
	}
}

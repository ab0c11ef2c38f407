package services

import (
	"context"
	"fmt"

	"picking/internal/core/domain/model/barcode"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
	"picking/internal/core/domain/model/session"
	"picking/internal/core/ports"
	"picking/internal/pkg/errs"
)

const (
	msgProductExpected        = "You are expected to scan one or more products."
	msgProductOrPackage       = "You are expected to scan one or more products or a package available at the picking location"
	msgProductNotFound        = "Product not found"
	msgSerialAlreadyUsed      = "The scanned serial number is already used."
	msgSerialMultipleQuantity = "A product tracked by serial numbers can't have multiple quantities for the same serial number."
)

// Outcome tells the session controller what a resolution amounts to.
type Outcome int

const (
	// OutcomeApplied means a line was updated or created.
	OutcomeApplied Outcome = iota
	// OutcomeRejected means the scan was abandoned; Resolution.Rejection says why.
	OutcomeRejected
	// OutcomeAction means the code is a command to run instead of a line change.
	OutcomeAction
	// OutcomeSubstitute means the code is an unknown license plate to book on the
	// default product: scan the default product, then the code again.
	OutcomeSubstitute
)

// Resolution is the result of resolving a classified code against the document.
type Resolution struct {
	Outcome   Outcome
	Line      *picking.Line
	Rejection error
	Notices   []session.Notice
}

func rejected(err error, notice session.Notice) Resolution {
	return Resolution{Outcome: OutcomeRejected, Rejection: err, Notices: []session.Notice{notice}}
}

// LineResolver finds or creates the line a classified code affects and applies the
// code to it.
type LineResolver struct {
	catalog ports.BarcodeCatalog
}

func NewLineResolver(catalog ports.BarcodeCatalog) LineResolver {
	return LineResolver{catalog: catalog}
}

// Prepare remembers the scanned product and completes a lot scan with the lot's
// product.
func (r LineResolver) Prepare(ctx context.Context, st *session.State, data *barcode.Data) error {
	if data.Product != nil {
		st.LastScannedProduct = data.Product
	}
	if data.Lot != nil && data.Product == nil {
		product, err := r.catalog.Product(ctx, data.Lot.ProductID())
		if err != nil {
			return fmt.Errorf("load product of lot %s: %w", data.Lot.Name(), err)
		}
		data.Product = product
	}
	return nil
}

// ApplyLocation handles location scans. A source location becomes the scanning
// location and clears the selection; a destination is applied to the selected line,
// or to every done line when none is selected. It reports whether the scan is handled.
func (r LineResolver) ApplyLocation(doc *picking.Document, st *session.State, data *barcode.Data) bool {
	handled := false
	if loc := data.Location; loc != nil {
		st.Location = loc
		st.LastScannedSource = loc
		st.ClearSelection()
		handled = true
	}
	if dest := data.DestLocation; dest != nil {
		if selected := doc.LineByRef(st.SelectedLineID); selected != nil {
			selected.ChangeDestination(dest.ID())
		} else {
			for _, l := range doc.Lines() {
				if l.QtyDone().IsPositive() {
					l.ChangeDestination(dest.ID())
				}
			}
		}
		st.LastScannedDest = dest
		handled = true
	}
	return handled
}

// Resolve applies a product, lot, serial, weight or quantity code to the document.
// substituted marks the second step of a default product substitution, which must not
// trigger another substitution.
func (r LineResolver) Resolve(
	ctx context.Context,
	doc *picking.Document,
	st *session.State,
	data *barcode.Data,
	substituted bool,
) (Resolution, error) {
	if data.Action != barcode.ActionNone {
		return Resolution{Outcome: OutcomeAction}, nil
	}
	cfg := doc.Config()

	if data.Weight != nil {
		data.SetQuantity(*data.Weight)
	}

	current := r.adoptPreviousProduct(doc, st, cfg, data)
	product := data.Product
	if product == nil {
		return r.unresolved(cfg, data, substituted), nil
	}
	if data.Lot != nil && !data.Lot.ProductID().IsEqual(product.ID()) {
		data.Lot = nil
	}
	if data.Weight != nil {
		uom := product.UoM()
		data.UoM = &uom
	}

	current = doc.FindLine(r.lineQuery(st, data, current))

	var notices []session.Notice
	if !product.IsTracked() || data.HasTrackingNumber() || cfg.IncrementTrackedLine() {
		def := kernel.One
		if data.HasTrackingNumber() && current != nil && current.HasUnassignedQty() {
			def = kernel.Zero
		}
		if !data.HasQuantity() {
			data.SetQuantity(def)
		}
		if product.IsSerial() && data.HasTrackingNumber() && data.QuantityOr(kernel.Zero).GreaterThan(kernel.One) {
			data.SetQuantity(kernel.One)
			notices = append(notices, session.Danger("", msgSerialMultipleQuantity))
		}
	}

	if data.HasTrackingNumber() {
		if product.IsSerial() && doc.HasUsedSerial(product.ID(), data.TrackingNumber()) {
			return rejected(
				errs.NewDuplicateSerialError(data.TrackingNumber(), product.Name()),
				session.Danger("", msgSerialAlreadyUsed),
			), nil
		}
		if err := r.prefill(ctx, cfg, current, data); err != nil {
			return Resolution{}, err
		}
	}

	line, err := r.apply(doc, st, current, data)
	if err != nil {
		if isScanError(err) {
			return rejected(err, session.Danger("", err.Error())), nil
		}
		return Resolution{}, err
	}
	st.Select(line.ID())
	return Resolution{Outcome: OutcomeApplied, Line: line, Notices: notices}, nil
}

// adoptPreviousProduct gives a code without product the product of the selected or
// last scanned line when the code can only make sense there: a quantity, a lot, or an
// unknown code on a tracked line, which becomes a new lot or serial number.
func (r LineResolver) adoptPreviousProduct(doc *picking.Document, st *session.State, cfg picking.Config, data *barcode.Data) *picking.Line {
	if data.Product != nil {
		return nil
	}
	selected := doc.LineByRef(st.SelectedLineID)
	last := doc.LineByRef(st.LastScannedLineID)

	var current *picking.Line
	switch {
	case data.HasQuantity():
		current = selected
		if current == nil {
			current = last
		}
	case selected != nil && selected.Product().IsTracked():
		current = selected
	case last != nil && last.Product().IsTracked():
		current = last
	}
	if current == nil {
		return nil
	}

	previous := current.Product()
	if previous.IsTracked() && !data.Match && cfg.CanCreateNewLot() {
		data.LotName = data.Barcode
		data.Product = previous
	}
	// The default product may always take new serial numbers.
	if cfg.HasDefaultProduct() && previous.HasBarcode(cfg.DefaultProductBarcode) && previous.IsSerial() && !data.Match {
		data.LotName = data.Barcode
		data.Product = previous
	}
	if data.HasTrackingNumber() || data.HasQuantity() {
		data.Product = previous
	}
	return current
}

// unresolved decides what happens to a code that resolved to no product.
func (r LineResolver) unresolved(cfg picking.Config, data *barcode.Data, substituted bool) Resolution {
	if data.Error != nil {
		return rejected(data.Error, session.Danger("", scanErrorMessage(data.Error)))
	}
	if !substituted && canSubstitute(cfg, data) {
		return Resolution{Outcome: OutcomeSubstitute}
	}
	if cfg.GroupTrackingLot {
		return rejected(
			errs.NewParseError(data.Barcode, msgProductOrPackage),
			session.Dialog(msgProductNotFound, msgProductOrPackage),
		)
	}
	return rejected(errs.NewParseError(data.Barcode, msgProductExpected), session.Danger("", msgProductExpected))
}

// canSubstitute reports whether an unknown code is a license plate to book on the
// default product as a new serial number.
func canSubstitute(cfg picking.Config, data *barcode.Data) bool {
	return cfg.HasDefaultProduct() &&
		data.Barcode != cfg.DefaultProductBarcode &&
		!data.Match &&
		cfg.UseExistingLots &&
		barcode.LooksLikeLicensePlate(data.Barcode)
}

func (r LineResolver) lineQuery(st *session.State, data *barcode.Data, current *picking.Line) picking.LineQuery {
	q := picking.LineQuery{
		ProductID:       data.Product.ID(),
		TrackingNumber:  data.TrackingNumber(),
		PackageID:       packageID(data.Package),
		PreferredLineID: st.SelectedLineID,
		SkipPacked:      st.PendingPackage != nil,
	}
	if current != nil {
		q.PreferredLineID = idOf(current.ID())
	}
	if st.Location != nil {
		q.LocationID = idOf(st.Location.ID())
	}
	return q
}

// prefill suggests the package and owner of a lot or serial from stock when the
// operation type tracks them and the scan did not say.
func (r LineResolver) prefill(ctx context.Context, cfg picking.Config, current *picking.Line, data *barcode.Data) error {
	wantOwner := (current == nil || current.OwnerID() == nil) && cfg.GroupTrackingOwner && data.Owner == nil
	wantPackage := (current == nil || current.PackageID() == nil) && cfg.GroupTrackingLot && data.Package == nil
	if !cfg.UseExistingLots || !(wantOwner || wantPackage) {
		return nil
	}

	var lotID *kernel.UUID
	switch {
	case data.Lot != nil:
		lotID = idOf(data.Lot.ID())
	case current != nil && current.Lot() != nil:
		lotID = idOf(current.Lot().ID())
	}
	lotName := ""
	if lotID == nil {
		lotName = data.LotName
	}

	quant, err := r.catalog.PrefilledOwnerPackage(ctx, data.Product.ID(), lotID, lotName)
	if err != nil {
		return fmt.Errorf("prefill owner and package: %w", err)
	}
	if wantPackage && quant.Package != nil {
		data.Package = quant.Package
	}
	if wantOwner && quant.Owner != nil {
		data.Owner = quant.Owner
	}
	return nil
}

// apply updates current, splitting what exceeds its reservation into a copy, or
// creates a new line when there is no current line.
func (r LineResolver) apply(doc *picking.Document, st *session.State, current *picking.Line, data *barcode.Data) (*picking.Line, error) {
	qty := data.QuantityOr(kernel.Zero)
	if current == nil {
		return createLine(doc, st, newLineSpec{
			product:   data.Product,
			uom:       data.UoM,
			qty:       qty,
			lot:       data.Lot,
			lotName:   data.LotName,
			packageID: packageID(data.Package),
			ownerID:   ownerID(data.Owner),
		})
	}

	if !data.Product.IsSerial() && data.UoM != nil {
		if converted, ok := data.UoM.Convert(qty, current.UoM()); ok {
			qty = converted
			uom := current.UoM()
			data.UoM = &uom
		}
	}

	excess := kernel.Zero
	if current.IsReserved() && !data.Product.IsTracked() {
		if remaining := current.RemainingQty(); qty.GreaterThan(remaining) {
			excess = qty.Sub(remaining)
			qty = remaining
		}
	}

	if qty.IsPositive() || data.HasTrackingNumber() {
		if err := updateLine(current, qty, data); err != nil {
			return nil, err
		}
	}
	if !excess.IsPositive() {
		return current, nil
	}
	return createLine(doc, st, newLineSpec{
		product: data.Product,
		qty:     excess,
		ownerID: ownerID(data.Owner),
		copyOf:  current,
	})
}

func updateLine(line *picking.Line, qty kernel.Quantity, data *barcode.Data) error {
	if err := line.Increment(qty); err != nil {
		return err
	}
	switch {
	case data.Lot != nil:
		if err := line.AssignLot(data.Lot); err != nil {
			return err
		}
	case data.LotName != "":
		line.AssignLotName(data.LotName)
	}
	if data.Package != nil {
		line.AssignPackage(packageID(data.Package))
	}
	if data.Owner != nil {
		line.AssignOwner(ownerID(data.Owner))
	}
	return nil
}

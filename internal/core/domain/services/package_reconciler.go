package services

import (
	"context"
	"fmt"

	"picking/internal/core/domain/model/barcode"
	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
	"picking/internal/core/domain/model/session"
	"picking/internal/core/ports"
)

// PutInPackRequest asks the session controller to close the done lines into a new
// package.
type PutInPackRequest struct {
	Name        string
	PackageType *catalog.PackageType
}

// Effect is what a package scan did to the document.
type Effect struct {
	// Stopped means the scan is fully handled and no product resolution follows.
	Stopped   bool
	PutInPack *PutInPackRequest
	Rejection error
	Notices   []session.Notice
	Changed   bool
}

func stopped() Effect { return Effect{Stopped: true, Changed: true} }

// PackageReconciler applies package, package type and package name scans.
type PackageReconciler struct {
	catalog ports.BarcodeCatalog
}

func NewPackageReconciler(catalog ports.BarcodeCatalog) PackageReconciler {
	return PackageReconciler{catalog: catalog}
}

func (r PackageReconciler) Reconcile(ctx context.Context, doc *picking.Document, st *session.State, data *barcode.Data) (Effect, error) {
	pkg := data.Package
	if pkg == nil && data.PackageType == nil && data.PackageName == "" {
		return Effect{}, nil
	}
	st.LastScannedPackageID = nil

	switch {
	case pkg == nil && data.PackageType != nil:
		return Effect{Stopped: true, PutInPack: &PutInPackRequest{PackageType: data.PackageType}}, nil
	case pkg == nil:
		return Effect{Stopped: true, PutInPack: &PutInPackRequest{Name: data.PackageName}}, nil
	}

	if loc := pkg.LocationID(); loc != nil && !pkg.IsAt(doc.DestLocationID()) && (st.Location == nil || !pkg.IsAt(st.Location.ID())) {
		return Effect{}, nil
	}

	if doc.Config().MoveEntirePackages {
		if effect, handled := r.moveEntirePackage(doc, st, pkg); handled {
			return effect, nil
		}
	}

	quants, err := r.catalog.Quants(ctx, pkg.QuantIDs())
	if err != nil {
		return Effect{}, fmt.Errorf("load content of package %s: %w", pkg.Name(), err)
	}

	current := doc.LineByRef(st.SelectedLineID)
	if current == nil {
		current = doc.LineByRef(st.LastScannedLineID)
	}

	if doc.Config().RestrictPutInPack == picking.PackBeforeEachProduct &&
		(current == nil || current.IsPacked()) &&
		!pkg.IsAt(doc.SourceLocationID()) {
		st.PendingPackage = pkg
		return stopped(), nil
	}

	if current != nil && !current.IsPacked() && (len(quants) == 0 || pkg.IsAt(current.DestLocationID())) {
		current.AssignResultPackage(idOf(pkg.ID()))
		st.LastScannedPackageID = idOf(pkg.ID())
		return stopped(), nil
	}

	if st.Location == nil || !pkg.IsAt(st.Location.ID()) {
		return Effect{}, nil
	}

	if doc.CountScannedFromPackage(pkg.ID()) >= len(quants) {
		return Effect{
			Stopped:   true,
			Rejection: ErrPackageAlreadyScanned,
			Notices:   []session.Notice{session.Danger("", ErrPackageAlreadyScanned.Message)},
		}, nil
	}

	// Lines booked from earlier quants stay on doc when a later one fails. doc is
	// the scan's working copy, which the session controller drops on rejection.
	for _, q := range quants {
		if err = r.takeQuant(doc, st, pkg, q); err != nil {
			if isScanError(err) {
				return Effect{Stopped: true, Rejection: err, Notices: []session.Notice{session.Danger("", err.Error())}}, nil
			}
			return Effect{}, err
		}
	}
	st.ClearSelection()
	st.LastScannedPackageID = idOf(pkg.ID())
	return stopped(), nil
}

// moveEntirePackage marks the reserved entire package lines of pkg as done. It
// reports false when the document does not move pkg as a whole.
func (r PackageReconciler) moveEntirePackage(doc *picking.Document, st *session.State, pkg *catalog.Package) (Effect, bool) {
	for _, pl := range doc.PackageLines() {
		if !pl.PackageID.IsEqual(pkg.ID()) {
			continue
		}
		if pl.QtyDone().IsPositive() {
			return Effect{
				Stopped:   true,
				Rejection: ErrPackageAlreadyScanned,
				Notices:   []session.Notice{session.Danger("", ErrPackageAlreadyScanned.Message)},
			}, true
		}
		for _, l := range pl.Lines {
			if err := l.SetQtyDone(l.ReservedQty()); err != nil {
				return Effect{Stopped: true, Rejection: err, Notices: []session.Notice{session.Danger("", err.Error())}}, true
			}
		}
		st.ClearSelection()
		st.LastScannedPackageID = idOf(pkg.ID())
		return stopped(), true
	}
	return Effect{}, false
}

// takeQuant books the quant's content out of pkg. Lines already expecting it are
// topped up to their reserved quantity first; what is left lands on an unreserved
// matching line, or on a new one.
func (r PackageReconciler) takeQuant(doc *picking.Document, st *session.State, pkg *catalog.Package, q *catalog.Quant) error {
	trackingNumber := ""
	if q.Lot() != nil {
		trackingNumber = q.Lot().Name()
	}
	query := picking.LineQuery{
		ProductID:      q.Product().ID(),
		TrackingNumber: trackingNumber,
		PackageID:      idOf(pkg.ID()),
	}

	remaining := q.Quantity()
	for remaining.IsPositive() {
		line := doc.FindLine(query)
		if line == nil || (line.IsReserved() && !line.RemainingQty().IsPositive()) {
			return r.splitQuant(doc, st, pkg, q, line, remaining)
		}

		take := remaining
		if line.IsReserved() {
			take = remaining.Min(line.RemainingQty())
		}
		if err := line.Increment(take); err != nil {
			return err
		}
		if q.Lot() != nil && line.Lot() == nil {
			if err := line.AssignLot(q.Lot()); err != nil {
				return err
			}
		}
		remaining = remaining.Sub(take)
	}
	return nil
}

// splitQuant puts qty of the quant on a new line, a copy of full when given.
func (r PackageReconciler) splitQuant(
	doc *picking.Document,
	st *session.State,
	pkg *catalog.Package,
	q *catalog.Quant,
	full *picking.Line,
	qty kernel.Quantity,
) error {
	_, err := createLine(doc, st, newLineSpec{
		product:   q.Product(),
		qty:       qty,
		lot:       q.Lot(),
		packageID: idOf(pkg.ID()),
		ownerID:   ownerID(q.Owner()),
		copyOf:    full,
	})
	if err != nil {
		return fmt.Errorf("%w: package %s", err, pkg.Name())
	}
	return nil
}

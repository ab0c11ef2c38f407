package services

import (
	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
	"picking/internal/core/domain/model/session"
)

// newLineSpec describes a line to create. copyOf, when set, provides every identity
// field and the other fields only add to it.
type newLineSpec struct {
	product         *catalog.Product
	uom             *catalog.UoM
	qty             kernel.Quantity
	lot             *catalog.Lot
	lotName         string
	packageID       *kernel.UUID
	resultPackageID *kernel.UUID
	ownerID         *kernel.UUID
	copyOf          *picking.Line
}

// createLine adds a line to doc. New lines start at the current source location and
// go to the document destination, or to the default location for the default product.
// A pending package becomes the line's result package and stops being pending.
func createLine(doc *picking.Document, st *session.State, spec newLineSpec) (*picking.Line, error) {
	cfg := doc.Config()
	previous := doc.LineByRef(st.LastScannedLineID)

	var (
		line *picking.Line
		err  error
	)
	if spec.copyOf != nil {
		line, err = spec.copyOf.CopyIdentity(kernel.NewUUID())
	} else {
		line, err = picking.NewLine(kernel.NewUUID(), spec.product, lineUoM(spec), sourceOf(doc, st), doc.DestLocationID())
	}
	if err != nil {
		return nil, err
	}

	if line.ForDefaultProduct(cfg) && cfg.DefaultLocationID != nil {
		line.ChangeDestination(*cfg.DefaultLocationID)
	}
	if err = line.SetQtyDone(spec.qty); err != nil {
		return nil, err
	}
	switch {
	case spec.lot != nil:
		if err = line.AssignLot(spec.lot); err != nil {
			return nil, err
		}
	case spec.lotName != "":
		line.AssignLotName(spec.lotName)
	}
	if spec.packageID != nil {
		line.AssignPackage(spec.packageID)
	}
	if spec.resultPackageID != nil {
		line.AssignResultPackage(spec.resultPackageID)
	}
	if spec.ownerID != nil {
		line.AssignOwner(spec.ownerID)
	}

	if pending := st.PendingPackage; pending != nil {
		id := pending.ID()
		line.AssignResultPackage(&id)
		st.LastScannedPackageID = &id
		st.PendingPackage = nil
	}

	if err = doc.AddLine(line); err != nil {
		return nil, err
	}
	if previous != nil && !previous.Product().IsEqual(line.Product()) {
		st.LastScannedDest = nil
	}
	return line, nil
}

func lineUoM(spec newLineSpec) catalog.UoM {
	if spec.uom != nil && spec.uom.SameCategory(spec.product.UoM()) {
		return *spec.uom
	}
	return spec.product.UoM()
}

func sourceOf(doc *picking.Document, st *session.State) kernel.UUID {
	if st.Location != nil {
		return st.Location.ID()
	}
	return doc.SourceLocationID()
}

func idOf(id kernel.UUID) *kernel.UUID { return &id }

func ownerID(o *catalog.Owner) *kernel.UUID {
	if o == nil {
		return nil
	}
	return idOf(o.ID())
}

func packageID(p *catalog.Package) *kernel.UUID {
	if p == nil {
		return nil
	}
	return idOf(p.ID())
}

package picking

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/pkg/errs"
	"picking/internal/pkg/guard"
)

var (
	ErrDocumentIsNotConstructed = errors.New("Document must be created via NewDocument or RestoreDocument constructor")
	ErrDocumentIsNotEditable    = errors.New("document is not editable")
	ErrLineNotFound             = errors.New("line not found")
	ErrNothingToPack            = errors.New("there is nothing eligible to put in a pack")
)

// Document is a transfer being scanned (a picking). It is the aggregate root for its
// lines and knows the policy configuration of its operation type.
//
// Example:
//
//	doc, err := picking.NewDocument(kernel.NewUUID(), "WH/OUT/00042", cfg, stockID, outputID)
//	if err != nil {
//	    return err
//	}
//	line, _ := picking.NewLine(kernel.NewUUID(), product, product.UoM(), stockID, outputID)
//	_ = line.Increment(kernel.One)
//	err = doc.AddLine(line)
type Document struct {
	id                 kernel.UUID
	name               string
	status             Status
	config             Config
	sourceLocationID   kernel.UUID
	destLocationID     kernel.UUID
	lines              []*Line
	nextSequence       int
	lastScannedBarcode string
	guard              guard.ConstructorGuard
}

// NewDocument creates an empty draft document.
func NewDocument(id kernel.UUID, name string, config Config, sourceLocationID, destLocationID kernel.UUID) (*Document, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("document name")
	}
	if err := errors.Join(
		id.Validate(),
		config.Validate(),
		sourceLocationID.Validate(),
		destLocationID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Document{
		id:               id,
		name:             name,
		status:           StatusDraft,
		config:           config,
		sourceLocationID: sourceLocationID,
		destLocationID:   destLocationID,
		nextSequence:     1,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// RestoreDocument rebuilds a persisted document with its lines.
func RestoreDocument(
	id kernel.UUID,
	name string,
	status Status,
	config Config,
	sourceLocationID, destLocationID kernel.UUID,
	lines []*Line,
	lastScannedBarcode string,
) (*Document, error) {
	doc, err := NewDocument(id, name, config, sourceLocationID, destLocationID)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	doc.status = status
	doc.lastScannedBarcode = lastScannedBarcode
	for _, l := range lines {
		if err = l.Validate(); err != nil {
			return nil, err
		}
		doc.lines = append(doc.lines, l)
		if l.sequence >= doc.nextSequence {
			doc.nextSequence = l.sequence + 1
		}
	}
	return doc, nil
}

func (d *Document) Validate() error {
	if d == nil {
		return ErrDocumentIsNotConstructed
	}
	return d.guard.Validate(ErrDocumentIsNotConstructed)
}

func (d *Document) ID() kernel.UUID { return d.id }
func (d *Document) Name() string { return d.name }
func (d *Document) Status() Status { return d.status }
func (d *Document) Config() Config { return d.config }
func (d *Document) SourceLocationID() kernel.UUID { return d.sourceLocationID }
func (d *Document) DestLocationID() kernel.UUID { return d.destLocationID }
func (d *Document) LineCount() int { return len(d.lines) }

// LastScannedBarcode is the code carried over from the document this one succeeds.
// It is replayed as the first scan of the new session.
func (d *Document) LastScannedBarcode() string { return d.lastScannedBarcode }

// CarryBarcode records the code to replay when the document is opened for scanning.
func (d *Document) CarryBarcode(raw string) { d.lastScannedBarcode = raw }

// Lines returns the lines in creation order. The slice is a copy; the lines are not.
func (d *Document) Lines() []*Line {
	return append([]*Line(nil), d.lines...)
}

// Line returns the line with the given id, or nil.
func (d *Document) Line(id kernel.UUID) *Line {
	for _, l := range d.lines {
		if l.id.IsEqual(id) {
			return l
		}
	}
	return nil
}

// LineByRef resolves an optional line reference.
func (d *Document) LineByRef(id *kernel.UUID) *Line {
	if id == nil {
		return nil
	}
	return d.Line(*id)
}

// AddLine appends a line and gives it the next sequence number.
func (d *Document) AddLine(l *Line) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if !d.status.IsEditable() {
		return fmt.Errorf("%w: %s is %s", ErrDocumentIsNotEditable, d.name, d.status)
	}
	if d.Line(l.id) != nil {
		return errs.NewValueIsInvalidErrorWithCause("line", fmt.Errorf("line %s already exists", l.id))
	}
	l.sequence = d.nextSequence
	d.nextSequence++
	d.lines = append(d.lines, l)
	return nil
}

// SortedLines lists every line, ungrouped, ordered by product name, tracking number
// and creation order.
func (d *Document) SortedLines() []*Line {
	out := d.Lines()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.product.Name() != b.product.Name() {
			return a.product.Name() < b.product.Name()
		}
		if a.TrackingNumber() != b.TrackingNumber() {
			return a.TrackingNumber() < b.TrackingNumber()
		}
		return a.sequence < b.sequence
	})
	return out
}

// HasUsedSerial reports whether a serial tracked line of productID already holds the
// serial number with a done quantity.
func (d *Document) HasUsedSerial(productID kernel.UUID, serial string) bool {
	for _, l := range d.lines {
		if !l.product.IsSerial() || !l.product.ID().IsEqual(productID) {
			continue
		}
		if !l.qtyDone.IsZero() && l.TrackingNumber() == serial {
			return true
		}
	}
	return false
}

// CountScannedFromPackage counts lines taking a done quantity out of the package.
func (d *Document) CountScannedFromPackage(packageID kernel.UUID) int {
	n := 0
	for _, l := range d.lines {
		if l.packageID != nil && l.packageID.IsEqual(packageID) && l.qtyDone.IsPositive() {
			n++
		}
	}
	return n
}

// PackageLine groups the lines moving a whole package, i.e. lines whose source and
// result package are the same.
type PackageLine struct {
	PackageID kernel.UUID
	Lines     []*Line
}

// QtyDone sums the done quantity of the grouped lines.
func (p PackageLine) QtyDone() kernel.Quantity {
	total := kernel.Zero
	for _, l := range p.Lines {
		total = total.Add(l.qtyDone)
	}
	return total
}

// PackageLines returns the entire package moves of the document in first seen order.
func (d *Document) PackageLines() []PackageLine {
	var out []PackageLine
	index := map[kernel.UUID]int{}
	for _, l := range d.lines {
		if l.packageID == nil || !kernel.SameID(l.packageID, l.resultPackageID) {
			continue
		}
		i, ok := index[*l.packageID]
		if !ok {
			i = len(out)
			index[*l.packageID] = i
			out = append(out, PackageLine{PackageID: *l.packageID})
		}
		out[i].Lines = append(out[i].Lines, l)
	}
	return out
}

// PutInPack closes every done, unpacked line into the package and returns them.
func (d *Document) PutInPack(packageID kernel.UUID) ([]*Line, error) {
	if !d.status.IsEditable() {
		return nil, fmt.Errorf("%w: %s is %s", ErrDocumentIsNotEditable, d.name, d.status)
	}
	var packed []*Line
	for _, l := range d.lines {
		if l.qtyDone.IsPositive() && l.resultPackageID == nil {
			id := packageID
			l.resultPackageID = &id
			packed = append(packed, l)
		}
	}
	if len(packed) == 0 {
		return nil, ErrNothingToPack
	}
	return packed, nil
}

// PrepareForValidation moves default product lines to the product's inventory
// adjustment location, so the real source never goes negative, and returns the default
// product lines holding a serial name that has no lot record yet.
func (d *Document) PrepareForValidation() []*Line {
	var needLots []*Line
	for _, l := range d.lines {
		if !l.ForDefaultProduct(d.config) {
			continue
		}
		if loc := l.product.InventoryLocationID(); loc != nil {
			l.locationID = *loc
		}
		if l.lot == nil && l.lotName != "" {
			needLots = append(needLots, l)
		}
	}
	return needLots
}

// MarkDone validates the document. At least one unit must be done, and every tracked
// line with a done quantity needs a lot or serial unless new numbers can be created for
// it at validation.
func (d *Document) MarkDone() error {
	anyDone := false
	for _, l := range d.lines {
		if l.qtyDone.IsZero() {
			continue
		}
		anyDone = true
		if l.product.IsTracked() && l.TrackingNumber() == "" && !d.config.IncrementTrackedLine() {
			return errs.NewValidationError(
				d.id.String(),
				fmt.Sprintf("you need to supply a lot/serial number for product %s", l.product.Name()),
			)
		}
	}
	if !anyDone {
		return errs.NewValidationError(d.id.String(), "no quantity is done")
	}

	status, err := d.status.Done()
	if err != nil {
		return errs.NewValidationErrorWithCause(d.id.String(), "document cannot be validated", err)
	}
	d.status = status
	return nil
}

// Cancel abandons the document.
func (d *Document) Cancel() error {
	status, err := d.status.Cancel()
	if err != nil {
		return err
	}
	d.status = status
	return nil
}

// Clone returns a deep copy that can be mutated without touching d.
func (d *Document) Clone() *Document {
	cp := *d
	cp.lines = make([]*Line, len(d.lines))
	for i, l := range d.lines {
		cp.lines[i] = l.clone()
	}
	return &cp
}

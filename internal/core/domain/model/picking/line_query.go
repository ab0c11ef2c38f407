package picking

import "picking/internal/core/domain/model/kernel"

// LineQuery describes the line a scanned product should land on.
type LineQuery struct {
	ProductID kernel.UUID
	// TrackingNumber excludes lines already holding another lot or serial.
	TrackingNumber string
	// PackageID restricts the search to lines taking stock out of this package.
	PackageID *kernel.UUID
	// LocationID favours lines at the current source location.
	LocationID *kernel.UUID
	// PreferredLineID wins whenever it qualifies, usually the selected line.
	PreferredLineID *kernel.UUID
	// SkipPacked ignores lines already closed into a result package.
	SkipPacked bool
}

// FindLine picks the line a scan should increment, or nil when a new line is needed.
//
// Among qualifying lines the preferred one wins; otherwise the best scored line in
// creation order: same tracking number first, then lines with reserved quantity left,
// then unreserved lines, then lines at the requested location.
func (d *Document) FindLine(q LineQuery) *Line {
	var (
		best      *Line
		bestScore = -1
	)
	for _, l := range d.lines {
		if !l.qualifies(q) {
			continue
		}
		if q.PreferredLineID != nil && l.id.IsEqual(*q.PreferredLineID) {
			return l
		}
		if s := l.score(q); s > bestScore {
			best, bestScore = l, s
		}
	}
	return best
}

func (l *Line) qualifies(q LineQuery) bool {
	if !l.product.ID().IsEqual(q.ProductID) {
		return false
	}
	if q.TrackingNumber != "" && !l.CanTakeTrackingNumber(q.TrackingNumber) {
		return false
	}
	if l.product.IsSerial() && q.TrackingNumber == "" && !l.qtyDone.LessThan(kernel.One) {
		return false
	}
	if q.PackageID != nil && !kernel.SameID(l.packageID, q.PackageID) {
		return false
	}
	if q.SkipPacked && l.resultPackageID != nil {
		return false
	}
	return true
}

func (l *Line) score(q LineQuery) int {
	s := 0
	if q.TrackingNumber != "" && l.TrackingNumber() == q.TrackingNumber {
		s += 8
	}
	switch {
	case l.RemainingQty().IsPositive():
		s += 4
	case !l.IsReserved():
		s += 2
	}
	if q.LocationID != nil && l.locationID.IsEqual(*q.LocationID) {
		s++
	}
	return s
}

package session

import (
	"picking/internal/core/domain/model/catalog"
	"picking/internal/core/domain/model/kernel"
)

// State is the mutable scanning context of a session.
type State struct {
	// ScannedBarcode is the raw code of the scan in progress, forwarded to a successor
	// document on rollover.
	ScannedBarcode string

	SelectedLineID    *kernel.UUID
	LastScannedLineID *kernel.UUID

	// Location is the source location lines are currently scanned from.
	Location *catalog.Location

	LastScannedProduct *catalog.Product
	LastScannedSource  *catalog.Location
	LastScannedDest    *catalog.Location
	// LastScannedPackageID is the package the latest scan dealt with.
	LastScannedPackageID *kernel.UUID
	// PendingPackage waits to become the result package of the next created line.
	PendingPackage *catalog.Package
}

// NewState starts a fresh context scanning from the document's source location.
func NewState(source *catalog.Location) *State {
	return &State{Location: source}
}

// CurrentLocation is the source location the operator has established: the scanned
// one, or the default one once a line is being worked on. Nil before either happens.
func (s *State) CurrentLocation() *catalog.Location {
	if s.LastScannedSource != nil {
		return s.LastScannedSource
	}
	if s.SelectedLineID != nil {
		return s.Location
	}
	return nil
}

// Select makes the line both selected and last scanned.
func (s *State) Select(id kernel.UUID) {
	selected, last := id, id
	s.SelectedLineID = &selected
	s.LastScannedLineID = &last
}

// ClearSelection deselects without forgetting the last scanned line.
func (s *State) ClearSelection() {
	s.SelectedLineID = nil
}

// Clone copies the state; catalog records are shared since they are immutable.
func (s *State) Clone() *State {
	cp := *s
	return &cp
}

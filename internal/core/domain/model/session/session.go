package session

import (
	"errors"
	"time"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/picking"
	"picking/internal/pkg/guard"
)

var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")

// Session binds an operator's scanning State to the document being scanned.
type Session struct {
	id           kernel.UUID
	document     *picking.Document
	locations    Locations
	state        *State
	openedAt     time.Time
	lastActivity time.Time
	dirty        bool
	rollovers    int
	guard        guard.ConstructorGuard
}

// NewSession opens a session on doc. Scanning starts from the source location tree.
func NewSession(id kernel.UUID, doc *picking.Document, locations Locations, now time.Time) (*Session, error) {
	if err := errors.Join(id.Validate(), doc.Validate(), locations.Validate()); err != nil {
		return nil, err
	}
	return &Session{
		id:           id,
		document:     doc,
		locations:    locations,
		state:        NewState(locations.Source),
		openedAt:     now,
		lastActivity: now,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

func (s *Session) ID() kernel.UUID { return s.id }
func (s *Session) Document() *picking.Document { return s.document }
func (s *Session) State() *State { return s.state }
func (s *Session) Locations() Locations { return s.locations }
func (s *Session) OpenedAt() time.Time { return s.openedAt }
func (s *Session) LastActivity() time.Time { return s.lastActivity }
func (s *Session) IsDirty() bool { return s.dirty }
func (s *Session) Rollovers() int { return s.rollovers }

// Commit replaces document and state with the settled results of a scan.
func (s *Session) Commit(doc *picking.Document, state *State, changed bool) {
	s.document = doc
	s.state = state
	if changed {
		s.dirty = true
	}
}

// LoadDocument switches to a new document and resets the scanning state.
func (s *Session) LoadDocument(doc *picking.Document, locations Locations, rollover bool) {
	s.document = doc
	s.locations = locations
	s.state = NewState(locations.Source)
	s.dirty = false
	if rollover {
		s.rollovers++
	}
}

// MarkSaved clears the dirty flag after the document was persisted.
func (s *Session) MarkSaved() { s.dirty = false }

// Touch records operator activity.
func (s *Session) Touch(now time.Time) { s.lastActivity = now }

// IdleFor is the time elapsed since the last activity.
func (s *Session) IdleFor(now time.Time) time.Duration {
	return now.Sub(s.lastActivity)
}

// Package memory keeps live scanning sessions in process memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"picking/internal/core/domain/model/kernel"
	"picking/internal/core/domain/model/session"
	"picking/internal/pkg/errs"
)

type entry struct {
	session *session.Session
	// lock holds one token while the session is acquired.
	lock chan struct{}
}

// SessionStore implements ports.SessionRepository. Each session has its own lock, so
// scans of different sessions never wait for each other.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[kernel.UUID]*entry
}

func NewSessionStore() *SessionStore {
	return &SessionStore{entries: make(map[kernel.UUID]*entry)}
}

func (s *SessionStore) Add(_ context.Context, sess *session.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[sess.ID()]; ok {
		return errs.NewValueIsInvalidError("session " + sess.ID().String() + " already registered")
	}
	s.entries[sess.ID()] = &entry{session: sess, lock: make(chan struct{}, 1)}
	return nil
}

// Acquire waits for the session lock. The returned release function may be called
// more than once.
func (s *SessionStore) Acquire(ctx context.Context, id kernel.UUID) (*session.Session, func(), error) {
	e, ok := s.lookup(id)
	if !ok {
		return nil, nil, errs.NewObjectNotFoundError("session", id.String())
	}

	select {
	case e.lock <- struct{}{}:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}

	var once sync.Once
	release := func() { once.Do(func() { <-e.lock }) }

	// The session may have been closed while we waited.
	if current, stillThere := s.lookup(id); !stillThere || current != e {
		release()
		return nil, nil, errs.NewObjectNotFoundError("session", id.String())
	}
	return e.session, release, nil
}

// Remove forgets the session. It does not take the session lock, so a holder of the
// lock may remove its own session.
func (s *SessionStore) Remove(_ context.Context, id kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return errs.NewObjectNotFoundError("session", id.String())
	}
	delete(s.entries, id)
	return nil
}

// IDs lists the live sessions in a stable order.
func (s *SessionStore) IDs(_ context.Context) ([]kernel.UUID, error) {
	s.mu.RLock()
	ids := make([]kernel.UUID, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func (s *SessionStore) lookup(id kernel.UUID) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

package snapshot

import (
	"sync"

	"fintrack/internal/core"
)

// Store holds zero or one snapshot: the last transaction set fetched from the
// ledger, together with the user it belongs to. The snapshot is replaced
// wholesale after every successful list; there is no partial update operation.
// A locally-patched cache can silently diverge from server state after a
// failed or half-applied mutation, which wholesale replacement rules out.
type Store struct {
	mu     sync.Mutex
	userID string
	items  []core.Transaction
	loaded bool
}

func New() *Store {
	return &Store{}
}

// Replace atomically substitutes the snapshot with a new user's set.
func (s *Store) Replace(userID string, items []core.Transaction) {
	cp := make([]core.Transaction, len(items))
	copy(cp, items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.items = cp
	s.loaded = true
}

// Clear empties the store, as if no fetch had succeeded yet.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.items = nil
	s.loaded = false
}

// Get returns a copy of the snapshot and whether one is held. Callers may
// filter and sort the copy freely without affecting the store.
func (s *Store) Get() ([]core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, false
	}
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, true
}

// UserID returns the user the current snapshot belongs to, or "" when empty.
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Len returns the number of transactions in the snapshot.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

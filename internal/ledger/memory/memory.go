package memory

import (
	"context"
	"net/http"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// Store is an in-memory ledger used by tests and the offline demo backend. It
// mimics the remote service's behavior, including its error responses, so the
// coordinator cannot tell the two apart.
type Store struct {
	mu    sync.Mutex
	items map[string][]core.Transaction // keyed by user id
}

// Ensure interface conformance
var _ ledger.Ledger = (*Store)(nil)

func New() *Store {
	return &Store{items: make(map[string][]core.Transaction)}
}

// Seed loads transactions without validation, for test fixtures.
func (s *Store) Seed(txs ...core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range txs {
		s.items[tx.UserID] = append(s.items[tx.UserID], tx)
	}
}

// List returns a copy of the user's transactions. Unknown users get an empty
// list, matching the remote service.
func (s *Store) List(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items[userID]))
	copy(out, s.items[userID])
	return out, nil
}

func (s *Store) Create(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, &ledger.APIError{StatusCode: http.StatusBadRequest, Message: err.Error()}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items[tx.UserID] {
		if existing.TransactionID == tx.TransactionID {
			return core.Transaction{}, &ledger.APIError{
				StatusCode: http.StatusConflict,
				Message:    "transaction already exists: " + tx.TransactionID,
			}
		}
	}
	s.items[tx.UserID] = append(s.items[tx.UserID], tx)
	return tx, nil
}

func (s *Store) Update(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, &ledger.APIError{StatusCode: http.StatusBadRequest, Message: err.Error()}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.items[tx.UserID]
	for i, existing := range list {
		if existing.TransactionID == tx.TransactionID {
			list[i] = tx
			return tx, nil
		}
	}
	return core.Transaction{}, s.notFound(tx.TransactionID)
}

func (s *Store) Delete(_ context.Context, userID, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.items[userID]
	for i, existing := range list {
		if existing.TransactionID == transactionID {
			s.items[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return s.notFound(transactionID)
}

func (s *Store) notFound(transactionID string) error {
	return &ledger.APIError{
		StatusCode: http.StatusNotFound,
		Message:    "transaction not found: " + transactionID,
	}
}

// Package memstore is the in-memory TransactionStore adapter. The ledger
// lives for the life of the process; restarting the service starts from
// an empty ledger. In production this could be backed by Postgres.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ledgerlens/ledgerlens-go/internal/domain"
)

// Store is a thread-safe in-memory transaction ledger.
type Store struct {
	mu       sync.RWMutex
	txns     []domain.Transaction
	revision uint64
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// List returns a copy of the ledger in insertion order. Callers may
// mutate the returned slice freely.
func (s *Store) List(ctx context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, len(s.txns))
	copy(out, s.txns)
	return out, nil
}

// Append stores the given transactions at the end of the ledger. Entries
// without an ID get a fresh UUID; caller-supplied IDs are kept as-is.
// The stored copies are returned in input order.
func (s *Store) Append(ctx context.Context, txns []domain.Transaction) ([]domain.Transaction, error) {
	if len(txns) == 0 {
		return nil, nil
	}

	stored := make([]domain.Transaction, len(txns))
	copy(stored, txns)
	for i := range stored {
		if stored[i].ID == "" {
			stored[i].ID = uuid.NewString()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.txns = append(s.txns, stored...)
	s.revision++

	out := make([]domain.Transaction, len(stored))
	copy(out, stored)
	return out, nil
}

// DeleteByID removes the transaction with the given ID, preserving the
// order of the rest. Returns domain.ErrNotFound when no entry matches.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tx := range s.txns {
		if tx.ID == id {
			s.txns = append(s.txns[:i], s.txns[i+1:]...)
			s.revision++
			return nil
		}
	}
	return &domain.ErrNotFound{Resource: "transaction", ID: id}
}

// Clear drops the whole ledger. Clearing an already-empty ledger is a
// no-op and does not bump the revision.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.txns) == 0 {
		return nil
	}
	s.txns = nil
	s.revision++
	return nil
}

// Count reports the number of stored transactions.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txns), nil
}

// Revision returns the mutation counter. It only moves forward, so it
// doubles as a cache key for derived results.
func (s *Store) Revision(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision, nil
}

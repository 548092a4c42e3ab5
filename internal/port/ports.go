// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/ledgerlens/ledgerlens-go/internal/domain"
)

// TransactionStore holds the working ledger. Implemented by the
// in-memory adapter; any other persistence layer can slot in behind it.
type TransactionStore interface {
	// List returns a snapshot of the ledger in insertion order.
	List(ctx context.Context) ([]domain.Transaction, error)

	// Append adds transactions to the end of the ledger, assigning an ID
	// to every entry that arrives without one, and returns the stored
	// copies.
	Append(ctx context.Context, txns []domain.Transaction) ([]domain.Transaction, error)

	// DeleteByID removes the transaction with the given ID.
	DeleteByID(ctx context.Context, id string) error

	// Clear removes every transaction.
	Clear(ctx context.Context) error

	// Count reports the number of stored transactions.
	Count(ctx context.Context) (int, error)

	// Revision is a monotonic counter bumped on every mutation. Derived
	// results cached under a revision stay valid until the ledger changes.
	Revision(ctx context.Context) (uint64, error)
}

// DocumentExtractor pulls ledger transactions out of an uploaded
// document (receipt, invoice, bank statement) via a vision model.
type DocumentExtractor interface {
	Extract(ctx context.Context, filename, mimeType string, data []byte) ([]domain.Transaction, error)
}

// NarrativeAgentCaller invokes the analysis agent service.
type NarrativeAgentCaller interface {
	Call(ctx context.Context, req *domain.AgentRequest) (*domain.AgentResponse, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

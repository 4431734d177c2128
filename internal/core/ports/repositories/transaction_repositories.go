package repositories

import (
	"context"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
// Every lookup is scoped by owner: a record belonging to another owner is
// reported exactly like a missing one.
type TransactionReader interface {
	// FindTransactionByID retrieves the transaction matching both the ID and the owner.
	FindTransactionByID(ctx context.Context, ownerID string, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByOwner retrieves the owner's transactions matching the filter,
	// most recent occurredAt first, ties in insertion order. An empty filter returns all of them.
	ListTransactionsByOwner(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, transaction domain.Transaction) error

	// UpdateTransaction replaces the mutable fields of the transaction matching
	// both transaction.TransactionID and transaction.OwnerID.
	UpdateTransaction(ctx context.Context, transaction domain.Transaction) error

	// DeleteTransaction permanently removes the transaction matching both the ID and the owner.
	DeleteTransaction(ctx context.Context, ownerID string, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
// This is a facade for clients that need access to all operations
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

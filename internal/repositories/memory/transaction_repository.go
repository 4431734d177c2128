// Package memory provides a process-local transaction store used for
// development (STORE_DRIVER=memory) and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
)

// TransactionRepository keeps transactions in insertion order.
type TransactionRepository struct {
	mu           sync.RWMutex
	transactions []domain.Transaction
}

// NewTransactionRepository creates an empty in-memory store.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

// indexOf returns the position of the (owner, id) match or -1. Callers hold mu.
func (r *TransactionRepository) indexOf(ownerID, transactionID string) int {
	for i := range r.transactions {
		if r.transactions[i].TransactionID == transactionID && r.transactions[i].OwnerID == ownerID {
			return i
		}
	}
	return -1
}

func (r *TransactionRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: save transaction: %w", apperrors.ErrStoreFailure, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.transactions {
		if r.transactions[i].TransactionID == transaction.TransactionID {
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrStoreFailure, transaction.TransactionID)
		}
	}
	r.transactions = append(r.transactions, transaction)
	return nil
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, ownerID string, transactionID string) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: find transaction: %w", apperrors.ErrStoreFailure, err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(ownerID, transactionID)
	if i < 0 {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	found := r.transactions[i]
	return &found, nil
}

func (r *TransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: list transactions: %w", apperrors.ErrStoreFailure, err)
	}
	r.mu.RLock()
	owned := make([]domain.Transaction, 0)
	for _, t := range r.transactions {
		if t.OwnerID == ownerID {
			owned = append(owned, t)
		}
	}
	r.mu.RUnlock()

	result := filter.Apply(owned)
	domain.SortByOccurredAtDesc(result)
	return result, nil
}

// UpdateTransaction replaces the stored record in place so it keeps its insertion position.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, transaction domain.Transaction) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: update transaction: %w", apperrors.ErrStoreFailure, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(transaction.OwnerID, transaction.TransactionID)
	if i < 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transaction.TransactionID)
	}
	transaction.CreatedAt = r.transactions[i].CreatedAt
	r.transactions[i] = transaction
	return nil
}

func (r *TransactionRepository) DeleteTransaction(ctx context.Context, ownerID string, transactionID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: delete transaction: %w", apperrors.ErrStoreFailure, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(ownerID, transactionID)
	if i < 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
	return nil
}

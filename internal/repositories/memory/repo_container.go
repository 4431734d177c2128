package memory

import (
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the in-memory repositories.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: NewTransactionRepository(),
		Close:           func() {},
	}
}

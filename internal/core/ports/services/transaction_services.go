package services

import (
	"context"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves one of the owner's transactions.
	GetTransactionByID(ctx context.Context, ownerID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves all of the owner's transactions, most recent first.
	ListTransactions(ctx context.Context, ownerID string) ([]domain.Transaction, error)

	// FilterTransactions retrieves the owner's transactions matching every supplied criterion.
	FilterTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction persists a new transaction owned by ownerID.
	CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction applies the supplied fields to one of the owner's transactions.
	UpdateTransaction(ctx context.Context, ownerID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction permanently removes one of the owner's transactions.
	DeleteTransaction(ctx context.Context, ownerID string, transactionID string) error
}

// TransactionStatsSvc defines aggregation operations for transaction data
type TransactionStatsSvc interface {
	// GetStats summarises all of the owner's transactions.
	GetStats(ctx context.Context, ownerID string) (*domain.StatsSummary, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
// This is a facade for clients that need access to all operations
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	TransactionStatsSvc
}

package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/google/uuid"
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	statsCache      *StatsCache
	now             func() time.Time
}

// TransactionServiceOption is a function that configures a transactionService
type TransactionServiceOption func(*transactionService)

// WithStatsCache enables memoisation of GetStats results.
func WithStatsCache(cache *StatsCache) TransactionServiceOption {
	return func(s *transactionService) {
		s.statsCache = cache
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates a new transaction service with the provided dependencies
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	options ...TransactionServiceOption,
) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// timestamp returns the current time at the precision the stores keep.
func (s *transactionService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// logFailure logs expected outcomes at warn level and everything else at error level.
func (s *transactionService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
		s.LogWarn(ctx, err, msg, keyvals...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func (s *transactionService) invalidateStats(ownerID string) {
	if s.statsCache != nil {
		s.statsCache.Invalidate(ownerID)
	}
}

// CreateTransaction creates a new transaction owned by ownerID
func (s *transactionService) CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := s.RequireOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	kind, err := req.ResolvedKind()
	if err != nil {
		s.LogWarn(ctx, err, "Rejected transaction creation", slog.String("owner_id", ownerID))
		return nil, err
	}

	now := s.timestamp()
	transaction := domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       ownerID,
		Kind:          kind,
		Category:      req.Category,
		Description:   domain.NormalizeDescription(req.Description),
		OccurredAt:    now,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if req.Amount != nil {
		transaction.Amount = *req.Amount
	}
	if req.OccurredAt != nil && !req.OccurredAt.IsZero() {
		transaction.OccurredAt = req.OccurredAt.UTC().Truncate(time.Microsecond)
	}

	if err := transaction.Validate(); err != nil {
		s.LogWarn(ctx, err, "Rejected transaction creation",
			slog.String("owner_id", ownerID))
		return nil, err
	}

	if err := s.transactionRepo.SaveTransaction(ctx, transaction); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("owner_id", ownerID),
			slog.String("transaction_id", transaction.TransactionID))
		return nil, err
	}
	s.invalidateStats(ownerID)

	s.LogInfo(ctx, "Transaction created successfully",
		slog.String("transaction_id", transaction.TransactionID),
		slog.String("kind", string(transaction.Kind)),
		slog.String("category", string(transaction.Category)))
	return &transaction, nil
}

// GetTransactionByID retrieves one of the owner's transactions
func (s *transactionService) GetTransactionByID(ctx context.Context, ownerID string, transactionID string) (*domain.Transaction, error) {
	if err := s.RequireOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	transaction, err := s.transactionRepo.FindTransactionByID(ctx, ownerID, transactionID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find transaction by ID",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogDebug(ctx, "Transaction retrieved successfully",
		slog.String("transaction_id", transaction.TransactionID))
	return transaction, nil
}

// ListTransactions retrieves all of the owner's transactions
func (s *transactionService) ListTransactions(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	return s.FilterTransactions(ctx, ownerID, domain.TransactionFilter{})
}

// FilterTransactions retrieves the owner's transactions matching the filter
func (s *transactionService) FilterTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if err := s.RequireOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		s.LogWarn(ctx, err, "Rejected transaction filter", slog.String("owner_id", ownerID))
		return nil, err
	}

	transactions, err := s.transactionRepo.ListTransactionsByOwner(ctx, ownerID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("owner_id", ownerID))
		return nil, err
	}

	if transactions == nil {
		return []domain.Transaction{}, nil
	}

	s.LogDebug(ctx, "Transactions listed successfully",
		slog.Int("count", len(transactions)),
		slog.Bool("filtered", !filter.IsEmpty()))
	return transactions, nil
}

// UpdateTransaction applies the supplied fields to one of the owner's transactions
func (s *transactionService) UpdateTransaction(ctx context.Context, ownerID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	if err := s.RequireOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	kind, err := req.ResolvedKind()
	if err != nil {
		s.LogWarn(ctx, err, "Rejected transaction update", slog.String("transaction_id", transactionID))
		return nil, err
	}
	if req.IsEmpty() {
		s.LogDebug(ctx, "Update carries no fields, only updatedAt changes",
			slog.String("transaction_id", transactionID))
	}

	transaction, err := s.transactionRepo.FindTransactionByID(ctx, ownerID, transactionID)
	if err != nil {
		s.logFailure(ctx, err, "Failed to find transaction for update",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	updated := *transaction
	if kind != nil {
		updated.Kind = *kind
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Amount != nil {
		if err := domain.ValidateAmount(*req.Amount); err != nil {
			s.LogWarn(ctx, err, "Rejected transaction update", slog.String("transaction_id", transactionID))
			return nil, err
		}
		updated.Amount = *req.Amount
	}
	if req.Description != nil {
		updated.Description = domain.NormalizeDescription(*req.Description)
	}
	if req.OccurredAt != nil && !req.OccurredAt.IsZero() {
		updated.OccurredAt = req.OccurredAt.UTC().Truncate(time.Microsecond)
	}

	// The merged record must still be coherent, e.g. a kind change needs a matching category.
	if err := updated.Validate(); err != nil {
		s.LogWarn(ctx, err, "Rejected transaction update", slog.String("transaction_id", transactionID))
		return nil, err
	}
	updated.UpdatedAt = s.timestamp()

	if err := s.transactionRepo.UpdateTransaction(ctx, updated); err != nil {
		s.logFailure(ctx, err, "Failed to update transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}
	s.invalidateStats(ownerID)

	s.LogInfo(ctx, "Transaction updated successfully", slog.String("transaction_id", transactionID))
	return &updated, nil
}

// DeleteTransaction permanently removes one of the owner's transactions
func (s *transactionService) DeleteTransaction(ctx context.Context, ownerID string, transactionID string) error {
	if err := s.RequireOwner(ctx, ownerID); err != nil {
		return err
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, ownerID, transactionID); err != nil {
		s.logFailure(ctx, err, "Failed to delete transaction",
			slog.String("transaction_id", transactionID))
		return err
	}
	s.invalidateStats(ownerID)

	s.LogInfo(ctx, "Transaction deleted successfully", slog.String("transaction_id", transactionID))
	return nil
}

// GetStats summarises all of the owner's transactions
func (s *transactionService) GetStats(ctx context.Context, ownerID string) (*domain.StatsSummary, error) {
	if err := s.RequireOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	compute := func(ctx context.Context) (domain.StatsSummary, error) {
		transactions, err := s.transactionRepo.ListTransactionsByOwner(ctx, ownerID, domain.TransactionFilter{})
		if err != nil {
			return domain.StatsSummary{}, err
		}
		return domain.ComputeStats(transactions), nil
	}

	var (
		stats  domain.StatsSummary
		cached bool
		err    error
	)
	if s.statsCache != nil {
		stats, cached, err = s.statsCache.GetOrCompute(ctx, ownerID, compute)
	} else {
		stats, err = compute(ctx)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to compute transaction stats", slog.String("owner_id", ownerID))
		return nil, err
	}

	s.LogDebug(ctx, "Transaction stats computed",
		slog.Int("transaction_count", stats.TransactionCount),
		slog.Bool("cached", cached))
	return &stats, nil
}

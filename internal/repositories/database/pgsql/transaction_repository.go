package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker_app/internal/models"
	"github.com/SscSPs/budget_tracker_app/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// transaction_id is a UUID column; any other id cannot name a stored row.
func notFoundUnlessUUID(transactionID string) error {
	if _, err := uuid.Parse(transactionID); err != nil {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}

const transactionSelectQuery = `
SELECT
	t.transaction_id, t.owner_id, t.kind, t.category, t.amount, t.description,
	t.occurred_at, t.created_at, t.updated_at
FROM transactions t
`

// seq breaks occurred_at ties in insertion order.
const transactionOrderBy = ` ORDER BY t.occurred_at DESC, t.seq ASC`

func (r *PgxTransactionRepository) getTransactions(ctx context.Context, whereClause string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, transactionSelectQuery+whereClause+transactionOrderBy, args...)
	if err != nil {
		return nil, storeError("query transactions", err)
	}
	defer rows.Close()

	modelTransactions, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, storeError("collect transaction rows", err)
	}
	return mapping.ToDomainTransactionSlice(modelTransactions), nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction) error {
	m := mapping.ToModelTransaction(transaction)
	query := `
		INSERT INTO transactions (
			transaction_id, owner_id, kind, category, amount, description,
			occurred_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.OwnerID,
		m.Kind,
		m.Category,
		m.Amount,
		m.Description,
		m.OccurredAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" { // check_violation
			return fmt.Errorf("%w: transaction rejected by store constraint %s", apperrors.ErrValidation, pgErr.ConstraintName)
		}
		return storeError("save transaction "+m.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, ownerID string, transactionID string) (*domain.Transaction, error) {
	if err := notFoundUnlessUUID(transactionID); err != nil {
		return nil, err
	}
	transactions, err := r.getTransactions(ctx, `WHERE t.transaction_id = $1 AND t.owner_id = $2`, transactionID, ownerID)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return &transactions[0], nil
}

func (r *PgxTransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	conditions := []string{"t.owner_id = $1"}
	args := []any{ownerID}
	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.StartDate != nil {
		add("t.occurred_at >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("t.occurred_at <= $%d", *filter.EndDate)
	}
	if filter.Category != nil {
		add("t.category = $%d", string(*filter.Category))
	}
	if filter.Kind != nil {
		add("t.kind = $%d", string(*filter.Kind))
	}

	return r.getTransactions(ctx, "WHERE "+strings.Join(conditions, " AND "), args...)
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, transaction domain.Transaction) error {
	if err := notFoundUnlessUUID(transaction.TransactionID); err != nil {
		return err
	}
	m := mapping.ToModelTransaction(transaction)
	query := `
		UPDATE transactions
		SET kind = $1, category = $2, amount = $3, description = $4,
			occurred_at = $5, updated_at = $6
		WHERE transaction_id = $7 AND owner_id = $8;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Kind,
		m.Category,
		m.Amount,
		m.Description,
		m.OccurredAt,
		m.UpdatedAt,
		m.TransactionID,
		m.OwnerID,
	)
	if err != nil {
		return storeError("update transaction "+m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, m.TransactionID)
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, ownerID string, transactionID string) error {
	if err := notFoundUnlessUUID(transactionID); err != nil {
		return err
	}
	cmdTag, err := r.Pool.Exec(ctx,
		`DELETE FROM transactions WHERE transaction_id = $1 AND owner_id = $2;`,
		transactionID, ownerID)
	if err != nil {
		return storeError("delete transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}

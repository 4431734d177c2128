// Package sqlite stores transactions in a single-file SQLite database
// through the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker_app/internal/models"
	"github.com/SscSPs/budget_tracker_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// Timestamps are stored as Unix microseconds so SQL comparisons and ordering are numeric.

type TransactionRepository struct {
	db *sql.DB
}

func newTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

const transactionSelectQuery = `
SELECT transaction_id, owner_id, kind, category, amount, description,
	occurred_at, created_at, updated_at
FROM transactions
`

const transactionOrderBy = ` ORDER BY occurred_at DESC, seq ASC`

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperrors.ErrStoreFailure, op, err)
}

func toMicros(t time.Time) int64 {
	return t.UTC().UnixMicro()
}

func fromMicros(us int64) time.Time {
	return time.UnixMicro(us).UTC()
}

func scanTransaction(rows *sql.Rows) (models.Transaction, error) {
	var (
		m                                 models.Transaction
		amount                            string
		occurredAt, createdAt, updatedAt int64
	)
	if err := rows.Scan(&m.TransactionID, &m.OwnerID, &m.Kind, &m.Category, &amount,
		&m.Description, &occurredAt, &createdAt, &updatedAt); err != nil {
		return m, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return m, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	m.Amount = parsed
	m.OccurredAt = fromMicros(occurredAt)
	m.CreatedAt = fromMicros(createdAt)
	m.UpdatedAt = fromMicros(updatedAt)
	return m, nil
}

func (r *TransactionRepository) getTransactions(ctx context.Context, whereClause string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, transactionSelectQuery+whereClause+transactionOrderBy, args...)
	if err != nil {
		return nil, storeError("query transactions", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, storeError("scan transaction row", err)
		}
		transactions = append(transactions, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("iterate transaction rows", err)
	}
	return transactions, nil
}

func (r *TransactionRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction) error {
	m := mapping.ToModelTransaction(transaction)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (
			transaction_id, owner_id, kind, category, amount, description,
			occurred_at, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.TransactionID, m.OwnerID, m.Kind, m.Category, m.Amount.String(), m.Description,
		toMicros(m.OccurredAt), toMicros(m.CreatedAt), toMicros(m.UpdatedAt),
	)
	if err != nil {
		return storeError("save transaction "+m.TransactionID, err)
	}
	return nil
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, ownerID string, transactionID string) (*domain.Transaction, error) {
	transactions, err := r.getTransactions(ctx, `WHERE transaction_id = ? AND owner_id = ?`, transactionID, ownerID)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return &transactions[0], nil
}

func (r *TransactionRepository) ListTransactionsByOwner(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	conditions := []string{"owner_id = ?"}
	args := []any{ownerID}

	if filter.StartDate != nil {
		conditions = append(conditions, "occurred_at >= ?")
		args = append(args, toMicros(*filter.StartDate))
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "occurred_at <= ?")
		args = append(args, toMicros(*filter.EndDate))
	}
	if filter.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, string(*filter.Category))
	}
	if filter.Kind != nil {
		conditions = append(conditions, "kind = ?")
		args = append(args, string(*filter.Kind))
	}

	return r.getTransactions(ctx, "WHERE "+strings.Join(conditions, " AND "), args...)
}

func (r *TransactionRepository) UpdateTransaction(ctx context.Context, transaction domain.Transaction) error {
	m := mapping.ToModelTransaction(transaction)
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET kind = ?, category = ?, amount = ?, description = ?, occurred_at = ?, updated_at = ?
		WHERE transaction_id = ? AND owner_id = ?`,
		m.Kind, m.Category, m.Amount.String(), m.Description,
		toMicros(m.OccurredAt), toMicros(m.UpdatedAt),
		m.TransactionID, m.OwnerID,
	)
	if err != nil {
		return storeError("update transaction "+m.TransactionID, err)
	}
	return notFoundIfUnaffected(res, m.TransactionID)
}

func (r *TransactionRepository) DeleteTransaction(ctx context.Context, ownerID string, transactionID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE transaction_id = ? AND owner_id = ?`,
		transactionID, ownerID)
	if err != nil {
		return storeError("delete transaction "+transactionID, err)
	}
	return notFoundIfUnaffected(res, transactionID)
}

func notFoundIfUnaffected(res sql.Result, transactionID string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return storeError("read affected rows", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}

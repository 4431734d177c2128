package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds the system-assigned timestamps of a stored row.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Transaction is the storage representation of one income or expense record.
type Transaction struct {
	TransactionID string          `db:"transaction_id"` // Primary Key (UUID)
	OwnerID       string          `db:"owner_id"`       // Not Null, never updated
	Kind          string          `db:"kind"`           // income or expense
	Category      string          `db:"category"`
	Amount        decimal.Decimal `db:"amount"` // Positive value
	Description   string          `db:"description"`
	OccurredAt    time.Time       `db:"occurred_at"`
	AuditFields
}

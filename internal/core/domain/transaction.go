package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MaxDescriptionLength is the maximum number of characters of a description.
const MaxDescriptionLength = 200

// Transaction is a single income or expense recorded by its owner.
type Transaction struct {
	TransactionID string          `json:"id"`          // Primary Key (UUID)
	OwnerID       string          `json:"ownerId"`     // Authenticated user, immutable
	Kind          TransactionKind `json:"kind"`        // income or expense
	Category      Category        `json:"category"`    // Must belong to the group of Kind
	Amount        decimal.Decimal `json:"amount"`      // Always positive, direction is carried by Kind
	Description   string          `json:"description"` // Optional, at most MaxDescriptionLength characters
	OccurredAt    time.Time       `json:"occurredAt"`
	AuditFields
}

// Validate checks the invariants every persisted transaction must satisfy.
func (t Transaction) Validate() error {
	if t.OwnerID == "" {
		return fmt.Errorf("%w: owner is required", apperrors.ErrValidation)
	}
	if t.Kind == "" {
		return fmt.Errorf("%w: kind is required", apperrors.ErrValidation)
	}
	if !t.Kind.IsValid() {
		return fmt.Errorf("%w: kind must be one of %q or %q, got %q", apperrors.ErrValidation, KindIncome, KindExpense, t.Kind)
	}
	if t.Category == "" {
		return fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}
	if !t.Category.BelongsTo(t.Kind) {
		return fmt.Errorf("%w: category %q is not a valid %s category", apperrors.ErrValidation, t.Category, t.Kind)
	}
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}
	if err := ValidateDescription(t.Description); err != nil {
		return err
	}
	if t.OccurredAt.IsZero() {
		return fmt.Errorf("%w: occurredAt is required", apperrors.ErrValidation)
	}
	return nil
}

// ValidateAmount ensures the amount is strictly positive.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than 0", apperrors.ErrValidation)
	}
	return nil
}

// ValidateDescription ensures the description fits MaxDescriptionLength characters.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description cannot exceed %d characters", apperrors.ErrValidation, MaxDescriptionLength)
	}
	return nil
}

// NormalizeDescription trims surrounding whitespace.
func NormalizeDescription(description string) string {
	return strings.TrimSpace(description)
}

package domain

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
)

// TransactionFilter holds the optional criteria of a filter query.
// A nil field places no constraint on the corresponding attribute; all
// supplied criteria must match.
type TransactionFilter struct {
	StartDate *time.Time       // inclusive lower bound on OccurredAt
	EndDate   *time.Time       // inclusive upper bound on OccurredAt
	Category  *Category        // exact match on Category
	Kind      *TransactionKind // exact match on Kind
}

// IsEmpty reports whether the filter has no criteria.
func (f TransactionFilter) IsEmpty() bool {
	return f.StartDate == nil && f.EndDate == nil && f.Category == nil && f.Kind == nil
}

// Validate checks that the supplied criteria are well formed.
func (f TransactionFilter) Validate() error {
	if f.Kind != nil && !f.Kind.IsValid() {
		return fmt.Errorf("%w: kind must be one of %q or %q, got %q", apperrors.ErrValidation, KindIncome, KindExpense, *f.Kind)
	}
	if f.Category != nil && !f.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, *f.Category)
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return fmt.Errorf("%w: startDate must not be after endDate", apperrors.ErrValidation)
	}
	return nil
}

// Matches reports whether t satisfies every supplied criterion.
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.StartDate != nil && t.OccurredAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.OccurredAt.After(*f.EndDate) {
		return false
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.Kind != nil && t.Kind != *f.Kind {
		return false
	}
	return true
}

// Apply returns the transactions matching f, keeping their relative order.
func (f TransactionFilter) Apply(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortByOccurredAtDesc orders transactions most recent first. The sort is
// stable, so transactions with the same OccurredAt keep their insertion order.
func SortByOccurredAtDesc(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		return cmp.Compare(b.OccurredAt.UnixNano(), a.OccurredAt.UnixNano())
	})
}

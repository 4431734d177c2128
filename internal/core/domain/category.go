package domain

import (
	"fmt"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
)

// TransactionKind is the direction of a transaction.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// IsValid reports whether k is one of the known kinds.
func (k TransactionKind) IsValid() bool {
	return k == KindIncome || k == KindExpense
}

// ParseKind converts a raw value into a TransactionKind. Matching is exact,
// the same rule Transaction.Validate applies.
func ParseKind(raw string) (TransactionKind, error) {
	k := TransactionKind(raw)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: kind must be one of %q or %q, got %q", apperrors.ErrValidation, KindIncome, KindExpense, raw)
	}
	return k, nil
}

// Category is a closed-set label classifying a transaction.
type Category string

// Income categories.
const (
	CategorySalary      Category = "Salaire"
	CategoryFreelance   Category = "Freelance"
	CategoryInvestment  Category = "Investissement"
	CategoryOtherIncome Category = "Autre revenu"
)

// Expense categories.
const (
	CategoryFood         Category = "Nourriture"
	CategoryTransport    Category = "Transport"
	CategoryHousing      Category = "Logement"
	CategoryLeisure      Category = "Loisirs"
	CategoryShopping     Category = "Shopping"
	CategoryHealth       Category = "Santé"
	CategoryEducation    Category = "Éducation"
	CategoryOtherExpense Category = "Autre dépense"
)

var incomeCategories = []Category{
	CategorySalary,
	CategoryFreelance,
	CategoryInvestment,
	CategoryOtherIncome,
}

var expenseCategories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryHousing,
	CategoryLeisure,
	CategoryShopping,
	CategoryHealth,
	CategoryEducation,
	CategoryOtherExpense,
}

// CategoriesFor returns the categories allowed for the given kind.
// The returned slice is a copy and may be modified by the caller.
func CategoriesFor(kind TransactionKind) []Category {
	var src []Category
	switch kind {
	case KindIncome:
		src = incomeCategories
	case KindExpense:
		src = expenseCategories
	default:
		return nil
	}
	out := make([]Category, len(src))
	copy(out, src)
	return out
}

// IsValid reports whether c belongs to either category group.
func (c Category) IsValid() bool {
	return c.BelongsTo(KindIncome) || c.BelongsTo(KindExpense)
}

// BelongsTo reports whether c is part of the group of the given kind.
func (c Category) BelongsTo(kind TransactionKind) bool {
	var group []Category
	switch kind {
	case KindIncome:
		group = incomeCategories
	case KindExpense:
		group = expenseCategories
	default:
		return false
	}
	for _, candidate := range group {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory converts a raw value into a Category from the catalog.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, raw)
	}
	return c, nil
}

package dto_test

import (
	"testing"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterTransactionsParams_ToDomainFilter(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		filter, err := dto.FilterTransactionsParams{}.ToDomainFilter()
		require.NoError(t, err)
		assert.True(t, filter.IsEmpty())
	})

	t.Run("date only end covers the whole day", func(t *testing.T) {
		filter, err := dto.FilterTransactionsParams{StartDate: "2024-03-01", EndDate: "2024-03-01"}.ToDomainFilter()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *filter.StartDate)
		assert.Equal(t, time.Date(2024, 3, 1, 23, 59, 59, 999999999, time.UTC), *filter.EndDate)
	})

	t.Run("rfc3339 bounds", func(t *testing.T) {
		filter, err := dto.FilterTransactionsParams{EndDate: "2024-03-01T10:00:00Z"}.ToDomainFilter()
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), *filter.EndDate)
		assert.Nil(t, filter.StartDate)
	})

	t.Run("type is an alias of kind", func(t *testing.T) {
		filter, err := dto.FilterTransactionsParams{Type: "expense"}.ToDomainFilter()
		require.NoError(t, err)
		require.NotNil(t, filter.Kind)
		assert.Equal(t, domain.KindExpense, *filter.Kind)
		assert.Nil(t, filter.StartDate)
	})

	t.Run("category", func(t *testing.T) {
		filter, err := dto.FilterTransactionsParams{Category: "Nourriture"}.ToDomainFilter()
		require.NoError(t, err)
		assert.Equal(t, domain.CategoryFood, *filter.Category)
	})

	invalid := map[string]dto.FilterTransactionsParams{
		"bad start":          {StartDate: "01/03/2024"},
		"bad end":            {EndDate: "tomorrow"},
		"inverted range":     {StartDate: "2024-03-02", EndDate: "2024-03-01"},
		"unknown kind":       {Kind: "transfer"},
		"kind type conflict": {Kind: "income", Type: "expense"},
		"capitalised kind":   {Kind: "Income"},
		"unknown category":   {Category: "InvalidCat"},
	}
	for name, params := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := params.ToDomainFilter()
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestUpdateTransactionRequest_IsEmpty(t *testing.T) {
	assert.True(t, dto.UpdateTransactionRequest{}.IsEmpty())
	description := ""
	assert.False(t, dto.UpdateTransactionRequest{Description: &description}.IsEmpty())
	income := domain.KindIncome
	assert.False(t, dto.UpdateTransactionRequest{Type: &income}.IsEmpty())
}

func TestCreateTransactionRequest_ResolvedKind(t *testing.T) {
	kind, err := dto.CreateTransactionRequest{Type: domain.KindIncome}.ResolvedKind()
	require.NoError(t, err)
	assert.Equal(t, domain.KindIncome, kind)

	kind, err = dto.CreateTransactionRequest{Kind: domain.KindExpense, Type: domain.KindExpense}.ResolvedKind()
	require.NoError(t, err)
	assert.Equal(t, domain.KindExpense, kind)

	_, err = dto.CreateTransactionRequest{Kind: domain.KindExpense, Type: domain.KindIncome}.ResolvedKind()
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateTransactionRequest_ResolvedKind(t *testing.T) {
	income, expense := domain.KindIncome, domain.KindExpense

	kind, err := dto.UpdateTransactionRequest{}.ResolvedKind()
	require.NoError(t, err)
	assert.Nil(t, kind)

	kind, err = dto.UpdateTransactionRequest{Type: &income}.ResolvedKind()
	require.NoError(t, err)
	require.NotNil(t, kind)
	assert.Equal(t, domain.KindIncome, *kind)

	_, err = dto.UpdateTransactionRequest{Kind: &expense, Type: &income}.ResolvedKind()
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

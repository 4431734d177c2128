package dto

import (
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatsResponse defines the data returned for a statistics query.
type StatsResponse struct {
	TotalIncome        decimal.Decimal            `json:"totalIncome" swaggertype:"string"`
	TotalExpense       decimal.Decimal            `json:"totalExpense" swaggertype:"string"`
	Balance            decimal.Decimal            `json:"balance" swaggertype:"string"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory" swaggertype:"object,string"`
	TransactionCount   int                        `json:"transactionCount"`
}

// ToStatsResponse converts a domain.StatsSummary to StatsResponse DTO
func ToStatsResponse(s *domain.StatsSummary) StatsResponse {
	byCategory := make(map[string]decimal.Decimal, len(s.ExpensesByCategory))
	for category, amount := range s.ExpensesByCategory {
		byCategory[string(category)] = amount
	}
	return StatsResponse{
		TotalIncome:        s.TotalIncome,
		TotalExpense:       s.TotalExpense,
		Balance:            s.Balance,
		ExpensesByCategory: byCategory,
		TransactionCount:   s.TransactionCount,
	}
}

// CategoryCatalogResponse lists the allowed categories per kind.
type CategoryCatalogResponse struct {
	Income  []domain.Category `json:"income"`
	Expense []domain.Category `json:"expense"`
}

// NewCategoryCatalogResponse builds the catalog from the domain category groups.
func NewCategoryCatalogResponse() CategoryCatalogResponse {
	return CategoryCatalogResponse{
		Income:  domain.CategoriesFor(domain.KindIncome),
		Expense: domain.CategoriesFor(domain.KindExpense),
	}
}

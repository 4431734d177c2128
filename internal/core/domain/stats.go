package domain

import "github.com/shopspring/decimal"

// StatsSummary is the aggregate view of all transactions of one owner.
type StatsSummary struct {
	TotalIncome        decimal.Decimal              `json:"totalIncome"`
	TotalExpense       decimal.Decimal              `json:"totalExpense"`
	Balance            decimal.Decimal              `json:"balance"` // TotalIncome - TotalExpense
	ExpensesByCategory map[Category]decimal.Decimal `json:"expensesByCategory"`
	TransactionCount   int                          `json:"transactionCount"`
}

// ComputeStats folds a transaction sequence into a StatsSummary.
// Categories without expense transactions are absent from ExpensesByCategory.
func ComputeStats(txs []Transaction) StatsSummary {
	stats := StatsSummary{
		TotalIncome:        decimal.Zero,
		TotalExpense:       decimal.Zero,
		ExpensesByCategory: make(map[Category]decimal.Decimal),
	}

	for _, t := range txs {
		switch t.Kind {
		case KindIncome:
			stats.TotalIncome = stats.TotalIncome.Add(t.Amount)
		case KindExpense:
			stats.TotalExpense = stats.TotalExpense.Add(t.Amount)
			stats.ExpensesByCategory[t.Category] = stats.ExpensesByCategory[t.Category].Add(t.Amount)
		}
	}

	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpense)
	stats.TransactionCount = len(txs)
	return stats
}

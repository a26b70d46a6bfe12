package report

import "fintrack/internal/core"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount float64
}

// Summary holds the derived totals for a view of transactions.
type Summary struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
}

// Summarize computes income/expense totals and the balance for a view. The
// view is expected to be already filtered; order does not matter.
func Summarize(view []core.Transaction) Summary {
	var s Summary
	for _, tx := range view {
		switch tx.Type {
		case core.Income:
			s.TotalIncome += tx.AmountValue()
		case core.Expense:
			s.TotalExpense += tx.AmountValue()
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}

// ExpenseBreakdown sums expense amounts per category, answering "where did
// expense money go". Income records are excluded entirely. Categories appear
// in order of first appearance in the view.
func ExpenseBreakdown(view []core.Transaction) []CategoryAmount {
	byCat := map[string]float64{}
	order := make([]string, 0)
	for _, tx := range view {
		if tx.Type != core.Expense {
			continue
		}
		if _, seen := byCat[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		byCat[tx.Category] += tx.AmountValue()
	}

	out := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryAmount{Name: name, Amount: byCat[name]})
	}
	return out
}

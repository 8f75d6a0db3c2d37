// Package analytics computes dashboard and reporting figures from expense
// and budget rows that have already been filtered by owner and period.
// Everything here is a pure function over its inputs.
package analytics

import (
	"sort"
	"time"

	"github.com/spendwise/internal/models"
)

// BudgetStatus is one row of the budget-vs-spent report.
type BudgetStatus struct {
	CategoryID uint    `json:"category_id"`
	Category   string  `json:"category"`
	Budget     float64 `json:"budget"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
	HasBudget  bool    `json:"has_budget"`
}

// MonthTotal is the spending total for one month of a year.
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// CategoryTotal is the spending total for one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// SumAmounts returns the sum of all expense amounts, 0 for an empty slice.
func SumAmounts(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

// TotalsByCategory groups expenses by category name. The returned map is
// keyed by name; order holds the names in first-seen order so callers that
// need deterministic ordering have one.
func TotalsByCategory(expenses []models.Expense) (totals map[string]float64, order []string) {
	totals = make(map[string]float64)
	for _, e := range expenses {
		name := e.Category.Name
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += e.Amount
	}
	return totals, order
}

// Percentage returns spent/budget*100, or 0 when the budget amount is zero.
func Percentage(spent, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	return spent / budget * 100
}

// BudgetReport builds a status row for each budget, looking up spending by
// the budget's category name. Categories with no expenses this period spend 0.
func BudgetReport(budgets []models.Budget, spentByCategory map[string]float64) []BudgetStatus {
	report := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByCategory[b.Category.Name]
		report = append(report, BudgetStatus{
			CategoryID: b.CategoryID,
			Category:   b.Category.Name,
			Budget:     b.Amount,
			Spent:      spent,
			Remaining:  b.Amount - spent,
			Percentage: Percentage(spent, b.Amount),
			HasBudget:  true,
		})
	}
	return report
}

// PeriodReport builds a status row for every category, not just ones with a
// budget. Categories without a budget report amount 0 and HasBudget false.
func PeriodReport(categories []models.Category, budgets []models.Budget, expenses []models.Expense) []BudgetStatus {
	budgetByCategory := make(map[uint]models.Budget, len(budgets))
	for _, b := range budgets {
		budgetByCategory[b.CategoryID] = b
	}

	spentByCategoryID := make(map[uint]float64)
	for _, e := range expenses {
		spentByCategoryID[e.CategoryID] += e.Amount
	}

	report := make([]BudgetStatus, 0, len(categories))
	for _, c := range categories {
		spent := spentByCategoryID[c.ID]
		row := BudgetStatus{
			CategoryID: c.ID,
			Category:   c.Name,
			Spent:      spent,
		}
		if b, ok := budgetByCategory[c.ID]; ok {
			row.Budget = b.Amount
			row.Remaining = b.Amount - spent
			row.Percentage = Percentage(spent, b.Amount)
			row.HasBudget = true
		}
		report = append(report, row)
	}
	return report
}

// MonthlyTotals buckets a year's expenses into twelve month totals,
// January through December. Months without expenses total 0.
func MonthlyTotals(expenses []models.Expense) []MonthTotal {
	var sums [12]float64
	for _, e := range expenses {
		sums[int(e.Date.Month())-1] += e.Amount
	}

	totals := make([]MonthTotal, 12)
	for i := 0; i < 12; i++ {
		totals[i] = MonthTotal{
			Month: time.Month(i + 1).String(),
			Total: sums[i],
		}
	}
	return totals
}

// CategoryTotals groups expenses by category name and sorts descending by
// total. The sort is stable over first-seen grouping order, so equal totals
// keep a deterministic relative order.
func CategoryTotals(expenses []models.Expense) []CategoryTotal {
	sums, order := TotalsByCategory(expenses)

	totals := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		totals = append(totals, CategoryTotal{Category: name, Total: sums[name]})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})
	return totals
}

// MonthRange returns the first and last calendar day of a month.
func MonthRange(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// YearRange returns January 1st and December 31st of a year.
func YearRange(year int) (start, end time.Time) {
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

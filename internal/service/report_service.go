package service

import (
	"time"

	"github.com/spendwise/internal/analytics"
	"github.com/spendwise/internal/models"
	"github.com/spendwise/internal/repository"
)

const recentExpenseLimit = 5

// DashboardData is the current-month summary handed to the dashboard view
type DashboardData struct {
	MonthName       string                   `json:"month_name"`
	Year            int                      `json:"year"`
	TotalSpent      float64                  `json:"total_spent"`
	SpentByCategory map[string]float64       `json:"spent_by_category"`
	Budgets         []analytics.BudgetStatus `json:"budgets"`
	RecentExpenses  []models.Expense         `json:"recent_expenses"`
}

// YearData is the yearly analytics summary handed to the analytics view
type YearData struct {
	Year           int                       `json:"year"`
	MonthlyTotals  []analytics.MonthTotal    `json:"monthly_totals"`
	CategoryTotals []analytics.CategoryTotal `json:"category_totals"`
}

// ReportService assembles the dashboard and analytics view-data
type ReportService struct {
	expenseRepo *repository.ExpenseRepository
	budgetRepo  *repository.BudgetRepository
}

// NewReportService creates a new ReportService
func NewReportService(expenseRepo *repository.ExpenseRepository, budgetRepo *repository.BudgetRepository) *ReportService {
	return &ReportService{
		expenseRepo: expenseRepo,
		budgetRepo:  budgetRepo,
	}
}

// Dashboard summarizes the user's current month: total spent, per-category
// spending, budget progress and recent activity. A month with no expenses
// produces zeros, never an error.
func (s *ReportService) Dashboard(userID uint, now time.Time) (*DashboardData, error) {
	year, month := now.Year(), int(now.Month())

	start, end := analytics.MonthRange(year, month)
	expenses, err := s.expenseRepo.ListByUserAndDateRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	spentByCategory, _ := analytics.TotalsByCategory(expenses)

	budgets, err := s.budgetRepo.ListByUserAndPeriod(userID, month, year)
	if err != nil {
		return nil, err
	}

	recent, err := s.expenseRepo.Recent(userID, recentExpenseLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		MonthName:       now.Month().String(),
		Year:            year,
		TotalSpent:      analytics.SumAmounts(expenses),
		SpentByCategory: spentByCategory,
		Budgets:         analytics.BudgetReport(budgets, spentByCategory),
		RecentExpenses:  recent,
	}, nil
}

// Year summarizes a full year: twelve monthly totals and category totals
// sorted descending by amount.
func (s *ReportService) Year(userID uint, year int) (*YearData, error) {
	start, end := analytics.YearRange(year)
	expenses, err := s.expenseRepo.ListByUserAndDateRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	return &YearData{
		Year:           year,
		MonthlyTotals:  analytics.MonthlyTotals(expenses),
		CategoryTotals: analytics.CategoryTotals(expenses),
	}, nil
}

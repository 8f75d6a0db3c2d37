package service

import (
	"errors"
	"time"

	"github.com/spendwise/internal/analytics"
	"github.com/spendwise/internal/forms"
	"github.com/spendwise/internal/models"
	"github.com/spendwise/internal/repository"
)

// BudgetService handles budget upserts and the per-period budget report
type BudgetService struct {
	budgetRepo   *repository.BudgetRepository
	categoryRepo *repository.CategoryRepository
	expenseRepo  *repository.ExpenseRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(
	budgetRepo *repository.BudgetRepository,
	categoryRepo *repository.CategoryRepository,
	expenseRepo *repository.ExpenseRepository,
) *BudgetService {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		expenseRepo:  expenseRepo,
	}
}

// Set upserts the budget for (user, category, month, year). The returned
// bool reports whether an existing budget was updated rather than created.
func (s *BudgetService) Set(userID uint, form *forms.BudgetForm, now time.Time) (bool, forms.Errors, error) {
	errs := forms.Errors{}
	form.ValidateYear(now, errs)

	if _, err := s.categoryRepo.GetByID(form.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			errs.Add("category_id", "Choose a valid category.")
		} else {
			return false, nil, err
		}
	}

	if errs.Any() {
		return false, errs, nil
	}

	updated := true
	if _, err := s.budgetRepo.GetByTuple(userID, form.CategoryID, form.Month, form.Year); err != nil {
		if !errors.Is(err, repository.ErrBudgetNotFound) {
			return false, nil, err
		}
		updated = false
	}

	budget := &models.Budget{
		Amount:     *form.Amount,
		Month:      form.Month,
		Year:       form.Year,
		UserID:     userID,
		CategoryID: form.CategoryID,
	}
	if err := s.budgetRepo.Upsert(budget); err != nil {
		return false, nil, err
	}

	return updated, nil, nil
}

// PeriodReport computes the budget-vs-spent rows for every category in the
// given month, whether or not the user budgeted it.
func (s *BudgetService) PeriodReport(userID uint, month, year int) ([]analytics.BudgetStatus, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}

	budgets, err := s.budgetRepo.ListByUserAndPeriod(userID, month, year)
	if err != nil {
		return nil, err
	}

	start, end := analytics.MonthRange(year, month)
	expenses, err := s.expenseRepo.ListByUserAndDateRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	return analytics.PeriodReport(categories, budgets, expenses), nil
}

package service

import (
	"errors"

	"github.com/spendwise/internal/analytics"
	"github.com/spendwise/internal/forms"
	"github.com/spendwise/internal/models"
	"github.com/spendwise/internal/repository"
)

var (
	// ErrNotOwner covers both a missing expense and one owned by another
	// user; the two cases stay indistinguishable to callers.
	ErrNotOwner = errors.New("expense does not belong to this user")
)

// ExpenseService handles expense entry and deletion
type ExpenseService struct {
	expenseRepo  *repository.ExpenseRepository
	categoryRepo *repository.CategoryRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo *repository.ExpenseRepository, categoryRepo *repository.CategoryRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// List returns all of the user's expenses, most recent first
func (s *ExpenseService) List(userID uint) ([]models.Expense, error) {
	return s.expenseRepo.ListByUser(userID)
}

// Add records a new expense for the user. The form must already have had
// defaults filled; the date and category are validated here because they
// need the clock and the store.
func (s *ExpenseService) Add(userID uint, form *forms.ExpenseForm) (forms.Errors, error) {
	errs := forms.Errors{}

	date, err := form.ParsedDate()
	if err != nil {
		errs.Add("date", "Enter a valid date (YYYY-MM-DD).")
	}

	if _, err := s.categoryRepo.GetByID(form.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			errs.Add("category_id", "Choose a valid category.")
		} else {
			return nil, err
		}
	}

	if errs.Any() {
		return errs, nil
	}

	expense := &models.Expense{
		Amount:      form.Amount,
		Description: form.Description,
		Date:        models.DateOnly(date),
		UserID:      userID,
		CategoryID:  form.CategoryID,
	}
	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}

	return nil, nil
}

// Delete permanently removes an expense the user owns. ErrNotOwner comes
// back whether the id is someone else's or does not exist at all.
func (s *ExpenseService) Delete(userID, expenseID uint) error {
	err := s.expenseRepo.DeleteByIDAndUser(expenseID, userID)
	if errors.Is(err, repository.ErrExpenseNotFound) {
		return ErrNotOwner
	}
	return err
}

// Recent returns the user's n most recent expenses
func (s *ExpenseService) Recent(userID uint, n int) ([]models.Expense, error) {
	return s.expenseRepo.Recent(userID, n)
}

// ListForPeriod returns the user's expenses within a calendar month
func (s *ExpenseService) ListForPeriod(userID uint, year, month int) ([]models.Expense, error) {
	start, end := analytics.MonthRange(year, month)
	return s.expenseRepo.ListByUserAndDateRange(userID, start, end)
}

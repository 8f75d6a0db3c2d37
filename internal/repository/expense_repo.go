package repository

import (
	"errors"
	"time"

	"github.com/spendwise/internal/models"
	"gorm.io/gorm"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
)

// ExpenseRepository handles expense data access
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create creates a new expense
func (r *ExpenseRepository) Create(expense *models.Expense) error {
	return translateErr(r.db.Create(expense).Error)
}

// ListByUser retrieves all expenses for a user, most recent first
func (r *ExpenseRepository) ListByUser(userID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	result := r.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&expenses)
	if result.Error != nil {
		return nil, result.Error
	}
	return expenses, nil
}

// ListByUserAndDateRange retrieves a user's expenses dated within
// [start, end] inclusive
func (r *ExpenseRepository) ListByUserAndDateRange(userID uint, start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	result := r.db.Preload("Category").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC, id ASC").
		Find(&expenses)
	if result.Error != nil {
		return nil, result.Error
	}
	return expenses, nil
}

// Recent retrieves the most recent expenses for a user, by date descending
// with id breaking ties
func (r *ExpenseRepository) Recent(userID uint, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	result := r.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&expenses)
	if result.Error != nil {
		return nil, result.Error
	}
	return expenses, nil
}

// DeleteByIDAndUser hard-deletes an expense if it belongs to the user.
// A missing id and an id owned by someone else both report
// ErrExpenseNotFound, so callers cannot distinguish them.
func (r *ExpenseRepository) DeleteByIDAndUser(id, userID uint) error {
	result := r.db.Unscoped().Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

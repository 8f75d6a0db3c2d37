package repository

import (
	"errors"

	"github.com/spendwise/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBudgetNotFound = errors.New("budget not found")
)

// BudgetRepository handles budget data access
type BudgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(db *gorm.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// GetByTuple retrieves the budget for a (user, category, month, year) tuple
func (r *BudgetRepository) GetByTuple(userID, categoryID uint, month, year int) (*models.Budget, error) {
	var budget models.Budget
	result := r.db.Where(
		"user_id = ? AND category_id = ? AND month = ? AND year = ?",
		userID, categoryID, month, year,
	).First(&budget)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return &budget, nil
}

// ListByUserAndPeriod retrieves a user's budgets for a month and year
func (r *BudgetRepository) ListByUserAndPeriod(userID uint, month, year int) ([]models.Budget, error) {
	var budgets []models.Budget
	result := r.db.Preload("Category").
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		Find(&budgets)
	if result.Error != nil {
		return nil, result.Error
	}
	return budgets, nil
}

// Upsert creates the budget or, if a row already exists for its
// (user, category, month, year) tuple, updates that row's amount.
// The conflict clause runs against the composite unique index, so a
// concurrent insert of the same tuple can never produce two rows.
func (r *BudgetRepository) Upsert(budget *models.Budget) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "category_id"},
			{Name: "month"}, {Name: "year"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(budget).Error
}

// CountByUser counts budgets for a user
func (r *BudgetRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Budget{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

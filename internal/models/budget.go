package models

import (
	"time"
)

// Budget represents a monthly spending limit for one user and category.
// The composite unique index is the authoritative guard for the
// at-most-one-budget-per-(user, category, month, year) invariant; writes
// racing past the application-level check fail on it and are upserted.
type Budget struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Amount     float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Month      int       `gorm:"not null;uniqueIndex:idx_budget_tuple" json:"month"`
	Year       int       `gorm:"not null;uniqueIndex:idx_budget_tuple" json:"year"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_budget_tuple" json:"user_id"`
	CategoryID uint      `gorm:"not null;uniqueIndex:idx_budget_tuple" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName specifies the table name for Budget model
func (Budget) TableName() string {
	return "budgets"
}

package models

import (
	"time"
)

// Expense represents a single expense entry owned by a user.
// Date carries a calendar date only; it is normalized to midnight UTC
// before persisting so range queries compare dates, not instants.
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description string    `gorm:"size:200" json:"description"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	CategoryID  uint      `gorm:"index;not null" json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName specifies the table name for Expense model
func (Expense) TableName() string {
	return "expenses"
}

// DateOnly truncates t to a calendar date at midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

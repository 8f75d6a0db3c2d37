package models

// DefaultCategories is the seed set ensured present at startup.
// EnsureDefaults creates missing names and never touches existing rows.
var DefaultCategories = []string{
	"Food & Dining", "Transportation", "Housing", "Utilities",
	"Entertainment", "Shopping", "Personal Care", "Health & Fitness",
	"Education", "Travel", "Gifts & Donations", "Other",
}

// Category represents a global expense category shared by all users
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name"`

	// Relations
	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
	Budgets  []Budget  `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}

// Package forms holds the plain input structs bound from form submissions
// and the field-scoped validation around them. Defaults are filled by a
// pure step before validation; uniqueness and foreign-key checks are added
// by the services into the same Errors shape.
package forms

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Errors maps a form field name to a human-readable message
type Errors map[string]string

// Add records a message for a field, keeping the first message per field
func (e Errors) Add(field, message string) {
	if _, ok := e[field]; !ok {
		e[field] = message
	}
}

// Any reports whether any field has an error
func (e Errors) Any() bool {
	return len(e) > 0
}

// RegisterForm is the registration form input
type RegisterForm struct {
	Username        string `form:"username" binding:"required,min=3,max=50"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

// LoginForm is the login form input
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// ExpenseForm is the expense-entry form input
type ExpenseForm struct {
	Amount      float64 `form:"amount" binding:"required,gt=0"`
	Description string  `form:"description" binding:"omitempty,max=200"`
	CategoryID  uint    `form:"category_id" binding:"required"`
	Date        string  `form:"date"`
}

// FillDefaults defaults the date to today when the field was left empty
func (f *ExpenseForm) FillDefaults(now time.Time) {
	if f.Date == "" {
		f.Date = now.Format(dateLayout)
	}
}

// ParsedDate parses the date field as a calendar date
func (f *ExpenseForm) ParsedDate() (time.Time, error) {
	return time.Parse(dateLayout, f.Date)
}

// CategoryForm is the add-category form input
type CategoryForm struct {
	Name string `form:"name" binding:"required,max=50"`
}

// BudgetForm is the budget form input. Amount is a pointer so an explicit
// zero budget is distinguishable from a missing field.
type BudgetForm struct {
	CategoryID uint     `form:"category_id" binding:"required"`
	Amount     *float64 `form:"amount" binding:"required,gte=0"`
	Month      int      `form:"month" binding:"omitempty,min=1,max=12"`
	Year       int      `form:"year"`
}

// FillDefaults defaults month and year to the current ones when absent
func (f *BudgetForm) FillDefaults(now time.Time) {
	if f.Month == 0 {
		f.Month = int(now.Month())
	}
	if f.Year == 0 {
		f.Year = now.Year()
	}
}

// YearChoices enumerates the selectable budget years: one year back through
// two years ahead of now.
func YearChoices(now time.Time) []int {
	current := now.Year()
	years := make([]int, 0, 4)
	for y := current - 1; y <= current+2; y++ {
		years = append(years, y)
	}
	return years
}

// ValidateYear checks the year against the enumerated choices
func (f *BudgetForm) ValidateYear(now time.Time, errs Errors) {
	for _, y := range YearChoices(now) {
		if f.Year == y {
			return
		}
	}
	errs.Add("year", fmt.Sprintf("Year must be between %d and %d.", now.Year()-1, now.Year()+2))
}

// MonthChoices enumerates the selectable months as (number, name) pairs
func MonthChoices() []MonthChoice {
	choices := make([]MonthChoice, 0, 12)
	for m := 1; m <= 12; m++ {
		choices = append(choices, MonthChoice{Number: m, Name: time.Month(m).String()})
	}
	return choices
}

// MonthChoice is one selectable month
type MonthChoice struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

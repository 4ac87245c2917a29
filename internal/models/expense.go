package models

import (
	"time"

	"github.com/google/uuid"
)

// ExpenseDateLayout is the wire format for expense dates.
const ExpenseDateLayout = "2006-01-02"

const CategoryOther = "Other"

// ExpenseCategories is the fixed allow-list of expense categories.
// Matching against it is case-exact.
var ExpenseCategories = []string{
	"Food",
	"Transportation",
	"Entertainment",
	"Shopping",
	"Bills",
	"Healthcare",
	CategoryOther,
}

// ValidExpenseCategory reports whether category is an exact member of
// the allow-list.
func ValidExpenseCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Expense struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Amount      float64   `db:"amount"`
	Category    string    `db:"category"`
	Description string    `db:"description"`
	Date        time.Time `db:"date"`
	CreatedAt   time.Time `db:"created_at"`
}

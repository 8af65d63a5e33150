package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseCategory string

const (
	ExpenseMarketing  ExpenseCategory = "marketing"
	ExpenseOperations ExpenseCategory = "operations"
	ExpenseSoftware   ExpenseCategory = "software"
	ExpenseSalary     ExpenseCategory = "salary"
	ExpenseLogistics  ExpenseCategory = "logistics"
	ExpenseOffice     ExpenseCategory = "office"
	ExpenseOther      ExpenseCategory = "other"
)

var ValidExpenseCategories = map[ExpenseCategory]bool{
	ExpenseMarketing:  true,
	ExpenseOperations: true,
	ExpenseSoftware:   true,
	ExpenseSalary:     true,
	ExpenseLogistics:  true,
	ExpenseOffice:     true,
	ExpenseOther:      true,
}

// Expense represents the expense table. Amount is in major units, unlike
// order and product amounts.
type Expense struct {
	ID        int             `db:"id"`
	Title     string          `db:"title"`
	Amount    decimal.Decimal `db:"amount"`
	Category  ExpenseCategory `db:"category"`
	Date      time.Time       `db:"date"`
	Notes     sql.NullString  `db:"notes"`
	CreatedAt time.Time       `db:"created_at"`
}

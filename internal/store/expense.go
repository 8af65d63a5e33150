package store

import (
	"context"
	"fmt"

	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
)

type expenseStore struct {
	*MYSQLStore
}

// Expenses returns an object implementing expenses interface
func (ms *MYSQLStore) Expenses() dependency.Expenses {
	return &expenseStore{
		MYSQLStore: ms,
	}
}

// GetExpensesBetween returns expenses dated within tr. A DATE compares as
// its midnight, so an expense belongs to the window containing that instant.
func (es *expenseStore) GetExpensesBetween(ctx context.Context, tr entity.TimeRange) ([]entity.Expense, error) {
	query := `
	SELECT id, title, amount, category, date, notes, created_at
	FROM expense
	WHERE date >= :from AND date < :to
	ORDER BY date, id`
	exps, err := QueryListNamed[entity.Expense](ctx, es.DB(), query, map[string]any{
		"from": tr.From,
		"to":   tr.To,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get expenses: %w", err)
	}
	return exps, nil
}

func (es *expenseStore) AddExpense(ctx context.Context, e *entity.Expense) (int, error) {
	category := e.Category
	if category == "" {
		category = entity.ExpenseOther
	}
	if !entity.ValidExpenseCategories[category] {
		return 0, fmt.Errorf("unknown expense category %q", category)
	}
	query := `
	INSERT INTO expense (title, amount, category, date, notes)
	VALUES (:title, :amount, :category, :date, :notes)`
	id, err := ExecNamedLastId(ctx, es.DB(), query, map[string]any{
		"title":    e.Title,
		"amount":   e.Amount,
		"category": category,
		"date":     e.Date.Format("2006-01-02"),
		"notes":    e.Notes,
	})
	if err != nil {
		return 0, fmt.Errorf("can't add expense: %w", err)
	}
	return id, nil
}

package store

import (
	"context"
	"fmt"

	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
)

type customerStore struct {
	*MYSQLStore
}

// Customers returns an object implementing customers interface
func (ms *MYSQLStore) Customers() dependency.Customers {
	return &customerStore{
		MYSQLStore: ms,
	}
}

func (cs *customerStore) CountCustomers(ctx context.Context) (int64, error) {
	count, err := QueryCountNamed(ctx, cs.DB(), `SELECT COUNT(*) FROM users`, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("can't count customers: %w", err)
	}
	return count, nil
}

// CountCustomersCreated counts customers registered within tr.
func (cs *customerStore) CountCustomersCreated(ctx context.Context, tr entity.TimeRange) (int64, error) {
	query := `SELECT COUNT(*) FROM users WHERE created_at >= :from AND created_at < :to`
	count, err := QueryCountNamed(ctx, cs.DB(), query, map[string]any{
		"from": tr.From,
		"to":   tr.To,
	})
	if err != nil {
		return 0, fmt.Errorf("can't count new customers: %w", err)
	}
	return count, nil
}

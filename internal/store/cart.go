package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
)

type cartStore struct {
	*MYSQLStore
}

// Carts returns an object implementing carts interface
func (ms *MYSQLStore) Carts() dependency.Carts {
	return &cartStore{
		MYSQLStore: ms,
	}
}

func (cs *cartStore) GetCartByID(ctx context.Context, id string) (*entity.Cart, error) {
	query := `SELECT id, customer_id, purchased_at, created_at FROM cart WHERE id = :id`
	c, err := QueryNamedOne[entity.Cart](ctx, cs.DB(), query, map[string]any{
		"id": id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.CartNotFound
		}
		return nil, fmt.Errorf("can't get cart: %w", err)
	}

	query = `SELECT cart_id, product_id, variant_id, quantity FROM cart_item WHERE cart_id = :id`
	items, err := QueryListNamed[entity.CartItem](ctx, cs.DB(), query, map[string]any{
		"id": id,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get cart items: %w", err)
	}
	c.Items = items
	return &c, nil
}

func (cs *cartStore) MarkCartPurchased(ctx context.Context, id string, at time.Time) error {
	return markCartPurchased(ctx, cs.MYSQLStore, id, at)
}

// markCartPurchased sets purchased_at once; later calls keep the first time.
func markCartPurchased(ctx context.Context, rep dependency.Repository, id string, at time.Time) error {
	query := `UPDATE cart SET purchased_at = :at WHERE id = :id AND purchased_at IS NULL`
	err := ExecNamed(ctx, rep.DB(), query, map[string]any{
		"id": id,
		"at": at,
	})
	if err != nil {
		return fmt.Errorf("can't mark cart purchased: %w", err)
	}
	return nil
}

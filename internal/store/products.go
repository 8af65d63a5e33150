package store

import (
	"context"
	"fmt"

	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
)

type productStore struct {
	*MYSQLStore
}

// Products returns an object implementing products interface
func (ms *MYSQLStore) Products() dependency.Products {
	return &productStore{
		MYSQLStore: ms,
	}
}

// GetProductsByIDs loads the products and their per-currency prices in two
// batched queries regardless of how many ids are requested.
func (ps *productStore) GetProductsByIDs(ctx context.Context, ids []string) (map[string]entity.Product, error) {
	if len(ids) == 0 {
		return map[string]entity.Product{}, nil
	}

	query := `SELECT id, title, created_at FROM product WHERE id IN (:ids)`
	prds, err := QueryListNamed[entity.Product](ctx, ps.DB(), query, map[string]any{
		"ids": ids,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get products: %w", err)
	}
	if len(prds) == 0 {
		return map[string]entity.Product{}, nil
	}

	query = `SELECT product_id, currency, price, cost_price FROM product_price WHERE product_id IN (:ids)`
	prices, err := QueryListNamed[entity.ProductPrice](ctx, ps.DB(), query, map[string]any{
		"ids": ids,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get product prices: %w", err)
	}

	out := make(map[string]entity.Product, len(prds))
	for _, p := range prds {
		p.Prices = make(map[entity.Currency]entity.PricePair)
		out[p.ID] = p
	}
	for _, pp := range prices {
		p, ok := out[pp.ProductID]
		if !ok {
			continue
		}
		p.Prices[pp.Currency.Normalize()] = pp.PricePair
	}
	return out, nil
}

func (ps *productStore) CountProducts(ctx context.Context) (int64, error) {
	count, err := QueryCountNamed(ctx, ps.DB(), `SELECT COUNT(*) FROM product`, map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("can't count products: %w", err)
	}
	return count, nil
}

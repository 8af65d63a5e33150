package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
)

// LoadReferencedProducts fetches, in one batched call, only the products that
// appear in the items of the given orders. No orders or no product references
// means no query at all.
func LoadReferencedProducts(ctx context.Context, products dependency.Products, orderSets ...[]entity.OrderFull) (map[string]entity.Product, error) {
	ids := referencedProductIDs(orderSets...)
	if len(ids) == 0 {
		return map[string]entity.Product{}, nil
	}
	pm, err := products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("can't get referenced products: %w", err)
	}
	if pm == nil {
		pm = map[string]entity.Product{}
	}
	return pm, nil
}

func referencedProductIDs(orderSets ...[]entity.OrderFull) []string {
	seen := make(map[string]struct{})
	for _, orders := range orderSets {
		for _, o := range orders {
			for _, it := range o.Items {
				if it.ProductID.IsZero() {
					continue
				}
				seen[it.ProductID.String()] = struct{}{}
			}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

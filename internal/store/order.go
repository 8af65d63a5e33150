package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
)

// ErrOrderNotFound is returned when no order matches the requested id.
var ErrOrderNotFound = errors.New("order not found")

const orderColumns = `id, amount, currency, status, customer_id, customer_email, transaction_id, shipping_address, created_at`

type orderStore struct {
	*MYSQLStore
}

// Orders returns an object implementing orders interface
func (ms *MYSQLStore) Orders() dependency.Orders {
	return &orderStore{
		MYSQLStore: ms,
	}
}

// GetOrdersCreated returns orders created within tr with their items,
// newest first.
func (s *orderStore) GetOrdersCreated(ctx context.Context, tr entity.TimeRange) ([]entity.OrderFull, error) {
	query := `
	SELECT ` + orderColumns + `
	FROM customer_order
	WHERE created_at >= :from AND created_at < :to
	ORDER BY created_at DESC, id DESC`
	orders, err := QueryListNamed[entity.Order](ctx, s.DB(), query, map[string]any{
		"from": tr.From,
		"to":   tr.To,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get orders: %w", err)
	}
	return withItems(ctx, s.MYSQLStore, orders)
}

func (s *orderStore) GetOrderByID(ctx context.Context, id string) (*entity.OrderFull, error) {
	return getOrderFullByID(ctx, s.MYSQLStore, id)
}

// AddOrder inserts the order and its items. A missing id is generated and
// a missing creation time is the store's current time.
func (s *orderStore) AddOrder(ctx context.Context, o *entity.OrderFull) error {
	return insertOrderFull(ctx, s.MYSQLStore, o)
}

func getOrderFullByID(ctx context.Context, rep dependency.Repository, id string) (*entity.OrderFull, error) {
	query := `SELECT ` + orderColumns + ` FROM customer_order WHERE id = :id`
	o, err := QueryNamedOne[entity.Order](ctx, rep.DB(), query, map[string]any{
		"id": id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
		}
		return nil, fmt.Errorf("can't get order by id: %w", err)
	}
	ofs, err := withItems(ctx, rep, []entity.Order{o})
	if err != nil {
		return nil, err
	}
	return &ofs[0], nil
}

// withItems attaches items to orders with one batched query.
func withItems(ctx context.Context, rep dependency.Repository, orders []entity.Order) ([]entity.OrderFull, error) {
	if len(orders) == 0 {
		return []entity.OrderFull{}, nil
	}
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	query := `
	SELECT id, order_id, product_id, variant_id, quantity, unit_price, unit_cost_price
	FROM order_item
	WHERE order_id IN (:orderIds)
	ORDER BY id`
	items, err := QueryListNamed[entity.OrderItem](ctx, rep.DB(), query, map[string]any{
		"orderIds": ids,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get order items: %w", err)
	}

	byOrder := make(map[string][]entity.OrderItem, len(orders))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}

	out := make([]entity.OrderFull, 0, len(orders))
	for _, o := range orders {
		out = append(out, entity.OrderFull{
			Order: o,
			Items: byOrder[o.ID],
		})
	}
	return out, nil
}

func insertOrderFull(ctx context.Context, rep dependency.Repository, o *entity.OrderFull) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = rep.Now()
	}
	if o.Status == "" {
		o.Status = entity.DefaultOrderStatus
	}
	o.Currency = o.Currency.Normalize()

	query := `
	INSERT INTO customer_order
	 (id, amount, currency, status, customer_id, customer_email, transaction_id, shipping_address, created_at)
	 VALUES (:id, :amount, :currency, :status, :customerId, :customerEmail, :transactionId, :shippingAddress, :createdAt)
	`
	err := ExecNamed(ctx, rep.DB(), query, map[string]any{
		"id":              o.ID,
		"amount":          o.Amount,
		"currency":        o.Currency,
		"status":          o.Status,
		"customerId":      o.CustomerID,
		"customerEmail":   o.CustomerEmail,
		"transactionId":   o.TransactionID,
		"shippingAddress": o.ShippingAddress,
		"createdAt":       o.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("can't insert order: %w", err)
	}
	return insertOrderItems(ctx, rep, o.ID, o.Items)
}

func insertOrderItems(ctx context.Context, rep dependency.Repository, orderID string, items []entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(items))
	for i := range items {
		items[i].OrderID = orderID
		rows = append(rows, map[string]any{
			"order_id":        orderID,
			"product_id":      items[i].ProductID,
			"variant_id":      items[i].VariantID,
			"quantity":        items[i].Quantity,
			"unit_price":      items[i].UnitPrice,
			"unit_cost_price": items[i].UnitCostPrice,
		})
	}
	if err := BulkInsert(ctx, rep.DB(), "order_item", rows); err != nil {
		return fmt.Errorf("can't insert order items: %w", err)
	}
	return nil
}

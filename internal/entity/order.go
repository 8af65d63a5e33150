package entity

import (
	"database/sql"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// DefaultOrderStatus is the status bucket for orders stored without one.
const DefaultOrderStatus = OrderStatusProcessing

// Order represents the customer_order table. Amount is the charged total in
// minor units and never changes after creation.
type Order struct {
	ID              string      `db:"id"`
	Amount          int64       `db:"amount"`
	Currency        Currency    `db:"currency"`
	Status          OrderStatus `db:"status"`
	CustomerID      Ref         `db:"customer_id"`
	CustomerEmail   string      `db:"customer_email"`
	TransactionID   Ref         `db:"transaction_id"`
	ShippingAddress JSONAddress `db:"shipping_address"`
	CreatedAt       time.Time   `db:"created_at"`
}

// OrderItem represents the order_item table. UnitPrice and UnitCostPrice are
// the snapshot taken when the payment was initiated, NULL for legacy rows.
type OrderItem struct {
	ID            int           `db:"id"`
	OrderID       string        `db:"order_id"`
	ProductID     Ref           `db:"product_id"`
	VariantID     Ref           `db:"variant_id"`
	Quantity      int64         `db:"quantity"`
	UnitPrice     sql.NullInt64 `db:"unit_price"`
	UnitCostPrice sql.NullInt64 `db:"unit_cost_price"`
}

func (oi *OrderItem) Snapshot() UnitSnapshot {
	var s UnitSnapshot
	if oi.UnitPrice.Valid {
		v := oi.UnitPrice.Int64
		s.UnitPrice = &v
	}
	if oi.UnitCostPrice.Valid {
		v := oi.UnitCostPrice.Int64
		s.UnitCostPrice = &v
	}
	return s
}

type OrderFull struct {
	Order
	Items []OrderItem
}

// UnitSnapshot carries frozen unit amounts in minor units. A nil field means
// the value was never captured.
type UnitSnapshot struct {
	UnitPrice     *int64 `json:"unitPrice,omitempty"`
	UnitCostPrice *int64 `json:"unitCostPrice,omitempty"`
}

func (s UnitSnapshot) IsEmpty() bool {
	return s.UnitPrice == nil && s.UnitCostPrice == nil
}

package entity

import (
	"database/sql"
	"time"
)

// Cart represents the cart table.
type Cart struct {
	ID          string       `db:"id"`
	CustomerID  Ref          `db:"customer_id"`
	PurchasedAt sql.NullTime `db:"purchased_at"`
	CreatedAt   time.Time    `db:"created_at"`
	Items       []CartItem
}

type CartItem struct {
	CartID    string `db:"cart_id"`
	ProductID Ref    `db:"product_id"`
	VariantID Ref    `db:"variant_id"`
	Quantity  int64  `db:"quantity"`
}

func (c *Cart) IsPurchased() bool {
	return c.PurchasedAt.Valid
}

package dto

import (
	"strings"

	"github.com/jekabolt/storefront-ledger/internal/currency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	"github.com/shopspring/decimal"
)

// OrderConfirmed is the data of the order confirmation email.
type OrderConfirmed struct {
	Preheader       string
	OrderID         string
	OrderNumber     string
	CustomerEmail   string
	Currency        string
	TotalPrice      string
	Items           []OrderConfirmedItem
	ShippingAddress *entity.Address
}

type OrderConfirmedItem struct {
	Name      string
	Quantity  int64
	UnitPrice string
	LineTotal string
}

// OrderNumber is the short human facing order number: the first 8
// characters of the order id, upper-cased.
func OrderNumber(orderID string) string {
	n := orderID
	if len(n) > 8 {
		n = n[:8]
	}
	return strings.ToUpper(n)
}

// OrderFullToOrderConfirmed renders an order for the confirmation email.
// titles maps product id to title; unknown products are shown as "Item".
func OrderFullToOrderConfirmed(of *entity.OrderFull, titles map[string]string) *OrderConfirmed {
	cur := of.Currency.Normalize()
	oc := &OrderConfirmed{
		Preheader:       "YOUR ORDER HAS BEEN CONFIRMED",
		OrderID:         of.ID,
		OrderNumber:     OrderNumber(of.ID),
		CustomerEmail:   of.CustomerEmail,
		Currency:        cur.String(),
		TotalPrice:      currency.ToMajorUnits(of.Amount).StringFixed(2),
		Items:           make([]OrderConfirmedItem, 0, len(of.Items)),
		ShippingAddress: of.ShippingAddress.Address,
	}
	for i := range of.Items {
		it := &of.Items[i]
		name, ok := titles[it.ProductID.String()]
		if !ok || name == "" {
			name = "Item"
		}
		unit := currency.PtrToMajorUnits(it.Snapshot().UnitPrice)
		oc.Items = append(oc.Items, OrderConfirmedItem{
			Name:      name,
			Quantity:  it.Quantity,
			UnitPrice: unit.StringFixed(2),
			LineTotal: unit.Mul(decimal.NewFromInt(it.Quantity)).StringFixed(2),
		})
	}
	return oc
}

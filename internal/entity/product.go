package entity

import "time"

// Product is the read-only view of a catalog product: its title and a
// price/cost pair per currency.
type Product struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
	Prices    map[Currency]PricePair
}

// PriceIn returns the product's price pair for the currency.
func (p *Product) PriceIn(c Currency) (PricePair, bool) {
	if p == nil || p.Prices == nil {
		return PricePair{}, false
	}
	pp, ok := p.Prices[c.Normalize()]
	return pp, ok
}

// ProductPrice represents the product_price table
type ProductPrice struct {
	ProductID string   `db:"product_id"`
	Currency  Currency `db:"currency"`
	PricePair
}

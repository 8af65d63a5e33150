package entity

import "strings"

// Currency is an ISO 4217 code of a currency the storefront charges in.
type Currency string

const (
	NGN Currency = "NGN"
	USD Currency = "USD"
)

// DefaultCurrency is used for orders stored without a currency.
const DefaultCurrency = NGN

var SupportedCurrencies = map[Currency]bool{
	NGN: true,
	USD: true,
}

func (c Currency) String() string {
	return string(c)
}

// Normalize upper-cases the code and falls back to DefaultCurrency when empty.
func (c Currency) Normalize() Currency {
	if c == "" {
		return DefaultCurrency
	}
	return Currency(strings.ToUpper(string(c)))
}

func (c Currency) IsSupported() bool {
	return SupportedCurrencies[c.Normalize()]
}

// PricePair is a unit price and unit cost in minor units of one currency.
type PricePair struct {
	Price int64 `db:"price"`
	Cost  int64 `db:"cost_price"`
}

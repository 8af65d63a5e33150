package currency

import (
	"fmt"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	"github.com/shopspring/decimal"
)

// minorPerMajor is fixed for every supported currency (kobo, cents).
var minorPerMajor = decimal.NewFromInt(100)

// Minimum charge amounts per currency in major units.
var minimumAmounts = map[entity.Currency]decimal.Decimal{
	entity.NGN: decimal.NewFromInt(50),
	entity.USD: decimal.NewFromFloat(0.50),
}

// ToMajorUnits converts a minor-unit amount to major units.
func ToMajorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(minorPerMajor)
}

// PtrToMajorUnits treats a missing amount as zero.
func PtrToMajorUnits(minor *int64) decimal.Decimal {
	if minor == nil {
		return decimal.Zero
	}
	return ToMajorUnits(*minor)
}

// ToMinorUnits converts a major-unit amount to minor units, rounding half away from zero.
func ToMinorUnits(major decimal.Decimal) int64 {
	return major.Mul(minorPerMajor).Round(0).IntPart()
}

// UnitAmounts is a resolved unit price and unit cost in major units.
type UnitAmounts struct {
	Price decimal.Decimal
	Cost  decimal.Decimal
	// FromSnapshot is false when at least one value came from live product pricing.
	FromSnapshot bool
}

// ResolveUnitAmounts picks the unit price and cost of a line item. Snapshot
// values win field by field; a missing snapshot field falls back to the live
// product price in the given currency, and to zero without a product.
func ResolveUnitAmounts(snap entity.UnitSnapshot, product *entity.Product, c entity.Currency) UnitAmounts {
	ua := UnitAmounts{
		Price:        decimal.Zero,
		Cost:         decimal.Zero,
		FromSnapshot: snap.UnitPrice != nil && snap.UnitCostPrice != nil,
	}
	live, hasLive := product.PriceIn(c)

	switch {
	case snap.UnitPrice != nil:
		ua.Price = ToMajorUnits(*snap.UnitPrice)
	case hasLive:
		ua.Price = ToMajorUnits(live.Price)
	}
	switch {
	case snap.UnitCostPrice != nil:
		ua.Cost = ToMajorUnits(*snap.UnitCostPrice)
	case hasLive:
		ua.Cost = ToMajorUnits(live.Cost)
	}
	return ua
}

// Freeze captures the live unit price and cost of a product as a snapshot in minor units.
func Freeze(product *entity.Product, c entity.Currency) (entity.UnitSnapshot, error) {
	pp, ok := product.PriceIn(c)
	if !ok {
		id := ""
		if product != nil {
			id = product.ID
		}
		return entity.UnitSnapshot{}, fmt.Errorf("product %q has no %s price", id, c)
	}
	price, cost := pp.Price, pp.Cost
	return entity.UnitSnapshot{UnitPrice: &price, UnitCostPrice: &cost}, nil
}

// RoundWhole rounds a major-unit amount to a whole unit for display,
// half away from zero.
func RoundWhole(amount decimal.Decimal) int64 {
	return amount.Round(0).IntPart()
}

// Minimum returns the minimum charge amount for the currency, or zero if unknown.
func Minimum(c entity.Currency) decimal.Decimal {
	if min, ok := minimumAmounts[c.Normalize()]; ok {
		return min
	}
	return decimal.Zero
}

// ValidateMinimum returns an error if a minor-unit amount is below the currency minimum.
func ValidateMinimum(minor int64, c entity.Currency) error {
	min := Minimum(c)
	if min.IsZero() {
		return nil
	}
	amount := ToMajorUnits(minor)
	if amount.LessThan(min) {
		return fmt.Errorf("%s amount %s is below minimum %s", c, amount.String(), min.String())
	}
	return nil
}

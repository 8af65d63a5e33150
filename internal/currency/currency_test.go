package currency

import (
	"testing"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64 { return &v }

func TestToMajorUnits(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{10000, "100"},
		{5050, "50.5"},
		{1, "0.01"},
		{0, "0"},
		{-250, "-2.5"},
	}
	for _, tt := range tests {
		assert.True(t, decimal.RequireFromString(tt.want).Equal(ToMajorUnits(tt.minor)), "minor %d", tt.minor)
	}
	assert.True(t, PtrToMajorUnits(nil).IsZero())
	assert.Equal(t, int64(123456), ToMinorUnits(decimal.RequireFromString("1234.555")))
}

func TestResolveUnitAmounts(t *testing.T) {
	product := &entity.Product{
		ID:    "prod_1",
		Title: "Chronograph",
		Prices: map[entity.Currency]entity.PricePair{
			entity.NGN: {Price: 900000, Cost: 500000},
			entity.USD: {Price: 12000, Cost: 7000},
		},
	}

	t.Run("snapshot wins over live price", func(t *testing.T) {
		ua := ResolveUnitAmounts(entity.UnitSnapshot{UnitPrice: i64(800000), UnitCostPrice: i64(400000)}, product, entity.NGN)
		assert.Equal(t, "8000", ua.Price.String())
		assert.Equal(t, "4000", ua.Cost.String())
		assert.True(t, ua.FromSnapshot)
	})

	t.Run("partial snapshot falls back per field", func(t *testing.T) {
		ua := ResolveUnitAmounts(entity.UnitSnapshot{UnitPrice: i64(800000)}, product, entity.NGN)
		assert.Equal(t, "8000", ua.Price.String())
		assert.Equal(t, "5000", ua.Cost.String())
		assert.False(t, ua.FromSnapshot)
	})

	t.Run("live price in requested currency", func(t *testing.T) {
		ua := ResolveUnitAmounts(entity.UnitSnapshot{}, product, "usd")
		assert.Equal(t, "120", ua.Price.String())
		assert.Equal(t, "70", ua.Cost.String())
	})

	t.Run("no product no snapshot", func(t *testing.T) {
		ua := ResolveUnitAmounts(entity.UnitSnapshot{}, nil, entity.NGN)
		assert.True(t, ua.Price.IsZero())
		assert.True(t, ua.Cost.IsZero())
	})

	t.Run("product without currency price", func(t *testing.T) {
		p := &entity.Product{ID: "prod_2"}
		ua := ResolveUnitAmounts(entity.UnitSnapshot{}, p, entity.USD)
		assert.True(t, ua.Price.IsZero())
	})
}

func TestFreeze(t *testing.T) {
	product := &entity.Product{
		ID:     "prod_1",
		Prices: map[entity.Currency]entity.PricePair{entity.NGN: {Price: 1500, Cost: 700}},
	}
	snap, err := Freeze(product, entity.NGN)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), *snap.UnitPrice)
	assert.Equal(t, int64(700), *snap.UnitCostPrice)

	// the snapshot must not follow later price edits
	product.Prices[entity.NGN] = entity.PricePair{Price: 9999, Cost: 1}
	assert.Equal(t, int64(1500), *snap.UnitPrice)

	_, err = Freeze(product, entity.USD)
	assert.Error(t, err)
	_, err = Freeze(nil, entity.USD)
	assert.Error(t, err)
}

func TestRoundWhole(t *testing.T) {
	assert.Equal(t, int64(3), RoundWhole(decimal.RequireFromString("2.5")))
	assert.Equal(t, int64(2), RoundWhole(decimal.RequireFromString("2.49")))
	assert.Equal(t, int64(-3), RoundWhole(decimal.RequireFromString("-2.5")))
}

func TestValidateMinimum(t *testing.T) {
	assert.NoError(t, ValidateMinimum(5000, entity.NGN))
	assert.Error(t, ValidateMinimum(4999, entity.NGN))
	assert.NoError(t, ValidateMinimum(50, entity.USD))
	assert.Error(t, ValidateMinimum(49, entity.USD))
	assert.NoError(t, ValidateMinimum(1, "EUR"))
}

package analytics

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func genOrders() gopter.Gen {
	return gen.SliceOf(gen.Struct(reflect.TypeOf(orderSeed{}), map[string]gopter.Gen{
		"Amount":   gen.Int64Range(0, 5_000_000),
		"Cost":     gen.Int64Range(0, 50_000),
		"Quantity": gen.Int64Range(-1, 20),
		"Day":      gen.IntRange(1, 28),
	}))
}

type orderSeed struct {
	Amount   int64
	Cost     int64
	Quantity int64
	Day      int
}

func (s orderSeed) order() entity.OrderFull {
	return entity.OrderFull{
		Order: entity.Order{
			Amount:    s.Amount,
			CreatedAt: time.Date(2026, 2, s.Day, 10, 0, 0, 0, time.UTC),
		},
		Items: []entity.OrderItem{{ProductID: "p", Quantity: s.Quantity, UnitCostPrice: snap(s.Cost)}},
	}
}

func TestAggregationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("totals equal the sum of per-order figures", prop.ForAll(
		func(seeds []orderSeed) bool {
			agg := NewAggregator(nil, time.UTC)
			revenue, profit := decimal.Zero, decimal.Zero
			for _, s := range seeds {
				o := s.order()
				f := agg.AddOrder(&o)
				revenue = revenue.Add(f.Revenue)
				profit = profit.Add(f.Profit)
			}
			tot := agg.Totals()
			return tot.Revenue.Equal(revenue) && tot.GrossProfit.Equal(profit) &&
				tot.GrossProfit.Equal(tot.Revenue.Sub(tot.Cost))
		},
		genOrders(),
	))

	properties.Property("net profit is gross profit minus expenses", prop.ForAll(
		func(seeds []orderSeed, expenses []int64) bool {
			agg := NewAggregator(nil, time.UTC)
			for _, s := range seeds {
				o := s.order()
				agg.AddOrder(&o)
			}
			for _, e := range expenses {
				agg.AddExpense(&entity.Expense{Amount: decimal.New(e, -2), Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)})
			}
			tot := agg.Totals()
			return tot.NetProfit().Equal(tot.GrossProfit.Sub(tot.Expenses))
		},
		genOrders(),
		gen.SliceOf(gen.Int64Range(0, 1_000_000)),
	))

	properties.Property("margin is finite and zero without revenue", prop.ForAll(
		func(profit, revenue int64) bool {
			m := Margin(decimal.NewFromInt(profit), decimal.NewFromInt(revenue))
			if math.IsNaN(m) || math.IsInf(m, 0) {
				return false
			}
			return revenue > 0 || m == 0
		},
		gen.Int64Range(-1_000_000, 1_000_000),
		gen.Int64Range(-10, 1_000_000),
	))

	properties.Property("change from a zero base is zero", prop.ForAll(
		func(current int64) bool {
			return ChangePct(decimal.NewFromInt(current), decimal.Zero) == 0
		},
		gen.Int64(),
	))

	properties.Property("series revenue adds up to total revenue", prop.ForAll(
		func(seeds []orderSeed) bool {
			agg := NewAggregator(nil, time.UTC)
			for _, s := range seeds {
				o := s.order()
				agg.AddOrder(&o)
			}
			sum := decimal.Zero
			for _, d := range agg.days {
				sum = sum.Add(d.revenue)
			}
			return sum.Equal(agg.Totals().Revenue)
		},
		genOrders(),
	))

	properties.TestingRun(t)
}

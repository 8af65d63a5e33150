package analytics

import (
	"database/sql"
	"testing"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}

func day(d int) time.Time {
	return time.Date(2026, 10, d, 12, 0, 0, 0, time.UTC)
}

func TestScenarioTwoOrdersOneExpense(t *testing.T) {
	orders := []entity.OrderFull{
		{
			Order: entity.Order{ID: "o1", Amount: 10000, Currency: entity.NGN, Status: entity.OrderStatusCompleted,
				CustomerEmail: "ada@example.com", CreatedAt: day(5)},
			Items: []entity.OrderItem{{ProductID: "p1", Quantity: 1, UnitPrice: snap(10000), UnitCostPrice: snap(4000)}},
		},
		{
			Order: entity.Order{ID: "o2", Amount: 5000, Currency: entity.NGN, CreatedAt: day(6)},
			Items: []entity.OrderItem{{ProductID: "p2", Quantity: 1, UnitPrice: snap(5000), UnitCostPrice: snap(2000)}},
		},
	}
	expenses := []entity.Expense{
		{Amount: decimal.NewFromInt(30), Category: entity.ExpenseMarketing, Date: time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)},
	}

	agg := NewAggregator(nil, time.UTC)
	for i := range orders {
		agg.AddOrder(&orders[i])
	}
	for i := range expenses {
		agg.AddExpense(&expenses[i])
	}

	tot := agg.Totals()
	assert.True(t, decimal.NewFromInt(150).Equal(tot.Revenue), tot.Revenue.String())
	assert.True(t, decimal.NewFromInt(60).Equal(tot.Cost), tot.Cost.String())
	assert.True(t, decimal.NewFromInt(90).Equal(tot.GrossProfit), tot.GrossProfit.String())
	assert.True(t, decimal.NewFromInt(30).Equal(tot.Expenses), tot.Expenses.String())
	assert.True(t, decimal.NewFromInt(60).Equal(tot.NetProfit()), tot.NetProfit().String())

	data := agg.Build(newTotals(), Counts{Products: 4, Customers: 2}, RecentOrders(orders, nil, TopN))
	ov := data.Overview
	assert.Equal(t, int64(150), ov.TotalRevenue)
	assert.Equal(t, int64(60), ov.TotalCost)
	assert.Equal(t, int64(90), ov.TotalProfit)
	assert.Equal(t, int64(30), ov.TotalExpenses)
	assert.Equal(t, int64(60), ov.NetProfit)
	assert.Equal(t, 40.0, ov.ProfitMargin)
	assert.Equal(t, int64(2), ov.TotalOrders)
	assert.Equal(t, int64(2), ov.TotalItemsSold)
	assert.Zero(t, ov.RevenueChange, "zero previous base")

	require.Len(t, data.RevenueData, 2)
	assert.Equal(t, entity.RevenueDataPoint{Date: "2026-10-05", Revenue: 100, Cost: 40, Profit: 60, Expense: 30}, data.RevenueData[0])
	assert.Equal(t, entity.RevenueDataPoint{Date: "2026-10-06", Revenue: 50, Cost: 20, Profit: 30}, data.RevenueData[1])

	require.Len(t, data.OrderStatusData, 2)
	assert.ElementsMatch(t, []string{"Completed", "Processing"},
		[]string{data.OrderStatusData[0].Name, data.OrderStatusData[1].Name})

	require.Len(t, data.TopCustomers, 2)
	assert.Equal(t, "ada", data.TopCustomers[0].Name)
	assert.Equal(t, int64(100), data.TopCustomers[0].AverageOrderValue)
	assert.Equal(t, GuestCustomerKey, data.TopCustomers[1].Name)

	require.Len(t, data.ExpensesByCategory, 1)
	assert.Equal(t, entity.BreakdownSlice{Name: "marketing", Value: 30, Color: Palette[0]}, data.ExpensesByCategory[0])
}

func TestSnapshotWinsOverLivePrice(t *testing.T) {
	products := map[string]entity.Product{
		"p1": {ID: "p1", Title: "Shirt", Prices: map[entity.Currency]entity.PricePair{
			entity.NGN: {Price: 99000, Cost: 77000},
		}},
	}
	o := &entity.OrderFull{
		Order: entity.Order{Amount: 10000, Currency: entity.NGN},
		Items: []entity.OrderItem{{ProductID: "p1", Quantity: 2, UnitPrice: snap(5000), UnitCostPrice: snap(1500)}},
	}

	f := EvaluateOrder(o, products)
	assert.True(t, decimal.NewFromInt(30).Equal(f.Cost), f.Cost.String())
	assert.True(t, decimal.NewFromInt(100).Equal(f.Lines[0].Revenue))
	assert.Equal(t, "Shirt", f.Lines[0].ProductName)
}

func TestLegacyItemFallsBackToLivePrice(t *testing.T) {
	products := map[string]entity.Product{
		"p1": {ID: "p1", Prices: map[entity.Currency]entity.PricePair{entity.USD: {Price: 2500, Cost: 1000}}},
	}
	o := &entity.OrderFull{
		Order: entity.Order{Amount: 5000, Currency: "usd"},
		Items: []entity.OrderItem{{ProductID: "p1", Quantity: 2}},
	}
	f := EvaluateOrder(o, products)
	assert.True(t, decimal.NewFromInt(20).Equal(f.Cost), f.Cost.String())
	assert.True(t, decimal.NewFromInt(30).Equal(f.Profit), f.Profit.String())
}

func TestMalformedItemsContributeNothing(t *testing.T) {
	agg := NewAggregator(map[string]entity.Product{}, time.UTC)
	f := agg.AddOrder(&entity.OrderFull{
		Order: entity.Order{Amount: 7000, CreatedAt: day(1)},
		Items: []entity.OrderItem{
			{ProductID: "gone", Quantity: 3},
			{ProductID: "", Quantity: 1, UnitCostPrice: snap(1000)},
			{ProductID: "p1", Quantity: 0, UnitCostPrice: snap(1000)},
		},
	})
	assert.True(t, decimal.NewFromInt(10).Equal(f.Cost), f.Cost.String())
	assert.True(t, decimal.NewFromInt(70).Equal(f.Revenue))

	top := agg.TopProducts(TopN)
	require.Len(t, top, 2)
	ids := []string{top[0].ID, top[1].ID}
	assert.ElementsMatch(t, []string{"gone", UnknownProductKey}, ids)
}

func TestExpenseOnlyDayAppearsInSeries(t *testing.T) {
	agg := NewAggregator(nil, time.UTC)
	agg.AddOrder(&entity.OrderFull{Order: entity.Order{Amount: 1000, CreatedAt: day(2)}})
	agg.AddExpense(&entity.Expense{Amount: decimal.NewFromInt(12), Date: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)})

	series := agg.RevenueSeries()
	require.Len(t, series, 2)
	assert.Equal(t, entity.RevenueDataPoint{Date: "2026-10-01", Expense: 12}, series[0])
	assert.Equal(t, "2026-10-02", series[1].Date)
}

func TestOrderDayBucketUsesLocation(t *testing.T) {
	wat := time.FixedZone("WAT", 3600)
	agg := NewAggregator(nil, wat)
	agg.AddOrder(&entity.OrderFull{Order: entity.Order{Amount: 1000, CreatedAt: time.Date(2026, 10, 1, 23, 30, 0, 0, time.UTC)}})
	assert.Equal(t, "2026-10-02", agg.RevenueSeries()[0].Date)
}

func TestRankingTiesKeepFirstSeenOrder(t *testing.T) {
	agg := NewAggregator(nil, time.UTC)
	for _, id := range []entity.Ref{"a", "b", "c"} {
		agg.AddOrder(&entity.OrderFull{
			Order: entity.Order{Amount: 1000, CustomerID: id, CreatedAt: day(1)},
			Items: []entity.OrderItem{{ProductID: id, Quantity: 1, UnitPrice: snap(1000), UnitCostPrice: snap(500)}},
		})
	}
	top := agg.TopProducts(2)
	require.Len(t, top, 2)
	assert.Equal(t, "a", top[0].ID)
	assert.Equal(t, "b", top[1].ID)

	customers := agg.TopCustomers(TopN)
	require.Len(t, customers, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{customers[0].ID, customers[1].ID, customers[2].ID})
}

func TestBreakdownPaletteCycles(t *testing.T) {
	agg := NewAggregator(nil, time.UTC)
	amounts := map[entity.ExpenseCategory]int64{
		entity.ExpenseMarketing: 50, entity.ExpenseSalary: 40, entity.ExpenseOffice: 30,
		entity.ExpenseSoftware: 20, entity.ExpenseLogistics: 10,
	}
	for c, v := range amounts {
		agg.AddExpense(&entity.Expense{Amount: decimal.NewFromInt(v), Category: c, Date: day(1)})
	}
	agg.AddExpense(&entity.Expense{Amount: decimal.NewFromInt(5), Date: day(1)})

	slices := agg.ExpenseBreakdown()
	require.Len(t, slices, 6)
	assert.Equal(t, "marketing", slices[0].Name)
	assert.Equal(t, Palette[0], slices[0].Color)
	assert.Equal(t, Palette[0], slices[4].Color)
	assert.Equal(t, "other", slices[5].Name)
	assert.Equal(t, Palette[1], slices[5].Color)
}

func TestChangeAndMargin(t *testing.T) {
	assert.Equal(t, int64(50), ChangePct(decimal.NewFromInt(150), decimal.NewFromInt(100)))
	assert.Equal(t, int64(-33), ChangePct(decimal.NewFromInt(100), decimal.NewFromInt(150)))
	assert.Zero(t, ChangePct(decimal.NewFromInt(100), decimal.Zero))
	assert.Zero(t, Margin(decimal.NewFromInt(-5), decimal.Zero))
	assert.Equal(t, 33.33, Margin(decimal.NewFromInt(1), decimal.NewFromInt(3)))
}

func TestSummarizePrevious(t *testing.T) {
	prev := SummarizePrevious(
		[]entity.OrderFull{{
			Order: entity.Order{Amount: 20000},
			Items: []entity.OrderItem{{ProductID: "p", Quantity: 2, UnitCostPrice: snap(3000)}},
		}},
		[]entity.Expense{{Amount: decimal.RequireFromString("12.50")}},
		nil,
	)
	assert.True(t, decimal.NewFromInt(200).Equal(prev.Revenue))
	assert.True(t, decimal.NewFromInt(140).Equal(prev.GrossProfit))
	assert.True(t, decimal.RequireFromString("127.5").Equal(prev.NetProfit()))
	assert.Equal(t, int64(2), prev.ItemsSold)
}

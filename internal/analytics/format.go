package analytics

import (
	"sort"

	"github.com/jekabolt/storefront-ledger/internal/currency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TopN caps the product, customer and recent order lists.
const TopN = 10

// Palette colors breakdown slices by rank, cycling when there are more slices.
var Palette = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444"}

var hundred = decimal.NewFromInt(100)

// Counts are the catalog and customer figures read next to the orders.
type Counts struct {
	Products             int64
	Customers            int64
	NewCustomers         int64
	PreviousNewCustomers int64
}

// ChangePct is round((current-previous)/previous*100). A non-positive
// previous value has no meaningful base and yields 0.
func ChangePct(current, previous decimal.Decimal) int64 {
	if !previous.IsPositive() {
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(0).IntPart()
}

func changePctInt(current, previous int64) int64 {
	return ChangePct(decimal.NewFromInt(current), decimal.NewFromInt(previous))
}

// Margin is profit/revenue*100 with two decimals, 0 when revenue is not positive.
func Margin(profit, revenue decimal.Decimal) float64 {
	if !revenue.IsPositive() {
		return 0
	}
	f, _ := profit.Div(revenue).Mul(hundred).Round(2).Float64()
	return f
}

// StatusDisplayName capitalizes a status for the dashboard ("processing" -> "Processing").
func StatusDisplayName(s entity.OrderStatus) string {
	// Casers keep state, one per call
	return cases.Title(language.English).String(string(s))
}

// RevenueSeries returns the per-day series sorted by date. Days with only
// expenses or only orders are both present.
func (a *Aggregator) RevenueSeries() []entity.RevenueDataPoint {
	out := make([]entity.RevenueDataPoint, 0, len(a.days))
	for key, d := range a.days {
		out = append(out, entity.RevenueDataPoint{
			Date:    key,
			Revenue: currency.RoundWhole(d.revenue),
			Cost:    currency.RoundWhole(d.cost),
			Profit:  currency.RoundWhole(d.profit),
			Expense: currency.RoundWhole(d.expense),
		})
	}
	// ISO day keys sort chronologically as strings
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// StatusBreakdown returns order counts per status, largest first.
func (a *Aggregator) StatusBreakdown() []entity.BreakdownSlice {
	out := make([]entity.BreakdownSlice, 0, len(a.statuses))
	for _, sc := range a.statuses {
		out = append(out, entity.BreakdownSlice{
			Name:  StatusDisplayName(sc.status),
			Value: sc.count,
		})
	}
	return colorize(out)
}

// ExpenseBreakdown returns expense totals per category, largest first.
func (a *Aggregator) ExpenseBreakdown() []entity.BreakdownSlice {
	out := make([]entity.BreakdownSlice, 0, len(a.categories))
	for _, ct := range a.categories {
		out = append(out, entity.BreakdownSlice{
			Name:  string(ct.category),
			Value: currency.RoundWhole(ct.amount),
		})
	}
	return colorize(out)
}

func colorize(slices []entity.BreakdownSlice) []entity.BreakdownSlice {
	sort.SliceStable(slices, func(i, j int) bool { return slices[i].Value > slices[j].Value })
	for i := range slices {
		slices[i].Color = Palette[i%len(Palette)]
	}
	return slices
}

// TopProducts ranks products by profit. Equal profits keep first-seen order.
func (a *Aggregator) TopProducts(n int) []entity.TopProduct {
	ranked := make([]*productMetrics, len(a.productList))
	copy(ranked, a.productList)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].profit.GreaterThan(ranked[j].profit)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]entity.TopProduct, 0, len(ranked))
	for _, pm := range ranked {
		out = append(out, entity.TopProduct{
			ID:           pm.id,
			Name:         pm.name,
			Sales:        pm.sales,
			Revenue:      currency.RoundWhole(pm.revenue),
			Cost:         currency.RoundWhole(pm.cost),
			Profit:       currency.RoundWhole(pm.profit),
			ProfitMargin: Margin(pm.profit, pm.revenue),
		})
	}
	return out
}

// TopCustomers ranks customers by profit. Equal profits keep first-seen order.
func (a *Aggregator) TopCustomers(n int) []entity.CustomerProfitability {
	ranked := make([]*customerMetrics, len(a.customerList))
	copy(ranked, a.customerList)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].profit.GreaterThan(ranked[j].profit)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]entity.CustomerProfitability, 0, len(ranked))
	for _, cm := range ranked {
		aov := decimal.Zero
		if cm.orders > 0 {
			aov = cm.revenue.Div(decimal.NewFromInt(cm.orders))
		}
		out = append(out, entity.CustomerProfitability{
			ID:                cm.id,
			Name:              cm.name,
			Email:             cm.email,
			TotalOrders:       cm.orders,
			TotalRevenue:      currency.RoundWhole(cm.revenue),
			TotalCost:         currency.RoundWhole(cm.cost),
			TotalProfit:       currency.RoundWhole(cm.profit),
			ProfitMargin:      Margin(cm.profit, cm.revenue),
			AverageOrderValue: currency.RoundWhole(aov),
		})
	}
	return out
}

// RecentOrders maps the first n orders, which the store returns newest first.
func RecentOrders(orders []entity.OrderFull, products map[string]entity.Product, n int) []entity.RecentOrder {
	if len(orders) > n {
		orders = orders[:n]
	}
	out := make([]entity.RecentOrder, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		f := EvaluateOrder(o, products)
		customer := o.CustomerEmail
		if customer == "" {
			customer = GuestCustomerKey
		}
		status := o.Status
		if status == "" {
			status = entity.DefaultOrderStatus
		}
		out = append(out, entity.RecentOrder{
			ID:       o.ID,
			Customer: customer,
			Amount:   currency.RoundWhole(f.Revenue),
			Cost:     currency.RoundWhole(f.Cost),
			Profit:   currency.RoundWhole(f.Profit),
			Status:   string(status),
			Currency: o.Currency.Normalize(),
			Date:     o.CreatedAt,
		})
	}
	return out
}

// Overview derives the headline figures and period-over-period changes.
func Overview(cur, prev Totals, counts Counts) entity.AnalyticsOverview {
	net := cur.NetProfit()
	return entity.AnalyticsOverview{
		TotalRevenue:   currency.RoundWhole(cur.Revenue),
		TotalCost:      currency.RoundWhole(cur.Cost),
		TotalProfit:    currency.RoundWhole(cur.GrossProfit),
		TotalExpenses:  currency.RoundWhole(cur.Expenses),
		NetProfit:      currency.RoundWhole(net),
		ProfitMargin:   Margin(net, cur.Revenue),
		TotalOrders:    cur.Orders,
		TotalProducts:  counts.Products,
		TotalCustomers: counts.Customers,
		TotalItemsSold: cur.ItemsSold,

		RevenueChange:   ChangePct(cur.Revenue, prev.Revenue),
		ProfitChange:    ChangePct(cur.GrossProfit, prev.GrossProfit),
		NetProfitChange: ChangePct(net, prev.NetProfit()),
		ExpensesChange:  ChangePct(cur.Expenses, prev.Expenses),
		OrdersChange:    changePctInt(cur.Orders, prev.Orders),
		ProductsChange:  0,
		CustomersChange: changePctInt(counts.NewCustomers, counts.PreviousNewCustomers),
		ItemsSoldChange: changePctInt(cur.ItemsSold, prev.ItemsSold),
	}
}

// Build renders the aggregated state into the dashboard payload.
func (a *Aggregator) Build(prev Totals, counts Counts, recent []entity.RecentOrder) *entity.AnalyticsData {
	if recent == nil {
		recent = []entity.RecentOrder{}
	}
	return &entity.AnalyticsData{
		Overview:           Overview(a.totals, prev, counts),
		RevenueData:        a.RevenueSeries(),
		OrderStatusData:    a.StatusBreakdown(),
		ExpensesByCategory: a.ExpenseBreakdown(),
		TopProducts:        a.TopProducts(TopN),
		RecentOrders:       recent,
		TopCustomers:       a.TopCustomers(TopN),
	}
}

package entity

import "time"

// AnalyticsData is the admin dashboard payload. Amounts are whole major units.
type AnalyticsData struct {
	Overview           AnalyticsOverview       `json:"overview"`
	RevenueData        []RevenueDataPoint      `json:"revenueData"`
	OrderStatusData    []BreakdownSlice        `json:"orderStatusData"`
	ExpensesByCategory []BreakdownSlice        `json:"expensesByCategory"`
	TopProducts        []TopProduct            `json:"topProducts"`
	RecentOrders       []RecentOrder           `json:"recentOrders"`
	TopCustomers       []CustomerProfitability `json:"topCustomers"`
}

type AnalyticsOverview struct {
	TotalRevenue   int64   `json:"totalRevenue"`
	TotalCost      int64   `json:"totalCost"`
	TotalProfit    int64   `json:"totalProfit"`
	TotalExpenses  int64   `json:"totalExpenses"`
	NetProfit      int64   `json:"netProfit"`
	ProfitMargin   float64 `json:"profitMargin"`
	TotalOrders    int64   `json:"totalOrders"`
	TotalProducts  int64   `json:"totalProducts"`
	TotalCustomers int64   `json:"totalCustomers"`
	TotalItemsSold int64   `json:"totalItemsSold"`

	RevenueChange   int64 `json:"revenueChange"`
	ProfitChange    int64 `json:"profitChange"`
	NetProfitChange int64 `json:"netProfitChange"`
	ExpensesChange  int64 `json:"expensesChange"`
	OrdersChange    int64 `json:"ordersChange"`
	ProductsChange  int64 `json:"productsChange"`
	CustomersChange int64 `json:"customersChange"`
	ItemsSoldChange int64 `json:"itemsSoldChange"`
}

type RevenueDataPoint struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
	Cost    int64  `json:"cost"`
	Profit  int64  `json:"profit"`
	Expense int64  `json:"expense"`
}

// BreakdownSlice is one slice of a status or category pie chart.
type BreakdownSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
	Color string `json:"color"`
}

type TopProduct struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Sales        int64   `json:"sales"`
	Revenue      int64   `json:"revenue"`
	Cost         int64   `json:"cost"`
	Profit       int64   `json:"profit"`
	ProfitMargin float64 `json:"profitMargin"`
}

type CustomerProfitability struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	TotalOrders       int64   `json:"totalOrders"`
	TotalRevenue      int64   `json:"totalRevenue"`
	TotalCost         int64   `json:"totalCost"`
	TotalProfit       int64   `json:"totalProfit"`
	ProfitMargin      float64 `json:"profitMargin"`
	AverageOrderValue int64   `json:"averageOrderValue"`
}

type RecentOrder struct {
	ID       string    `json:"id"`
	Customer string    `json:"customer"`
	Amount   int64     `json:"amount"`
	Cost     int64     `json:"cost"`
	Profit   int64     `json:"profit"`
	Status   string    `json:"status"`
	Currency Currency  `json:"currency"`
	Date     time.Time `json:"date"`
}

// TimeRange is a half-open interval [From, To).
type TimeRange struct {
	From time.Time
	To   time.Time
}

func (tr TimeRange) Contains(t time.Time) bool {
	return !t.Before(tr.From) && t.Before(tr.To)
}

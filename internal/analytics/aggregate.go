package analytics

import (
	"strings"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/currency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	"github.com/shopspring/decimal"
)

const (
	// DateKeyLayout is the day bucket format shared by orders and expenses.
	DateKeyLayout = "2006-01-02"

	UnknownProductKey  = "unknown"
	UnknownProductName = "Unknown"
	GuestCustomerKey   = "Guest"
)

// Totals are the top-line figures of one window in major units.
type Totals struct {
	Revenue     decimal.Decimal
	Cost        decimal.Decimal
	GrossProfit decimal.Decimal
	Expenses    decimal.Decimal
	Orders      int64
	ItemsSold   int64
}

// NetProfit is gross profit minus operational expenses.
func (t Totals) NetProfit() decimal.Decimal {
	return t.GrossProfit.Sub(t.Expenses)
}

func newTotals() Totals {
	return Totals{
		Revenue:     decimal.Zero,
		Cost:        decimal.Zero,
		GrossProfit: decimal.Zero,
		Expenses:    decimal.Zero,
	}
}

// OrderFigures are the financials of a single order in major units.
type OrderFigures struct {
	Revenue   decimal.Decimal
	Cost      decimal.Decimal
	Profit    decimal.Decimal
	ItemsSold int64
	Lines     []LineFigures
}

// LineFigures attribute item level revenue and cost to a product bucket.
type LineFigures struct {
	ProductKey  string
	ProductName string
	Quantity    int64
	Revenue     decimal.Decimal
	Cost        decimal.Decimal
}

// EvaluateOrder computes the figures of one order. Revenue is the charged
// amount; items only attribute cost. Items with a non-positive quantity
// contribute nothing.
func EvaluateOrder(o *entity.OrderFull, products map[string]entity.Product) OrderFigures {
	cur := o.Currency.Normalize()
	f := OrderFigures{
		Revenue: currency.ToMajorUnits(o.Amount),
		Cost:    decimal.Zero,
		Lines:   make([]LineFigures, 0, len(o.Items)),
	}
	for i := range o.Items {
		it := &o.Items[i]
		if it.Quantity <= 0 {
			continue
		}
		lf := LineFigures{
			ProductKey:  UnknownProductKey,
			ProductName: UnknownProductName,
			Quantity:    it.Quantity,
		}
		var product *entity.Product
		if !it.ProductID.IsZero() {
			lf.ProductKey = it.ProductID.String()
			if p, ok := products[lf.ProductKey]; ok {
				product = &p
				if p.Title != "" {
					lf.ProductName = p.Title
				}
			}
		}
		ua := currency.ResolveUnitAmounts(it.Snapshot(), product, cur)
		qty := decimal.NewFromInt(it.Quantity)
		lf.Revenue = ua.Price.Mul(qty)
		lf.Cost = ua.Cost.Mul(qty)

		f.Cost = f.Cost.Add(lf.Cost)
		f.ItemsSold += it.Quantity
		f.Lines = append(f.Lines, lf)
	}
	f.Profit = f.Revenue.Sub(f.Cost)
	return f
}

type dayMetrics struct {
	revenue decimal.Decimal
	cost    decimal.Decimal
	profit  decimal.Decimal
	expense decimal.Decimal
}

type productMetrics struct {
	id      string
	name    string
	sales   int64
	revenue decimal.Decimal
	cost    decimal.Decimal
	profit  decimal.Decimal
}

type customerMetrics struct {
	id      string
	name    string
	email   string
	orders  int64
	revenue decimal.Decimal
	cost    decimal.Decimal
	profit  decimal.Decimal
}

type statusCount struct {
	status entity.OrderStatus
	count  int64
}

type categoryTotal struct {
	category entity.ExpenseCategory
	amount   decimal.Decimal
}

// Aggregator accumulates one request's current window. Every keyed bucket
// remembers the order in which it was first seen, which is the tie-break
// for rankings.
type Aggregator struct {
	products map[string]entity.Product
	loc      *time.Location

	totals Totals

	days      map[string]*dayMetrics
	statuses  []*statusCount
	statusIdx map[entity.OrderStatus]int

	categories  []*categoryTotal
	categoryIdx map[entity.ExpenseCategory]int

	productList []*productMetrics
	productIdx  map[string]int

	customerList []*customerMetrics
	customerIdx  map[string]int
}

// NewAggregator creates an aggregator resolving product pricing from products.
// Order days are bucketed in loc.
func NewAggregator(products map[string]entity.Product, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{
		products:    products,
		loc:         loc,
		totals:      newTotals(),
		days:        make(map[string]*dayMetrics),
		statusIdx:   make(map[entity.OrderStatus]int),
		categoryIdx: make(map[entity.ExpenseCategory]int),
		productIdx:  make(map[string]int),
		customerIdx: make(map[string]int),
	}
}

// Totals returns the figures accumulated so far.
func (a *Aggregator) Totals() Totals {
	return a.totals
}

// AddOrder folds one current-window order into every view and returns its figures.
func (a *Aggregator) AddOrder(o *entity.OrderFull) OrderFigures {
	f := EvaluateOrder(o, a.products)

	a.totals.Revenue = a.totals.Revenue.Add(f.Revenue)
	a.totals.Cost = a.totals.Cost.Add(f.Cost)
	a.totals.GrossProfit = a.totals.GrossProfit.Add(f.Profit)
	a.totals.Orders++
	a.totals.ItemsSold += f.ItemsSold

	for _, lf := range f.Lines {
		pm := a.product(lf.ProductKey, lf.ProductName)
		pm.sales += lf.Quantity
		pm.revenue = pm.revenue.Add(lf.Revenue)
		pm.cost = pm.cost.Add(lf.Cost)
		pm.profit = pm.revenue.Sub(pm.cost)
	}

	d := a.day(o.CreatedAt.In(a.loc).Format(DateKeyLayout))
	d.revenue = d.revenue.Add(f.Revenue)
	d.cost = d.cost.Add(f.Cost)
	d.profit = d.profit.Add(f.Profit)

	status := o.Status
	if status == "" {
		status = entity.DefaultOrderStatus
	}
	a.status(status).count++

	cm := a.customer(o)
	cm.orders++
	cm.revenue = cm.revenue.Add(f.Revenue)
	cm.cost = cm.cost.Add(f.Cost)
	cm.profit = cm.profit.Add(f.Profit)

	return f
}

// AddExpense folds one current-window expense. Expense amounts are already in
// major units and their date is a calendar date, so it is keyed as stored.
func (a *Aggregator) AddExpense(e *entity.Expense) {
	a.totals.Expenses = a.totals.Expenses.Add(e.Amount)

	c := a.category(e.Category)
	c.amount = c.amount.Add(e.Amount)

	d := a.day(e.Date.Format(DateKeyLayout))
	d.expense = d.expense.Add(e.Amount)
}

// SummarizePrevious is the lighter pass over the comparison window: totals
// only, no per-entity or per-day breakdown.
func SummarizePrevious(orders []entity.OrderFull, expenses []entity.Expense, products map[string]entity.Product) Totals {
	t := newTotals()
	for i := range orders {
		f := EvaluateOrder(&orders[i], products)
		t.Revenue = t.Revenue.Add(f.Revenue)
		t.Cost = t.Cost.Add(f.Cost)
		t.GrossProfit = t.GrossProfit.Add(f.Profit)
		t.ItemsSold += f.ItemsSold
		t.Orders++
	}
	for _, e := range expenses {
		t.Expenses = t.Expenses.Add(e.Amount)
	}
	return t
}

func (a *Aggregator) day(key string) *dayMetrics {
	d, ok := a.days[key]
	if !ok {
		d = &dayMetrics{
			revenue: decimal.Zero,
			cost:    decimal.Zero,
			profit:  decimal.Zero,
			expense: decimal.Zero,
		}
		a.days[key] = d
	}
	return d
}

func (a *Aggregator) status(s entity.OrderStatus) *statusCount {
	if i, ok := a.statusIdx[s]; ok {
		return a.statuses[i]
	}
	sc := &statusCount{status: s}
	a.statusIdx[s] = len(a.statuses)
	a.statuses = append(a.statuses, sc)
	return sc
}

func (a *Aggregator) category(c entity.ExpenseCategory) *categoryTotal {
	if c == "" {
		c = entity.ExpenseOther
	}
	if i, ok := a.categoryIdx[c]; ok {
		return a.categories[i]
	}
	ct := &categoryTotal{category: c, amount: decimal.Zero}
	a.categoryIdx[c] = len(a.categories)
	a.categories = append(a.categories, ct)
	return ct
}

func (a *Aggregator) product(key, name string) *productMetrics {
	if i, ok := a.productIdx[key]; ok {
		return a.productList[i]
	}
	pm := &productMetrics{
		id:      key,
		name:    name,
		revenue: decimal.Zero,
		cost:    decimal.Zero,
		profit:  decimal.Zero,
	}
	a.productIdx[key] = len(a.productList)
	a.productList = append(a.productList, pm)
	return pm
}

func (a *Aggregator) customer(o *entity.OrderFull) *customerMetrics {
	key := customerKey(o)
	if i, ok := a.customerIdx[key]; ok {
		return a.customerList[i]
	}
	cm := &customerMetrics{
		id:      o.CustomerID.String(),
		name:    customerName(o.CustomerEmail),
		email:   o.CustomerEmail,
		revenue: decimal.Zero,
		cost:    decimal.Zero,
		profit:  decimal.Zero,
	}
	if cm.email == "" {
		cm.email = GuestCustomerKey
	}
	a.customerIdx[key] = len(a.customerList)
	a.customerList = append(a.customerList, cm)
	return cm
}

func customerKey(o *entity.OrderFull) string {
	switch {
	case !o.CustomerID.IsZero():
		return o.CustomerID.String()
	case o.CustomerEmail != "":
		return o.CustomerEmail
	default:
		return GuestCustomerKey
	}
}

func customerName(email string) string {
	if email == "" {
		return GuestCustomerKey
	}
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return email
	}
	return local
}

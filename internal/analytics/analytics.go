package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	// Timezone used to bucket orders by day, UTC when empty.
	Timezone string `mapstructure:"timezone"`
}

// Service builds the admin dashboard from orders, expenses and catalog counts.
type Service struct {
	rep   dependency.Repository
	cache dependency.AnalyticsCache
	loc   *time.Location
	now   func() time.Time
}

// New creates the analytics service. cache may be nil.
func New(c *Config, rep dependency.Repository, cache dependency.AnalyticsCache) (*Service, error) {
	loc := time.UTC
	if c != nil && c.Timezone != "" {
		l, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return nil, fmt.Errorf("can't load timezone %q: %w", c.Timezone, err)
		}
		loc = l
	}
	return &Service{
		rep:   rep,
		cache: cache,
		loc:   loc,
		now:   time.Now,
	}, nil
}

// GetAnalytics returns the dashboard for the last days days. Any failed read
// fails the whole call; no partial data is returned.
func (s *Service) GetAnalytics(ctx context.Context, days int) (*entity.AnalyticsData, error) {
	w, err := ComputeWindows(s.now(), days, s.loc)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		data, ok, err := s.cache.Get(ctx, days)
		if err != nil {
			slog.Default().WarnContext(ctx, "can't read analytics cache",
				slog.String("err", err.Error()),
			)
		}
		if ok {
			return data, nil
		}
	}

	var (
		curOrders, prevOrders     []entity.OrderFull
		curExpenses, prevExpenses []entity.Expense
		counts                    Counts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		curOrders, err = s.rep.Orders().GetOrdersCreated(gctx, w.Current)
		return wrap("current orders", err)
	})
	g.Go(func() (err error) {
		prevOrders, err = s.rep.Orders().GetOrdersCreated(gctx, w.Previous)
		return wrap("previous orders", err)
	})
	g.Go(func() (err error) {
		curExpenses, err = s.rep.Expenses().GetExpensesBetween(gctx, w.Current)
		return wrap("current expenses", err)
	})
	g.Go(func() (err error) {
		prevExpenses, err = s.rep.Expenses().GetExpensesBetween(gctx, w.Previous)
		return wrap("previous expenses", err)
	})
	g.Go(func() (err error) {
		counts.Products, err = s.rep.Products().CountProducts(gctx)
		return wrap("count products", err)
	})
	g.Go(func() (err error) {
		counts.Customers, err = s.rep.Customers().CountCustomers(gctx)
		return wrap("count customers", err)
	})
	g.Go(func() (err error) {
		counts.NewCustomers, err = s.rep.Customers().CountCustomersCreated(gctx, w.Current)
		return wrap("count new customers", err)
	})
	g.Go(func() (err error) {
		counts.PreviousNewCustomers, err = s.rep.Customers().CountCustomersCreated(gctx, w.Previous)
		return wrap("count previous new customers", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	products, err := LoadReferencedProducts(ctx, s.rep.Products(), curOrders, prevOrders)
	if err != nil {
		return nil, err
	}

	agg := NewAggregator(products, s.loc)
	for i := range curOrders {
		agg.AddOrder(&curOrders[i])
	}
	for i := range curExpenses {
		agg.AddExpense(&curExpenses[i])
	}
	prev := SummarizePrevious(prevOrders, prevExpenses, products)

	data := agg.Build(prev, counts, RecentOrders(curOrders, products, TopN))

	if s.cache != nil {
		if err := s.cache.Set(ctx, days, data); err != nil {
			slog.Default().WarnContext(ctx, "can't write analytics cache",
				slog.String("err", err.Error()),
			)
		}
	}
	return data, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jekabolt/storefront-ledger/config"
	"github.com/jekabolt/storefront-ledger/internal/analytics"
	httpapi "github.com/jekabolt/storefront-ledger/internal/api/http"
	"github.com/jekabolt/storefront-ledger/internal/apisrv/admin"
	"github.com/jekabolt/storefront-ledger/internal/apisrv/auth"
	"github.com/jekabolt/storefront-ledger/internal/apisrv/frontend"
	"github.com/jekabolt/storefront-ledger/internal/cache"
	"github.com/jekabolt/storefront-ledger/internal/checkout"
	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	"github.com/jekabolt/storefront-ledger/internal/mail"
	"github.com/jekabolt/storefront-ledger/internal/payment/paystack"
	"github.com/jekabolt/storefront-ledger/internal/payment/stripe"
	"github.com/jekabolt/storefront-ledger/internal/ratelimit"
	"github.com/jekabolt/storefront-ledger/internal/store"
	"github.com/jekabolt/storefront-ledger/internal/txreconcile"
)

const shutdownTimeout = 15 * time.Second

// App is the main application
type App struct {
	c         *config.Config
	db        dependency.Repository
	cache     dependency.AnalyticsCache
	mailer    dependency.Mailer
	guard     *ratelimit.Guard
	reconcile *txreconcile.Worker
	hs        *httpapi.Server

	done     chan struct{}
	stopOnce sync.Once
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start connects the store and providers and starts the http server and
// the background workers.
func (a *App) Start(ctx context.Context) error {
	slog.Default().InfoContext(ctx, "starting storefront ledger")

	db, err := store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to mysql", slog.String("err", err.Error()))
		return err
	}
	a.db = db

	a.cache, err = cache.New(ctx, &a.c.Redis)
	if err != nil {
		slog.Default().WarnContext(ctx, "analytics cache disabled", slog.String("err", err.Error()))
		a.cache = cache.Noop{}
	}

	if a.c.Mailer.APIKey != "" {
		a.mailer, err = mail.New(&a.c.Mailer, a.db.Mail())
		if err != nil {
			slog.Default().ErrorContext(ctx, "failed to create mailer", slog.String("err", err.Error()))
			return err
		}
	} else {
		slog.Default().WarnContext(ctx, "mailer is not configured, confirmation emails are disabled")
	}

	providers, reconcilers, err := a.payments(ctx)
	if err != nil {
		return err
	}

	an, err := analytics.New(&a.c.Analytics, a.db, a.cache)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to create analytics service", slog.String("err", err.Error()))
		return err
	}

	authS, err := auth.New(&a.c.Auth)
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to create auth server", slog.String("err", err.Error()))
		return err
	}

	a.guard = ratelimit.NewGuard(&a.c.RateLimit)
	adminS := admin.New(an)
	frontendS := frontend.New(a.guard, providers)

	a.hs = httpapi.New(&a.c.HTTP)
	if err = a.hs.Start(ctx, a.hs.Handler(adminS, frontendS, authS, a.db)); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start http server", slog.String("err", err.Error()))
		return err
	}
	if a.mailer != nil {
		if err := a.mailer.Start(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "cannot start mailer worker", slog.String("err", err.Error()))
			return err
		}
	}

	a.reconcile = txreconcile.New(&a.c.TxReconcile, a.db.Transactions(), reconcilers)
	if err := a.reconcile.Start(ctx); err != nil {
		slog.Default().ErrorContext(ctx, "cannot start transaction reconcile worker", slog.String("err", err.Error()))
		return err
	}

	go func() {
		<-a.hs.Done()
		a.Stop(context.Background())
	}()
	return nil
}

// payments builds one checkout service per configured provider. Paystack is
// always served; Stripe only with a secret key.
func (a *App) payments(ctx context.Context) (map[entity.PaymentMethod]*frontend.Provider, map[entity.PaymentMethod]txreconcile.Reconciler, error) {
	providers := make(map[entity.PaymentMethod]*frontend.Provider)
	reconcilers := make(map[entity.PaymentMethod]txreconcile.Reconciler)

	ps, err := paystack.New(&a.c.Paystack)
	if err != nil {
		return nil, nil, err
	}
	psCheckout, err := checkout.New(&a.c.Checkout, a.db, ps, a.mailer)
	if err != nil {
		return nil, nil, fmt.Errorf("paystack checkout: %w", err)
	}
	providers[entity.PaymentMethodPaystack] = &frontend.Provider{
		Checkout: psCheckout,
		Source:   ps,
		Webhooks: checkout.PaystackWebhooks(psCheckout),
	}
	reconcilers[entity.PaymentMethodPaystack] = psCheckout

	if a.c.Stripe.SecretKey != "" {
		sp, err := stripe.New(&a.c.Stripe)
		if err != nil {
			return nil, nil, err
		}
		spCheckout, err := checkout.New(&a.c.Checkout, a.db, sp, a.mailer)
		if err != nil {
			return nil, nil, fmt.Errorf("stripe checkout: %w", err)
		}
		providers[entity.PaymentMethodStripe] = &frontend.Provider{
			Checkout: spCheckout,
			Source:   sp,
			Webhooks: checkout.StripeWebhooks(spCheckout),
		}
		reconcilers[entity.PaymentMethodStripe] = spCheckout
	}

	for method, p := range providers {
		slog.Default().InfoContext(ctx, "payment provider enabled",
			slog.String("provider", string(method)),
			slog.Any("webhook_events", p.Webhooks.Events()),
		)
	}
	return providers, reconcilers, nil
}

// Stop stops the http server and the workers and closes the store. It is
// safe to call more than once.
func (a *App) Stop(ctx context.Context) {
	a.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if a.hs != nil {
			if err := a.hs.Stop(ctx); err != nil {
				slog.Default().ErrorContext(ctx, "http server shutdown", slog.String("err", err.Error()))
			}
		}
		if a.reconcile != nil {
			_ = a.reconcile.Stop()
		}
		if a.mailer != nil {
			_ = a.mailer.Stop()
		}
		if a.guard != nil {
			a.guard.Stop()
		}
		if a.cache != nil {
			_ = a.cache.Close()
		}
		if a.db != nil {
			a.db.Close()
		}
		close(a.done)
	})
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() <-chan struct{} {
	return a.done
}

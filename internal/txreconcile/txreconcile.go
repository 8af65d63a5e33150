// Package txreconcile re-verifies pending payment transactions that neither
// a webhook nor the storefront confirmed.
package txreconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/checkout"
	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	"golang.org/x/time/rate"
)

// Reconciler settles one pending transaction with its provider.
type Reconciler interface {
	ReconcilePending(ctx context.Context, tx *entity.Transaction, expired bool) (checkout.Outcome, error)
}

// Config holds configuration for the pending transaction reconcile worker.
type Config struct {
	WorkerInterval time.Duration `mapstructure:"worker_interval"`
	// StaleAfter is the age from which a pending transaction is re-verified.
	StaleAfter time.Duration `mapstructure:"stale_after"`
	// ExpireAfter is the age from which a failed or abandoned charge marks
	// the transaction failed.
	ExpireAfter time.Duration `mapstructure:"expire_after"`
	BatchSize   int           `mapstructure:"batch_size"`
	// VerifyRate caps provider verification calls per second.
	VerifyRate float64 `mapstructure:"verify_rate"`
}

// DefaultConfig returns default configuration values.
func DefaultConfig() Config {
	return Config{
		WorkerInterval: 5 * time.Minute,
		StaleAfter:     15 * time.Minute,
		ExpireAfter:    24 * time.Hour,
		BatchSize:      50,
		VerifyRate:     2,
	}
}

// Stats counts the outcomes of one reconcile round.
type Stats struct {
	Checked   int
	Completed int
	Failed    int
	Errors    int
}

// Worker periodically reconciles stale pending transactions, throttled
// per provider call.
type Worker struct {
	txs         dependency.Transactions
	reconcilers map[entity.PaymentMethod]Reconciler
	limiter     *rate.Limiter
	now         func() time.Time
	c           *Config
	ctx         context.Context
	stop        context.CancelFunc
}

// New creates a new reconcile worker. Transactions of a payment method
// without a reconciler are skipped.
func New(c *Config, txs dependency.Transactions, reconcilers map[entity.PaymentMethod]Reconciler) *Worker {
	if c == nil {
		dc := DefaultConfig()
		c = &dc
	}
	def := DefaultConfig()
	if c.WorkerInterval == 0 {
		c.WorkerInterval = def.WorkerInterval
	}
	if c.StaleAfter == 0 {
		c.StaleAfter = def.StaleAfter
	}
	if c.ExpireAfter == 0 {
		c.ExpireAfter = def.ExpireAfter
	}
	if c.BatchSize == 0 {
		c.BatchSize = def.BatchSize
	}
	if c.VerifyRate == 0 {
		c.VerifyRate = def.VerifyRate
	}
	return &Worker{
		txs:         txs,
		reconcilers: reconcilers,
		limiter:     rate.NewLimiter(rate.Limit(c.VerifyRate), 1),
		now:         time.Now,
		c:           c,
	}
}

// Start starts the worker.
func (w *Worker) Start(ctx context.Context) error {
	if w.ctx != nil && w.stop != nil {
		return fmt.Errorf("transaction reconcile worker already started")
	}
	w.ctx, w.stop = context.WithCancel(ctx)
	go w.worker(w.ctx)
	return nil
}

// Stop stops the worker gracefully.
func (w *Worker) Stop() error {
	if w.stop == nil {
		return fmt.Errorf("transaction reconcile worker already stopped or not started")
	}
	w.stop()
	w.stop = nil
	return nil
}

package txreconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/checkout"
)

func (w *Worker) worker(ctx context.Context) {
	ticker := time.NewTicker(w.c.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st, err := w.RunOnce(ctx)
			if err != nil {
				slog.Default().ErrorContext(ctx, "transaction reconcile: round failed",
					slog.String("err", err.Error()),
				)
				continue
			}
			if st.Checked > 0 {
				slog.Default().InfoContext(ctx, "transaction reconcile: round done",
					slog.Int("checked", st.Checked),
					slog.Int("completed", st.Completed),
					slog.Int("failed", st.Failed),
					slog.Int("errors", st.Errors),
				)
			}
		case <-ctx.Done():
			return
		}
	}
}

// RunOnce reconciles one batch of stale pending transactions.
func (w *Worker) RunOnce(ctx context.Context) (Stats, error) {
	var st Stats
	now := w.now()
	txs, err := w.txs.GetStalePendingTransactions(ctx, now.Add(-w.c.StaleAfter), w.c.BatchSize)
	if err != nil {
		return st, fmt.Errorf("can't get stale pending transactions: %w", err)
	}
	expiredBefore := now.Add(-w.c.ExpireAfter)

	for i := range txs {
		tx := &txs[i]
		r, ok := w.reconcilers[tx.PaymentMethod]
		if !ok {
			continue
		}
		if err := w.limiter.Wait(ctx); err != nil {
			return st, err
		}
		st.Checked++
		outcome, err := r.ReconcilePending(ctx, tx, tx.CreatedAt.Before(expiredBefore))
		if err != nil {
			st.Errors++
			slog.Default().ErrorContext(ctx, "transaction reconcile: can't reconcile",
				slog.String("reference", tx.Reference),
				slog.String("err", err.Error()),
			)
			continue
		}
		switch outcome {
		case checkout.OutcomeCompleted:
			st.Completed++
		case checkout.OutcomeFailed:
			st.Failed++
		}
	}
	return st, nil
}

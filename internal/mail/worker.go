package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
)

// Start starts the retry worker.
func (m *Mailer) Start(ctx context.Context) error {
	if m.ctx != nil && m.cancel != nil {
		return fmt.Errorf("mailer already started")
	}
	m.ctx, m.cancel = context.WithCancel(ctx)
	go m.worker(m.ctx)
	return nil
}

// Stop stops the retry worker.
func (m *Mailer) Stop() error {
	if m.cancel == nil {
		return fmt.Errorf("mailer already stopped or not started")
	}
	m.cancel()
	m.cancel = nil
	return nil
}

func (m *Mailer) worker(ctx context.Context) {
	ticker := time.NewTicker(m.c.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := m.handleUnsent(ctx); err != nil {
				slog.Default().ErrorContext(ctx, "can't handle unsent mails",
					slog.String("err", err.Error()),
				)
			}
		case <-ctx.Done():
			return
		}
	}
}

// handleUnsent retries queued emails and reports how many went out. It
// stops early once SendGrid rate limits.
func (m *Mailer) handleUnsent(ctx context.Context) (int, error) {
	unsent, err := m.mailRepository.GetAllUnsent(ctx, false)
	if err != nil {
		return 0, fmt.Errorf("can't get unsent mails: %w", err)
	}

	sent := 0
	for i := range unsent {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		email := &unsent[i]

		if err := m.sendRaw(ctx, email); err != nil {
			slog.Default().ErrorContext(ctx, "can't send mail",
				slog.Int("id", email.Id),
				slog.String("to", email.To),
				slog.String("err", err.Error()),
			)
			if errors.Is(err, gerr.MailApiLimitReached) {
				return sent, nil
			}
			if err := m.mailRepository.AddError(ctx, email.Id, err.Error()); err != nil {
				return sent, fmt.Errorf("can't log error for email %v: %w", email.Id, err)
			}
			continue
		}

		if err := m.mailRepository.UpdateSent(ctx, email.Id); err != nil {
			return sent, fmt.Errorf("can't update sent status for email %v: %w", email.Id, err)
		}
		sent++
	}
	return sent, nil
}

package checkout

import (
	"context"
	"fmt"

	"github.com/jekabolt/storefront-ledger/internal/entity"
)

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
	OutcomePending   Outcome = "pending"
)

// ReconcilePending asks the provider about a pending transaction nobody
// confirmed. Successful charges are completed through the same path as
// webhooks. Failed or abandoned charges are marked failed only once expired
// is set, the customer may still retry on the provider page before that.
func (s *Service) ReconcilePending(ctx context.Context, tx *entity.Transaction, expired bool) (Outcome, error) {
	p, err := s.provider.Verify(ctx, tx)
	if err != nil {
		return OutcomePending, fmt.Errorf("can't verify %s: %w", tx.Reference, err)
	}
	if p.Reference == "" {
		p.Reference = tx.Reference
	}

	switch {
	case p.Succeeded():
		if _, err := s.complete(ctx, p); err != nil {
			return OutcomePending, err
		}
		return OutcomeCompleted, nil
	case expired && p.IsTerminalFailure():
		if err := s.HandleFailure(ctx, p, fmt.Sprintf("provider reported %s", p.Status)); err != nil {
			return OutcomePending, err
		}
		return OutcomeFailed, nil
	default:
		return OutcomePending, nil
	}
}

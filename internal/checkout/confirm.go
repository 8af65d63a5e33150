package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jekabolt/storefront-ledger/internal/dto"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
)

const (
	msgConfirmedViaWebhook = "Payment confirmed successfully (via webhook)"
	msgOrderProcessed      = "Order processed successfully"
)

// ConfirmOrder is the storefront's confirmation after the provider redirect.
// A transaction that already has its order is answered from the store;
// otherwise the charge is verified with the provider before the order is
// created.
func (s *Service) ConfirmOrder(ctx context.Context, reference string) (*dto.ConfirmOrderResponse, error) {
	if reference == "" {
		return nil, gerr.Validation("transaction reference is required")
	}

	tx, err := s.repo.Transactions().GetTransactionByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if tx.IsCompleted() {
		return &dto.ConfirmOrderResponse{
			Message:       msgConfirmedViaWebhook,
			OrderID:       tx.OrderID.String(),
			TransactionID: tx.ID,
		}, nil
	}
	if tx.Status == entity.TransactionFailed {
		return nil, gerr.TransactionFailed
	}

	p, err := s.provider.Verify(ctx, tx)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't verify transaction",
			slog.String("reference", reference),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	if !p.Succeeded() {
		return nil, gerr.TransactionNotSuccesful
	}
	if p.Reference == "" {
		p.Reference = reference
	}

	comp, err := s.complete(ctx, p)
	if err != nil {
		return nil, err
	}
	msg := msgOrderProcessed
	if !comp.Created {
		msg = msgConfirmedViaWebhook
	}
	return &dto.ConfirmOrderResponse{
		Message:       msg,
		OrderID:       comp.OrderID,
		TransactionID: comp.TransactionID,
	}, nil
}

// HandleSuccess completes the transaction behind a signed success event.
// The event is authoritative, the provider is not asked again.
func (s *Service) HandleSuccess(ctx context.Context, p *entity.ProviderPayment) (*entity.Completion, error) {
	if !p.Succeeded() {
		return nil, gerr.TransactionNotSuccesful
	}
	return s.complete(ctx, p)
}

// HandleFailure marks the transaction behind a failure event as failed.
// Completed transactions are left untouched.
func (s *Service) HandleFailure(ctx context.Context, p *entity.ProviderPayment, reason string) error {
	failed, err := s.repo.Transactions().FailTransaction(ctx, p.Reference, reason)
	if err != nil {
		return fmt.Errorf("can't fail transaction %s: %w", p.Reference, err)
	}
	if !failed {
		slog.Default().InfoContext(ctx, "failure event for settled transaction ignored",
			slog.String("reference", p.Reference),
		)
	}
	return nil
}

// complete runs the order creation for one reference at a time. Once started
// it is not interrupted by the caller going away.
func (s *Service) complete(ctx context.Context, p *entity.ProviderPayment) (*entity.Completion, error) {
	unlock := s.locks.Lock(p.Reference)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.c.CompleteTimeout)
	defer cancel()

	comp, err := s.repo.Transactions().CompleteTransaction(ctx, p.Reference, p)
	if errors.Is(err, gerr.TransactionConflict) {
		// another instance completed it between our read and write
		comp, err = s.existingCompletion(ctx, p.Reference)
	}
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't complete transaction",
			slog.String("reference", p.Reference),
			slog.String("err", err.Error()),
		)
		return nil, err
	}

	if comp.Created {
		slog.Default().InfoContext(ctx, "order created",
			slog.String("reference", p.Reference),
			slog.String("order_id", comp.OrderID),
		)
		s.sendConfirmation(ctx, comp.Order)
	}
	return comp, nil
}

func (s *Service) existingCompletion(ctx context.Context, reference string) (*entity.Completion, error) {
	tx, err := s.repo.Transactions().GetTransactionByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !tx.IsCompleted() {
		return nil, gerr.TransactionConflict
	}
	return &entity.Completion{
		OrderID:       tx.OrderID.String(),
		TransactionID: tx.ID,
	}, nil
}

// sendConfirmation queues the order confirmation email. Failures are logged
// only, the order stands without it.
func (s *Service) sendConfirmation(ctx context.Context, of *entity.OrderFull) {
	if s.mailer == nil || of == nil || of.CustomerEmail == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.c.MailTimeout)
	defer cancel()

	ids := make([]string, 0, len(of.Items))
	for _, it := range of.Items {
		ids = append(ids, it.ProductID.String())
	}
	titles := make(map[string]string, len(ids))
	products, err := s.repo.Products().GetProductsByIDs(ctx, ids)
	if err != nil {
		slog.Default().WarnContext(ctx, "can't get product titles for confirmation email",
			slog.String("order_id", of.ID),
			slog.String("err", err.Error()),
		)
	}
	for id, p := range products {
		titles[id] = p.Title
	}

	if err := s.mailer.SendOrderConfirmation(ctx, of.CustomerEmail, dto.OrderFullToOrderConfirmed(of, titles)); err != nil {
		slog.Default().ErrorContext(ctx, "can't send order confirmation",
			slog.String("order_id", of.ID),
			slog.String("err", err.Error()),
		)
	}
}

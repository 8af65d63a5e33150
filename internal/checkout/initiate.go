package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	v "github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/jekabolt/storefront-ledger/internal/currency"
	"github.com/jekabolt/storefront-ledger/internal/dto"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
	"golang.org/x/sync/errgroup"
)

const msgPaymentInitiated = "Payment initiated successfully"

// NewReference returns a unique transaction reference shared with the provider.
func NewReference(now time.Time) string {
	frag := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("tx_%d_%s", now.UnixMilli(), frag)
}

// Initiate freezes the cart into a pending transaction and opens a provider
// checkout for it. Both happen concurrently; a failed provider call removes
// the transaction again.
func (s *Service) Initiate(ctx context.Context, req *dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error) {
	if req == nil {
		return nil, gerr.Validation("request is required")
	}
	if err := s.provider.Validate(); err != nil {
		return nil, err
	}
	if _, err := v.ValidateStruct(req); err != nil {
		slog.Default().ErrorContext(ctx, "validation initiate payment request failed",
			slog.String("err", err.Error()),
		)
		return nil, gerr.Validation(err.Error())
	}
	cur := entity.Currency(req.Currency).Normalize()
	if !cur.IsSupported() {
		return nil, gerr.UnsupportedCurrency
	}

	cart, err := s.repo.Carts().GetCartByID(ctx, req.CartID)
	if err != nil {
		return nil, err
	}
	if cart.IsPurchased() {
		return nil, gerr.CartPurchased
	}
	if len(cart.Items) == 0 {
		return nil, gerr.CartEmpty
	}

	items, err := s.snapshotCart(ctx, cart, cur)
	if err != nil {
		return nil, err
	}
	amount := items.Subtotal()
	if amount <= 0 {
		return nil, gerr.Validation("valid amount is required")
	}
	if err := currency.ValidateMinimum(amount, cur); err != nil {
		return nil, gerr.Validation(err.Error())
	}

	reference := NewReference(s.now())
	ti := &entity.TransactionInsert{
		Reference:       reference,
		PaymentMethod:   s.provider.Name(),
		CartID:          entity.Ref(cart.ID),
		Amount:          amount,
		Currency:        cur,
		CustomerID:      cart.CustomerID,
		CustomerEmail:   req.CustomerEmail,
		Items:           items,
		BillingAddress:  req.BillingAddress,
		ShippingAddress: req.ShippingAddress,
	}
	sr := &entity.PaymentSessionRequest{
		Reference:       reference,
		Email:           req.CustomerEmail,
		Amount:          amount,
		Currency:        cur,
		CartID:          entity.Ref(cart.ID),
		Items:           items,
		ShippingAddress: req.ShippingAddress,
	}

	var (
		g          errgroup.Group
		session    *entity.PaymentSession
		tx         *entity.Transaction
		sessionErr error
	)
	// The provider error is kept apart from the group error: a failed
	// session must still see whether the transaction was stored.
	g.Go(func() error {
		session, sessionErr = s.provider.Initialize(ctx, sr)
		return nil
	})
	g.Go(func() error {
		var err error
		tx, err = s.repo.Transactions().AddTransaction(ctx, ti)
		return err
	})
	txErr := g.Wait()

	if sessionErr != nil {
		slog.Default().ErrorContext(ctx, "can't initialize payment",
			slog.String("provider", string(s.provider.Name())),
			slog.String("reference", reference),
			slog.String("err", sessionErr.Error()),
		)
		if tx != nil {
			s.discard(ctx, tx)
		}
		return nil, sessionErr
	}
	if txErr != nil {
		slog.Default().ErrorContext(ctx, "can't add transaction",
			slog.String("reference", reference),
			slog.String("err", txErr.Error()),
		)
		return nil, fmt.Errorf("can't add transaction: %w", txErr)
	}

	if err := s.repo.Transactions().SetTransactionSession(ctx, tx.ID, session); err != nil {
		slog.Default().ErrorContext(ctx, "can't store payment session",
			slog.String("reference", reference),
			slog.String("err", err.Error()),
		)
		s.discard(ctx, tx)
		return nil, fmt.Errorf("can't store payment session: %w", err)
	}

	return &dto.InitiatePaymentResponse{
		Message:          msgPaymentInitiated,
		Reference:        reference,
		AccessCode:       session.AccessCode,
		AuthorizationURL: session.AuthorizationURL,
	}, nil
}

// snapshotCart prices every cart line in cur with the live product price
// and cost of this instant.
func (s *Service) snapshotCart(ctx context.Context, cart *entity.Cart, cur entity.Currency) (entity.TransactionItems, error) {
	ids := make([]string, 0, len(cart.Items))
	for _, ci := range cart.Items {
		ids = append(ids, ci.ProductID.String())
	}
	products, err := s.repo.Products().GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("can't get cart products: %w", err)
	}

	items := make(entity.TransactionItems, 0, len(cart.Items))
	for _, ci := range cart.Items {
		if ci.Quantity <= 0 {
			return nil, gerr.Validation(fmt.Sprintf("invalid quantity for product %s", ci.ProductID))
		}
		p, ok := products[ci.ProductID.String()]
		if !ok {
			return nil, gerr.Validation(fmt.Sprintf("product %s is not available", ci.ProductID))
		}
		snap, err := currency.Freeze(&p, cur)
		if err != nil {
			return nil, gerr.Validation(err.Error())
		}
		items = append(items, entity.TransactionItem{
			Product:      ci.ProductID,
			Variant:      ci.VariantID,
			Quantity:     ci.Quantity,
			UnitSnapshot: snap,
		})
	}
	return items, nil
}

// discard deletes a transaction whose checkout could not be opened.
func (s *Service) discard(ctx context.Context, tx *entity.Transaction) {
	if err := s.repo.Transactions().DeleteTransaction(context.WithoutCancel(ctx), tx.ID); err != nil {
		slog.Default().ErrorContext(ctx, "can't delete orphaned transaction",
			slog.String("reference", tx.Reference),
			slog.String("err", err.Error()),
		)
	}
}

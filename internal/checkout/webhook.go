package checkout

import (
	"context"
	"encoding/json"

	"github.com/jekabolt/storefront-ledger/internal/payment"
	"github.com/jekabolt/storefront-ledger/internal/payment/paystack"
	"github.com/jekabolt/storefront-ledger/internal/payment/stripe"
)

// PaystackWebhooks registers the Paystack events the service reacts to.
func PaystackWebhooks(s *Service) *payment.Registry {
	reg := payment.NewRegistry()
	reg.Handle(paystack.EventChargeSuccess, func(ctx context.Context, data json.RawMessage) error {
		p, err := paystack.ParseCharge(data)
		if err != nil {
			return err
		}
		_, err = s.HandleSuccess(ctx, p)
		return err
	})
	reg.Handle(paystack.EventChargeFailed, func(ctx context.Context, data json.RawMessage) error {
		p, err := paystack.ParseCharge(data)
		if err != nil {
			return err
		}
		return s.HandleFailure(ctx, p, "charge failed")
	})
	return reg
}

// StripeWebhooks registers the payment intent events the service reacts to.
func StripeWebhooks(s *Service) *payment.Registry {
	reg := payment.NewRegistry()
	reg.Handle(stripe.EventPaymentIntentSucceeded, func(ctx context.Context, data json.RawMessage) error {
		p, err := stripe.ParsePaymentIntent(data)
		if err != nil {
			return err
		}
		_, err = s.HandleSuccess(ctx, p)
		return err
	})
	fail := func(reason string) payment.EventHandler {
		return func(ctx context.Context, data json.RawMessage) error {
			p, err := stripe.ParsePaymentIntent(data)
			if err != nil {
				return err
			}
			return s.HandleFailure(ctx, p, reason)
		}
	}
	reg.Handle(stripe.EventPaymentIntentFailed, fail("payment failed"))
	reg.Handle(stripe.EventPaymentIntentCanceled, fail("payment intent canceled"))
	return reg
}

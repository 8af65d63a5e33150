package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
	"github.com/jekabolt/storefront-ledger/internal/payment"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

const (
	EventPaymentIntentSucceeded = "payment_intent.succeeded"
	EventPaymentIntentFailed    = "payment_intent.payment_failed"
	EventPaymentIntentCanceled  = "payment_intent.canceled"

	// SignatureHeader carries the timestamped Stripe signature.
	SignatureHeader = "Stripe-Signature"

	referenceMetadataKey = "reference"
	cartMetadataKey      = "cart_id"
)

type Config struct {
	SecretKey     string        `mapstructure:"secret_key"`
	PubKey        string        `mapstructure:"pub_key"`
	WebhookSecret string        `mapstructure:"webhook_secret"`
	BaseURL       string        `mapstructure:"base_url"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`
}

// Processor opens Stripe payment intents and reads them back.
type Processor struct {
	c            *Config
	stripeClient *client.API
}

func New(c *Config) (*Processor, error) {
	if c == nil {
		return nil, errors.New("stripe config is nil")
	}
	timeout := c.HTTPTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	// Payment intent creation is never retried blindly, not even by the SDK.
	cfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		MaxNetworkRetries: stripe.Int64(0),
	}
	if c.BaseURL != "" {
		cfg.URL = stripe.String(strings.TrimRight(c.BaseURL, "/"))
	}
	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, cfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, cfg),
	}
	return &Processor{
		c:            c,
		stripeClient: client.New(c.SecretKey, backends),
	}, nil
}

func (p *Processor) Name() entity.PaymentMethod {
	return entity.PaymentMethodStripe
}

func (p *Processor) Validate() error {
	if p.c.SecretKey == "" {
		return gerr.ProviderNotConfigured
	}
	return nil
}

// Initialize creates a payment intent carrying the transaction reference in
// its metadata. The client secret is returned as the access code.
func (p *Processor) Initialize(ctx context.Context, req *entity.PaymentSessionRequest) (*entity.PaymentSession, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(req.Amount),
		Currency:     stripe.String(strings.ToLower(req.Currency.Normalize().String())),
		ReceiptEmail: stripe.String(req.Email),
		Description:  stripe.String(fmt.Sprintf("cart %s", req.CartID)),
		Metadata: map[string]string{
			referenceMetadataKey: req.Reference,
			cartMetadataKey:      req.CartID.String(),
		},
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.Reference)
	if a := req.ShippingAddress; a != nil {
		params.Shipping = &stripe.ShippingDetailsParams{
			Name: stripe.String(a.Name),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(a.Line1),
				Line2:      stripe.String(a.Line2),
				City:       stripe.String(a.City),
				State:      stripe.String(a.State),
				PostalCode: stripe.String(a.PostalCode),
				Country:    stripe.String(a.Country),
			},
		}
	}

	pi, err := p.stripeClient.PaymentIntents.New(params)
	if err != nil {
		return nil, classify("create payment intent", err)
	}
	return &entity.PaymentSession{
		Reference:             req.Reference,
		AccessCode:            pi.ClientSecret,
		ProviderTransactionID: pi.ID,
	}, nil
}

// Verify reads the payment intent recorded on the transaction.
func (p *Processor) Verify(ctx context.Context, tx *entity.Transaction) (*entity.ProviderPayment, error) {
	if p.c.SecretKey == "" {
		return nil, gerr.ProviderNotConfigured
	}
	if tx.ProviderTransactionID == "" {
		return nil, fmt.Errorf("%w: no payment intent for %s", gerr.TransactionNotSuccesful, tx.Reference)
	}
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := p.stripeClient.PaymentIntents.Get(trimSecret(tx.ProviderTransactionID), params)
	if err != nil {
		return nil, classify("get payment intent", err)
	}
	pp := paymentFromIntent(pi)
	if pp.Reference == "" {
		pp.Reference = tx.Reference
	}
	return pp, nil
}

// ParseWebhook verifies the Stripe-Signature header and returns the event
// with its data object.
func (p *Processor) ParseWebhook(body []byte, header http.Header) (*payment.Webhook, error) {
	if p.c.WebhookSecret == "" {
		return nil, gerr.InvalidSignature
	}
	ev, err := webhook.ConstructEventWithOptions(body, header.Get(SignatureHeader), p.c.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, gerr.InvalidSignature
	}
	wh := &payment.Webhook{Event: string(ev.Type)}
	if ev.Data != nil {
		wh.Data = ev.Data.Raw
	}
	return wh, nil
}

// ParsePaymentIntent decodes the data object of a payment_intent event.
func ParsePaymentIntent(data json.RawMessage) (*entity.ProviderPayment, error) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(data, &pi); err != nil {
		return nil, err
	}
	pp := paymentFromIntent(&pi)
	if pp.Reference == "" {
		return nil, fmt.Errorf("payment intent %s has no reference", pi.ID)
	}
	return pp, nil
}

func paymentFromIntent(pi *stripe.PaymentIntent) *entity.ProviderPayment {
	pp := &entity.ProviderPayment{
		Reference:             pi.Metadata[referenceMetadataKey],
		ProviderTransactionID: pi.ID,
		Status:                providerStatus(pi.Status),
		Amount:                pi.Amount,
		Currency:              entity.Currency(strings.ToUpper(string(pi.Currency))),
		CustomerEmail:         pi.ReceiptEmail,
	}
	if len(pi.PaymentMethodTypes) > 0 {
		pp.Channel = pi.PaymentMethodTypes[0]
	}
	if pi.Customer != nil {
		pp.CustomerCode = pi.Customer.ID
	}
	switch {
	case pi.LatestCharge != nil && pi.LatestCharge.Created > 0:
		pp.PaidAt = time.Unix(pi.LatestCharge.Created, 0).UTC()
	case pp.Status == entity.ProviderPaymentSuccess && pi.Created > 0:
		pp.PaidAt = time.Unix(pi.Created, 0).UTC()
	}
	return pp
}

func providerStatus(s stripe.PaymentIntentStatus) entity.ProviderPaymentStatus {
	switch s {
	case stripe.PaymentIntentStatusSucceeded:
		return entity.ProviderPaymentSuccess
	case stripe.PaymentIntentStatusCanceled:
		return entity.ProviderPaymentAbandoned
	default:
		return entity.ProviderPaymentPending
	}
}

// classify maps SDK errors: card and request errors are the customer's to
// fix, everything else means Stripe could not be reached.
func classify(op string, err error) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		switch se.Type {
		case stripe.ErrorTypeCard, stripe.ErrorTypeInvalidRequest, stripe.ErrorTypeIdempotency:
			return gerr.ProviderRejected("Stripe "+op+" failed", se.Msg)
		}
	}
	return fmt.Errorf("%w: %s: %v", gerr.ProviderUnavailable, op, err)
}

// trimSecret turns a client secret back into the payment intent id.
func trimSecret(s string) string {
	index := strings.Index(s, "_secret_")
	if index == -1 {
		return s
	}
	return s[:index]
}

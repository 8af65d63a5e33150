package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
)

const (
	DefaultBaseURL = "https://api.paystack.co"

	initializePath = "/transaction/initialize"
	verifyPath     = "/transaction/verify/"
)

type Config struct {
	SecretKey string `mapstructure:"secret_key"`
	PublicKey string `mapstructure:"public_key"`
	// WebhookSecret signs webhook deliveries; Paystack uses the secret key
	// when it is empty.
	WebhookSecret string        `mapstructure:"webhook_secret"`
	BaseURL       string        `mapstructure:"base_url"`
	CallbackURL   string        `mapstructure:"callback_url"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
}

// Client talks to the Paystack transaction API.
type Client struct {
	c          *Config
	baseURL    string
	retryDelay time.Duration
	client     *http.Client
}

func New(c *Config) (*Client, error) {
	if c == nil {
		return nil, errors.New("paystack config is nil")
	}
	timeout := c.HTTPTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	retryDelay := c.RetryDelay
	if retryDelay == 0 {
		retryDelay = 500 * time.Millisecond
	}
	baseURL := strings.TrimRight(c.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		c:          c,
		baseURL:    baseURL,
		retryDelay: retryDelay,
		client:     &http.Client{Timeout: timeout},
	}, nil
}

func (p *Client) Name() entity.PaymentMethod {
	return entity.PaymentMethodPaystack
}

func (p *Client) webhookSecret() string {
	if p.c.WebhookSecret != "" {
		return p.c.WebhookSecret
	}
	return p.c.SecretKey
}

func (p *Client) Validate() error {
	if p.c.SecretKey == "" {
		return gerr.ProviderNotConfigured
	}
	return nil
}

// Initialize opens a Paystack checkout for the request. The call creates
// remote state, so it is made exactly once.
func (p *Client) Initialize(ctx context.Context, req *entity.PaymentSessionRequest) (*entity.PaymentSession, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	snapshot, err := json.Marshal(req.Items)
	if err != nil {
		return nil, fmt.Errorf("can't marshal cart snapshot: %w", err)
	}
	shipping, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("can't marshal shipping address: %w", err)
	}

	body := initializeRequest{
		Email:       req.Email,
		Amount:      req.Amount,
		Currency:    req.Currency.Normalize().String(),
		Reference:   req.Reference,
		CallbackURL: p.c.CallbackURL,
		Metadata: initializeMetadata{
			CartID:            req.CartID.String(),
			CartItemsSnapshot: string(snapshot),
			ShippingAddress:   string(shipping),
			CustomFields: []customField{{
				DisplayName:  "Cart ID",
				VariableName: "cart_id",
				Value:        req.CartID.String(),
			}},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("can't marshal initialize request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+initializePath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create POST request: %w", err)
	}

	var resp envelope[initializeData]
	status, err := p.do(httpReq, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: initialize: %v", gerr.ProviderUnavailable, err)
	}
	if status != http.StatusOK || !resp.Status {
		slog.Default().ErrorContext(ctx, "paystack initialization failed",
			slog.Int("status", status),
			slog.String("message", resp.Message),
			slog.String("reference", req.Reference),
		)
		return nil, gerr.ProviderRejected("Paystack initialization failed", resp.Message)
	}

	return &entity.PaymentSession{
		Reference:        req.Reference,
		AuthorizationURL: resp.Data.AuthorizationURL,
		AccessCode:       resp.Data.AccessCode,
	}, nil
}

// Verify fetches the charge behind the transaction reference. Verification
// is read-only and is retried once on transport errors and 5xx answers.
func (p *Client) Verify(ctx context.Context, tx *entity.Transaction) (*entity.ProviderPayment, error) {
	if p.c.SecretKey == "" {
		return nil, gerr.ProviderNotConfigured
	}
	endpoint := p.baseURL + verifyPath + url.PathEscape(tx.Reference)

	var (
		resp   envelope[chargeData]
		status int
		err    error
	)
	for attempt := 1; attempt <= 2; attempt++ {
		var httpReq *http.Request
		httpReq, err = http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create GET request: %w", err)
		}
		resp = envelope[chargeData]{}
		status, err = p.do(httpReq, &resp)
		if err == nil && status < http.StatusInternalServerError {
			break
		}
		if attempt == 2 {
			break
		}
		slog.Default().WarnContext(ctx, "paystack verify failed, retrying",
			slog.String("reference", tx.Reference),
			slog.Int("status", status),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.retryDelay):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: verify: %v", gerr.ProviderUnavailable, err)
	}
	if status >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: verify: status %d", gerr.ProviderUnavailable, status)
	}
	if status != http.StatusOK || !resp.Status {
		return nil, fmt.Errorf("%w: %s", gerr.TransactionNotSuccesful, resp.Message)
	}
	return resp.Data.toProviderPayment(), nil
}

// do sends the request with the secret key and decodes the JSON answer into
// out. Non-2xx answers are decoded too, Paystack explains them in "message".
func (p *Client) do(req *http.Request, out any) (int, error) {
	req.Header.Set("Authorization", "Bearer "+p.c.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil && resp.StatusCode < http.StatusInternalServerError {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

package frontend

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jekabolt/storefront-ledger/internal/apisrv/response"
	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/dto"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
	"github.com/jekabolt/storefront-ledger/internal/middleware"
	"github.com/jekabolt/storefront-ledger/internal/payment"
	"github.com/jekabolt/storefront-ledger/internal/ratelimit"
)

const (
	msgInitiateFailed = "Failed to initiate payment"
	msgConfirmFailed  = "Failed to confirm order"

	maxWebhookBytes = 1 << 20
)

// Provider bundles what the storefront routes need from one payment provider.
type Provider struct {
	Checkout dependency.Checkout
	Source   payment.WebhookSource
	Webhooks *payment.Registry
}

type providerKey struct{}

// Server implements the storefront payment handlers.
type Server struct {
	providers map[entity.PaymentMethod]*Provider
	guard     *ratelimit.Guard
}

// New creates the payment handlers. guard may be nil to disable rate limits.
func New(guard *ratelimit.Guard, providers map[entity.PaymentMethod]*Provider) *Server {
	return &Server{
		providers: providers,
		guard:     guard,
	}
}

// Routes mounts /{provider}/initiate, /{provider}/confirm-order and
// /{provider}/webhooks.
func (s *Server) Routes(r chi.Router) {
	r.Route("/{provider}", func(r chi.Router) {
		r.Use(s.providerCtx)
		r.Post("/initiate", s.Initiate)
		r.Post("/confirm-order", s.ConfirmOrder)
		r.Post("/webhooks", s.Webhook)
	})
}

func (s *Server) providerCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := entity.PaymentMethod(strings.ToLower(chi.URLParam(r, "provider")))
		p, ok := s.providers[name]
		if !ok {
			response.Error(w, r, gerr.UnknownProvider, "")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), providerKey{}, p)))
	})
}

func providerFrom(ctx context.Context) *Provider {
	p, _ := ctx.Value(providerKey{}).(*Provider)
	return p
}

func (s *Server) Initiate(w http.ResponseWriter, r *http.Request) {
	var req dto.InitiatePaymentRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Error(w, r, err, msgInitiateFailed)
		return
	}
	if s.guard != nil {
		if err := s.guard.CheckInitiate(middleware.ClientFrom(r.Context()).IP, req.CustomerEmail); err != nil {
			response.Error(w, r, err, msgInitiateFailed)
			return
		}
	}
	resp, err := providerFrom(r.Context()).Checkout.Initiate(r.Context(), &req)
	if err != nil {
		response.Error(w, r, err, msgInitiateFailed)
		return
	}
	response.JSON(w, http.StatusOK, resp)
}

func (s *Server) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.ConfirmOrderRequest
	if err := response.Decode(w, r, &req); err != nil {
		response.Error(w, r, err, msgConfirmFailed)
		return
	}
	if s.guard != nil {
		if err := s.guard.CheckConfirm(middleware.ClientFrom(r.Context()).IP); err != nil {
			response.Error(w, r, err, msgConfirmFailed)
			return
		}
	}
	resp, err := providerFrom(r.Context()).Checkout.ConfirmOrder(r.Context(), req.Reference)
	if err != nil {
		response.Error(w, r, err, msgConfirmFailed)
		return
	}
	response.JSON(w, http.StatusOK, resp)
}

// Webhook verifies the provider signature and dispatches the event. Once the
// signature checks out the provider always gets 200, handler failures are
// logged and left to confirmation or the reconcile worker.
func (s *Server) Webhook(w http.ResponseWriter, r *http.Request) {
	p := providerFrom(r.Context())
	if p.Source == nil || p.Webhooks == nil {
		response.Error(w, r, gerr.ProviderNotConfigured, "")
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		response.Error(w, r, gerr.Validation("invalid request body"), "")
		return
	}
	wh, err := p.Source.ParseWebhook(body, r.Header)
	if err != nil {
		slog.Default().WarnContext(r.Context(), "webhook rejected",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
		response.Error(w, r, gerr.InvalidSignature, "")
		return
	}

	ctx := context.WithoutCancel(r.Context())
	handled, err := p.Webhooks.Dispatch(ctx, wh.Event, wh.Data)
	switch {
	case err != nil:
		slog.Default().ErrorContext(ctx, "webhook handler failed",
			slog.String("event", wh.Event),
			slog.String("err", err.Error()),
		)
	case !handled:
		slog.Default().DebugContext(ctx, "webhook event ignored",
			slog.String("event", wh.Event),
		)
	}
	response.JSON(w, http.StatusOK, dto.WebhookResponse{Received: true})
}

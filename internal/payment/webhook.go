// Package payment holds what the payment provider adapters share.
package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
)

// EventHandler processes the data object of one verified provider event.
type EventHandler func(ctx context.Context, data json.RawMessage) error

// Registry dispatches verified webhook events by provider event name,
// e.g. "charge.success".
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]EventHandler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]EventHandler)}
}

// Handle registers h for event, replacing any previous handler.
func (r *Registry) Handle(event string, h EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[event] = h
}

// Dispatch runs the handler registered for event. Events without a handler
// are reported as not handled and are not an error.
func (r *Registry) Dispatch(ctx context.Context, event string, data json.RawMessage) (bool, error) {
	r.mu.RLock()
	h, ok := r.handlers[event]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, h(ctx, data)
}

// Events lists the registered event names in sorted order.
func (r *Registry) Events() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.handlers))
	for e := range r.handlers {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Webhook is a provider event whose signature has been verified.
type Webhook struct {
	Event string
	Data  json.RawMessage
}

// WebhookSource is implemented by providers that push signed events.
type WebhookSource interface {
	ParseWebhook(body []byte, header http.Header) (*Webhook, error)
}

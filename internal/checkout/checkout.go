// Package checkout turns carts into pending payment transactions and
// completed payments into orders, exactly once per transaction.
package checkout

import (
	"errors"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/dependency"
)

type Config struct {
	// CompleteTimeout bounds order creation once it started. The caller's
	// cancellation does not interrupt it.
	CompleteTimeout time.Duration `mapstructure:"complete_timeout"`
	// MailTimeout bounds the confirmation email enqueue.
	MailTimeout time.Duration `mapstructure:"mail_timeout"`
}

func DefaultConfig() Config {
	return Config{
		CompleteTimeout: 30 * time.Second,
		MailTimeout:     10 * time.Second,
	}
}

// Service runs payment initiation and reconciliation for one provider.
type Service struct {
	c        *Config
	repo     dependency.Repository
	provider dependency.PaymentProvider
	mailer   dependency.Mailer
	locks    *keyLock
	now      func() time.Time
}

// New creates a checkout service. mailer may be nil, confirmation emails are
// skipped then.
func New(c *Config, repo dependency.Repository, provider dependency.PaymentProvider, mailer dependency.Mailer) (*Service, error) {
	if repo == nil {
		return nil, errors.New("checkout: repository is nil")
	}
	if provider == nil {
		return nil, errors.New("checkout: payment provider is nil")
	}
	if c == nil {
		dc := DefaultConfig()
		c = &dc
	}
	if c.CompleteTimeout == 0 {
		c.CompleteTimeout = 30 * time.Second
	}
	if c.MailTimeout == 0 {
		c.MailTimeout = 10 * time.Second
	}
	return &Service{
		c:        c,
		repo:     repo,
		provider: provider,
		mailer:   mailer,
		locks:    newKeyLock(),
		now:      time.Now,
	}, nil
}

// Provider returns the payment provider the service charges through.
func (s *Service) Provider() dependency.PaymentProvider {
	return s.provider
}

package ratelimit

import (
	"fmt"
	"strings"
	"sync"
	"time"

	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
)

// Limiter is an in-memory fixed window counter keyed by caller.
type Limiter struct {
	mu       sync.Mutex
	counters map[string]*counter
	window   time.Duration
	max      int
	now      func() time.Time
}

type counter struct {
	count     int
	expiresAt time.Time
}

func NewLimiter(window time.Duration, max int) *Limiter {
	return &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
		now:      time.Now,
	}
}

// Allow counts one request for key and reports whether it fits the window.
// A non-positive max disables the limiter.
func (l *Limiter) Allow(key string) bool {
	if l.max <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.counters[key]
	if !ok || now.After(c.expiresAt) {
		l.counters[key] = &counter{count: 1, expiresAt: now.Add(l.window)}
		return true
	}
	if c.count >= l.max {
		return false
	}
	c.count++
	return true
}

// Remaining returns how many requests key may still make in its window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.counters[key]
	if !ok || l.now().After(c.expiresAt) {
		return l.max
	}
	return max(l.max-c.count, 0)
}

// sweep drops expired counters.
func (l *Limiter) sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	n := 0
	for key, c := range l.counters {
		if now.After(c.expiresAt) {
			delete(l.counters, key)
			n++
		}
	}
	return n
}

type Config struct {
	InitiatePerIPHour    int `mapstructure:"initiate_per_ip_hour"`
	InitiatePerEmailHour int `mapstructure:"initiate_per_email_hour"`
	ConfirmPerIPMinute   int `mapstructure:"confirm_per_ip_minute"`
}

func DefaultConfig() Config {
	return Config{
		InitiatePerIPHour:    100,
		InitiatePerEmailHour: 100,
		ConfirmPerIPMinute:   20,
	}
}

// Guard applies the checkout limits: payment initiation per IP and per
// customer email, order confirmation per IP.
type Guard struct {
	ipInitiate    *Limiter
	emailInitiate *Limiter
	ipConfirm     *Limiter

	stop chan struct{}
	once sync.Once
}

// NewGuard creates the checkout limiter and starts sweeping expired
// counters every minute until Stop.
func NewGuard(c *Config) *Guard {
	d := DefaultConfig()
	if c == nil {
		c = &d
	}
	g := &Guard{
		ipInitiate:    NewLimiter(time.Hour, c.InitiatePerIPHour),
		emailInitiate: NewLimiter(time.Hour, c.InitiatePerEmailHour),
		ipConfirm:     NewLimiter(time.Minute, c.ConfirmPerIPMinute),
		stop:          make(chan struct{}),
	}
	go g.cleanup(time.Minute)
	return g
}

func (g *Guard) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-g.stop:
			return
		case <-ticker.C:
			g.ipInitiate.sweep()
			g.emailInitiate.sweep()
			g.ipConfirm.sweep()
		}
	}
}

func (g *Guard) Stop() {
	g.once.Do(func() { close(g.stop) })
}

// CheckInitiate counts a payment initiation from ip for email.
func (g *Guard) CheckInitiate(ip, email string) error {
	if !g.ipInitiate.Allow(ip) {
		return fmt.Errorf("%w: initiation limit for ip %s", gerr.RateLimited, ip)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !g.emailInitiate.Allow(email) {
		return fmt.Errorf("%w: initiation limit for email", gerr.RateLimited)
	}
	return nil
}

// CheckConfirm counts an order confirmation from ip.
func (g *Guard) CheckConfirm(ip string) error {
	if !g.ipConfirm.Allow(ip) {
		return fmt.Errorf("%w: confirmation limit for ip %s", gerr.RateLimited, ip)
	}
	return nil
}

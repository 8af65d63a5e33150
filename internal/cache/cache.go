// Package cache keeps rendered analytics dashboards for a short time.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/dependency"
	"github.com/jekabolt/storefront-ledger/internal/entity"
)

type Config struct {
	// Addr of the Redis server. The cache is disabled when empty.
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

const (
	defaultTTL    = 5 * time.Minute
	defaultPrefix = "storefront-ledger:analytics"
)

// New returns a Redis backed cache, or a Noop cache when no address is set.
// The Redis server is pinged once so a bad address fails at startup.
func New(ctx context.Context, c *Config) (dependency.AnalyticsCache, error) {
	if c == nil || c.Addr == "" {
		return Noop{}, nil
	}
	rc := NewRedis(c)
	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("can't ping redis at %s: %w", c.Addr, err)
	}
	return rc, nil
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, int) (*entity.AnalyticsData, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, int, *entity.AnalyticsData) error {
	return nil
}

func (Noop) Close() error {
	return nil
}

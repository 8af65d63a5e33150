package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/entity"
	redis "github.com/redis/go-redis/v9"
)

type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedis(c *Config) *Redis {
	ttl := c.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}
	prefix := c.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     c.Addr,
			Password: c.Password,
			DB:       c.DB,
		}),
		ttl:    ttl,
		prefix: prefix,
	}
}

func (r *Redis) key(days int) string {
	return fmt.Sprintf("%s:%d", r.prefix, days)
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Get(ctx context.Context, days int) (*entity.AnalyticsData, bool, error) {
	val, err := r.client.Get(ctx, r.key(days)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var data entity.AnalyticsData
	if err := json.Unmarshal(val, &data); err != nil {
		return nil, false, fmt.Errorf("can't unmarshal cached analytics: %w", err)
	}
	return &data, true, nil
}

func (r *Redis) Set(ctx context.Context, days int, data *entity.AnalyticsData) error {
	if data == nil {
		return nil
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(days), payload, r.ttl).Err()
}

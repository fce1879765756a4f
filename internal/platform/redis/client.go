package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"privacyguard/internal/platform/config"
)

// Client wraps go-redis so callers get a health check alongside the raw
// client. Close is promoted from the embedded client.
type Client struct {
	*redis.Client
}

// New connects to Redis and verifies the connection with a ping before
// returning. A nil client with a nil error means Redis is not configured;
// callers treat that as "run without the retention cache".
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health reports whether the connection is still usable.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

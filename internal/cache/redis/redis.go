// Package redis provides the optional Redis-backed settings cache. When no
// address is configured the constructor returns nil and callers fall back
// to the in-memory cache.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"social-care-go/internal/config"
)

type Client struct {
	*redis.Client
}

// New connects to Redis, or returns nil when cfg.Addr is empty.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}

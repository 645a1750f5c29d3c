// Package cache holds Redis-backed stores.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/productivity-app/backend/internal/application/adapter"
)

const denylistKeyPrefix = "auth:revoked:"

// tokenDenylist implements adapter.TokenDenylist on Redis keys that expire with the token.
type tokenDenylist struct {
	client *redis.Client
}

// NewTokenDenylist creates a denylist backed by the given Redis client.
func NewTokenDenylist(client *redis.Client) adapter.TokenDenylist {
	return &tokenDenylist{client: client}
}

// Revoke stores the token id until ttl elapses.
func (d *tokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := d.client.Set(ctx, denylistKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to store revoked token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id is still denylisted.
func (d *tokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.client.Get(ctx, denylistKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read revoked token: %w", err)
	}
	return true, nil
}

// NewClient parses a redis:// URL and opens a client.
func NewClient(url, password string, db int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}
	return redis.NewClient(opts), nil
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestTokenDenylist(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	denylist := NewTokenDenylist(client)

	t.Run("unknown token is not revoked", func(t *testing.T) {
		revoked, err := denylist.IsRevoked(ctx, "missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if revoked {
			t.Error("expected token not to be revoked")
		}
	})

	t.Run("revoked token is reported until ttl elapses", func(t *testing.T) {
		if err := denylist.Revoke(ctx, "jti-1", time.Minute); err != nil {
			t.Fatalf("revoke: %v", err)
		}

		revoked, err := denylist.IsRevoked(ctx, "jti-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !revoked {
			t.Fatal("expected token to be revoked")
		}

		mr.FastForward(2 * time.Minute)

		revoked, err = denylist.IsRevoked(ctx, "jti-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if revoked {
			t.Error("expected revocation to expire with the token")
		}
	})

	t.Run("redis failure surfaces as error", func(t *testing.T) {
		down, err := miniredis.Run()
		if err != nil {
			t.Fatalf("miniredis: %v", err)
		}
		downClient := redis.NewClient(&redis.Options{Addr: down.Addr(), MaxRetries: -1})
		defer downClient.Close()
		down.Close()

		if _, err := NewTokenDenylist(downClient).IsRevoked(ctx, "jti-2"); err == nil {
			t.Error("expected error when redis is unavailable")
		}
	})
}

func TestNewClient(t *testing.T) {
	mr, _ := newTestRedis(t)

	client, err := NewClient("redis://"+mr.Addr()+"/0", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Errorf("ping: %v", err)
	}

	if _, err := NewClient("not a url", "", 0); err == nil {
		t.Error("expected error for invalid url")
	}
}

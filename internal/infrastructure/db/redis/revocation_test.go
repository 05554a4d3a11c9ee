package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*RevocationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRevocationStore(client), mr
}

func TestRevocationStore_RevokeAndExpire(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "tok-1")
	if err != nil || revoked {
		t.Fatalf("fresh token should not be revoked (%v, %v)", revoked, err)
	}

	if err := store.Revoke(ctx, "tok-1", time.Minute); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	revoked, err = store.IsRevoked(ctx, "tok-1")
	if err != nil || !revoked {
		t.Fatalf("token should be revoked (%v, %v)", revoked, err)
	}
	if ttl := mr.TTL("revoked:tok-1"); ttl != time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}

	mr.FastForward(2 * time.Minute)
	revoked, err = store.IsRevoked(ctx, "tok-1")
	if err != nil || revoked {
		t.Fatalf("revocation should expire with the token (%v, %v)", revoked, err)
	}
}

func TestRevocationStore_NonPositiveTTL(t *testing.T) {
	store, mr := newTestStore(t)

	if err := store.Revoke(context.Background(), "tok-2", 0); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}
	if mr.Exists("revoked:tok-2") {
		t.Fatalf("no key should be written for an expired token")
	}
}

func TestRevocationStore_ConnectionError(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()

	if _, err := store.IsRevoked(context.Background(), "tok-3"); err == nil {
		t.Fatalf("expected error when redis is unavailable")
	}
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	addr := mr.Addr()

	client, err := Connect(context.Background(), Config{Addr: addr})
	if err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	_ = client.Close()

	mr.Close()
	if _, err := Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatalf("expected ping failure after shutdown")
	}
}

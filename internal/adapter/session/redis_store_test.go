package session

import (
	"context"
	"testing"
	"time"

	"opsplatform-backend/internal/domain/viewmode"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, ttl), mr
}

func TestRedisStore_SetGetClear(t *testing.T) {
	s, mr := newStore(t, time.Hour)
	ctx := context.Background()

	if m, err := s.Get(ctx, "u1"); err != nil || m != "" {
		t.Fatalf("empty Get = %q, %v", m, err)
	}
	if err := s.Set(ctx, "u1", viewmode.Team); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := mr.Get("finance_view_mode:u1"); got != "team" {
		t.Fatalf("stored value = %q", got)
	}
	if ttl := mr.TTL("finance_view_mode:u1"); ttl != time.Hour {
		t.Fatalf("ttl = %v, want 1h", ttl)
	}
	if m, err := s.Get(ctx, "u1"); err != nil || m != viewmode.Team {
		t.Fatalf("Get = %q, %v", m, err)
	}
	if m, _ := s.Get(ctx, "u2"); m != "" {
		t.Fatalf("modes must be per user, got %q", m)
	}

	if err := s.Clear(ctx, "u1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if mr.Exists("finance_view_mode:u1") {
		t.Fatalf("key not deleted")
	}
	// clearing twice is fine
	if err := s.Clear(ctx, "u1"); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestRedisStore_ExpiresAndIgnoresGarbage(t *testing.T) {
	s, mr := newStore(t, time.Minute)
	ctx := context.Background()

	_ = s.Set(ctx, "u1", viewmode.Personal)
	mr.FastForward(2 * time.Minute)
	if m, err := s.Get(ctx, "u1"); err != nil || m != "" {
		t.Fatalf("expired Get = %q, %v", m, err)
	}

	_ = mr.Set("finance_view_mode:u1", "everyone")
	if m, err := s.Get(ctx, "u1"); err != nil || m != "" {
		t.Fatalf("garbage Get = %q, %v", m, err)
	}
}

func TestRedisStore_ConnectionError(t *testing.T) {
	s, mr := newStore(t, time.Minute)
	mr.Close()
	if _, err := s.Get(context.Background(), "u1"); err == nil {
		t.Fatal("expected an error from a closed server")
	}
}

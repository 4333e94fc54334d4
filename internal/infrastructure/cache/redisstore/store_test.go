package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/sports-intel/internal/platform/cache"
)

func newTestStore(t *testing.T, now *time.Time) (*Store, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, WithClock(func() time.Time { return *now })), srv
}

func TestStore_PutGetAndExpiry(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	store, srv := newTestStore(t, &now)
	ctx := context.Background()

	if err := store.Put(ctx, "schedule:nfl", []byte(`{"count":1}`), 12*time.Hour); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !srv.Exists(DefaultPrefix + "schedule:nfl") {
		t.Fatalf("expected prefixed key in redis")
	}
	if ttl := srv.TTL(DefaultPrefix + "schedule:nfl"); ttl != 12*time.Hour+DefaultRetention {
		t.Fatalf("unexpected redis ttl %s", ttl)
	}

	payload, ok, err := store.Get(ctx, "schedule:nfl")
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if string(payload) != `{"count":1}` {
		t.Fatalf("unexpected payload %s", payload)
	}

	now = now.Add(12 * time.Hour)
	if _, ok, err := store.Get(ctx, "schedule:nfl"); err != nil || ok {
		t.Fatalf("expected miss after expiry, ok=%v err=%v", ok, err)
	}

	entry, ok, err := store.Entry(ctx, "schedule:nfl")
	if err != nil || !ok {
		t.Fatalf("expected expired entry to remain, ok=%v err=%v", ok, err)
	}
	if !entry.CreatedAt.Equal(now.Add(-12*time.Hour)) || !entry.ExpiresAt.Equal(now) {
		t.Fatalf("unexpected timestamps created=%s expires=%s", entry.CreatedAt, entry.ExpiresAt)
	}
}

func TestStore_MissingKey(t *testing.T) {
	now := time.Now()
	store, _ := newTestStore(t, &now)

	if _, ok, err := store.Get(context.Background(), "boxing:upcoming"); err != nil || ok {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}
	if err := store.Put(context.Background(), "", nil, time.Minute); !errors.Is(err, cache.ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestStore_ReportsBackendErrors(t *testing.T) {
	now := time.Now()
	store, srv := newTestStore(t, &now)
	srv.SetError("backend down")

	if _, _, err := store.Get(context.Background(), "schedule:nba"); err == nil {
		t.Fatalf("expected backend error")
	}
}

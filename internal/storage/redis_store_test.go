package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

type fakeRedis struct {
	keys   map[string]time.Duration
	err    error
	closed bool
}

func (f *fakeRedis) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, _ interface{}, ttl time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.keys[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisStoreMarksWithTTL(t *testing.T) {
	ctx := context.Background()
	rdb := &fakeRedis{keys: map[string]time.Duration{}}
	store := newRedisStore(rdb, Options{TTL: 48 * time.Hour})

	seen, err := store.SeenExposure(ctx, "breach:foo:Adobe")
	if err != nil || seen {
		t.Fatalf("expected unseen, seen=%v err=%v", seen, err)
	}
	if err := store.MarkExposure(ctx, "breach:foo:Adobe"); err != nil {
		t.Fatalf("MarkExposure: %v", err)
	}

	ttl, ok := rdb.keys[defaultKeyPrefix+"breach:foo:Adobe"]
	if !ok {
		t.Fatalf("expected prefixed key, got %v", rdb.keys)
	}
	if ttl != 48*time.Hour {
		t.Fatalf("expected ttl 48h, got %v", ttl)
	}

	seen, err = store.SeenExposure(ctx, "breach:foo:Adobe")
	if err != nil || !seen {
		t.Fatalf("expected seen, seen=%v err=%v", seen, err)
	}

	if err := store.Close(); err != nil || !rdb.closed {
		t.Fatalf("expected backend to be closed, err=%v", err)
	}
}

func TestRedisStoreWrapsErrors(t *testing.T) {
	boom := errors.New("connection refused")
	store := newRedisStore(&fakeRedis{keys: map[string]time.Duration{}, err: boom}, Options{})

	if _, err := store.SeenExposure(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if err := store.MarkExposure(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// redisBackend is the slice of *redis.Client the store needs.
type redisBackend interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// redisStore keeps seen exposure IDs as redis keys that expire after ttl.
type redisStore struct {
	rdb    redisBackend
	prefix string
	ttl    time.Duration
}

func openRedis(ctx context.Context, opts Options) (*redisStore, error) {
	redisOpts, err := redis.ParseURL(opts.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(redisOpts)
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisStore(client, opts), nil
}

func newRedisStore(rdb redisBackend, opts Options) *redisStore {
	opts = normalizeOptions(opts)
	return &redisStore{rdb: rdb, prefix: opts.KeyPrefix, ttl: opts.TTL}
}

func (r *redisStore) key(id string) string { return r.prefix + id }

func (r *redisStore) Close() error {
	if r == nil || r.rdb == nil {
		return nil
	}
	return r.rdb.Close()
}

func (r *redisStore) SeenExposure(ctx context.Context, id string) (bool, error) {
	n, err := r.rdb.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", id, err)
	}
	return n > 0, nil
}

func (r *redisStore) MarkExposure(ctx context.Context, id string) error {
	if err := r.rdb.Set(ctx, r.key(id), time.Now().UTC().Format(time.RFC3339), r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", id, err)
	}
	return nil
}

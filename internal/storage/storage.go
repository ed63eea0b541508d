package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Package storage remembers which exposures have already been published.

// Store tracks published exposure IDs.
type Store interface {
	Close() error
	SeenExposure(ctx context.Context, id string) (bool, error)
	MarkExposure(ctx context.Context, id string) error
}

// Options selects and tunes a concrete store.
type Options struct {
	// Path is the bbolt database file.
	Path string
	// RedisURL is a redis:// URL for the redis backend.
	RedisURL string
	// KeyPrefix namespaces redis keys.
	KeyPrefix       string
	TTL             time.Duration
	CleanupInterval time.Duration
}

const (
	TypeNone  = "none"
	TypeBbolt = "bbolt"
	TypeRedis = "redis"

	defaultTTL             = 90 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
	defaultKeyPrefix       = "pwnwatch:seen:"
)

// NewStore creates the configured storage backend.
func NewStore(ctx context.Context, typ string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", TypeNone, "disabled":
		return noopStore{}, nil
	case TypeBbolt:
		if strings.TrimSpace(opts.Path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		store, err := openBolt(opts)
		if err != nil {
			return nil, err
		}
		return store, nil
	case TypeRedis:
		if strings.TrimSpace(opts.RedisURL) == "" {
			return nil, fmt.Errorf("redis storage requires a url")
		}
		store, err := openRedis(ctx, opts)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	if strings.TrimSpace(opts.KeyPrefix) == "" {
		opts.KeyPrefix = defaultKeyPrefix
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                                       { return nil }
func (noopStore) SeenExposure(context.Context, string) (bool, error) { return false, nil }
func (noopStore) MarkExposure(context.Context, string) error         { return nil }

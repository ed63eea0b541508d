package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	exposureBucket = "exposures"
	expiryBytes    = 8
)

var errBucketMissing = errors.New("exposure bucket missing")

// boltStore keeps seen exposure IDs in a local BoltDB file, each with an
// expiry timestamp. Expired keys are dropped on read and swept periodically.
type boltStore struct {
	db  *bolt.DB
	ttl time.Duration
	now func() time.Time

	sweepMu       sync.Mutex
	lastSweep     time.Time
	sweepInterval time.Duration
}

func openBolt(opts Options) (*boltStore, error) {
	if dir := filepath.Dir(opts.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(opts.Path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(exposureBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{
		db:            db,
		ttl:           opts.TTL,
		now:           time.Now,
		lastSweep:     time.Now(),
		sweepInterval: opts.CleanupInterval,
	}, nil
}

func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

func (b *boltStore) SeenExposure(_ context.Context, id string) (bool, error) {
	if b == nil || b.db == nil {
		return false, nil
	}
	now := b.now()
	if err := b.sweep(now); err != nil {
		return false, err
	}

	var seen bool
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(exposureBucket))
		if bucket == nil {
			return errBucketMissing
		}
		key := []byte(id)
		raw := bucket.Get(key)
		if raw == nil {
			return nil
		}
		if expiresAt, ok := decodeExpiry(raw); ok && expiresAt.After(now) {
			seen = true
			return nil
		}
		return bucket.Delete(key)
	})
	return seen, err
}

func (b *boltStore) MarkExposure(_ context.Context, id string) error {
	if b == nil || b.db == nil {
		return nil
	}
	now := b.now()
	if err := b.sweep(now); err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(exposureBucket))
		if bucket == nil {
			return errBucketMissing
		}
		return bucket.Put([]byte(id), encodeExpiry(now.Add(b.ttl)))
	})
}

// sweep deletes expired keys at most once per sweepInterval.
func (b *boltStore) sweep(now time.Time) error {
	b.sweepMu.Lock()
	defer b.sweepMu.Unlock()

	if now.Sub(b.lastSweep) < b.sweepInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(exposureBucket))
		if bucket == nil {
			return errBucketMissing
		}
		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if expiresAt, ok := decodeExpiry(v); ok && expiresAt.After(now) {
				continue
			}
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		b.lastSweep = now
	}
	return err
}

// count returns the number of stored keys, expired or not.
func (b *boltStore) count() (int, error) {
	var n int
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(exposureBucket))
		if bucket == nil {
			return errBucketMissing
		}
		n = bucket.Stats().KeyN
		return nil
	})
	return n, err
}

func encodeExpiry(t time.Time) []byte {
	buf := make([]byte, expiryBytes)
	binary.BigEndian.PutUint64(buf, uint64(t.Unix()))
	return buf
}

func decodeExpiry(raw []byte) (time.Time, bool) {
	if len(raw) != expiryBytes {
		return time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(raw))
	if unix <= 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}

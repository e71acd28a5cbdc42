package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	readingBucket    = "readings"
	expiryValueBytes = 8
)

// boltStore implements Store on a single bbolt bucket mapping reading ID to expiry.
type boltStore struct {
	db              *bolt.DB
	now             func() time.Time
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	readingTTL      time.Duration
	cleanupInterval time.Duration
}

// openBolt opens (or creates) the bbolt file at path.
func openBolt(path string, opts Options) (*boltStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(readingBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	store := &boltStore{
		db:              db,
		now:             time.Now,
		readingTTL:      opts.ReadingTTL,
		cleanupInterval: opts.CleanupInterval,
	}
	store.lastCleanup.Store(store.now().Unix())
	return store, nil
}

// Close closes the bbolt file.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// SeenReading reports whether id was marked and has not expired. Expired
// entries found on lookup are removed.
func (b *boltStore) SeenReading(id string) (bool, error) {
	if b == nil || b.db == nil {
		return false, nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return false, err
	}

	var exists bool
	err := b.update(func(bucket *bolt.Bucket) error {
		key := []byte(id)
		value := bucket.Get(key)
		if value == nil {
			return nil
		}
		if expiry, ok := decodeExpiry(value); ok && expiry.After(now) {
			exists = true
			return nil
		}
		return bucket.Delete(key)
	})
	return exists, err
}

// MarkReading records id as published until the TTL elapses.
func (b *boltStore) MarkReading(id string) error {
	if b == nil || b.db == nil {
		return nil
	}

	now := b.now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}

	return b.update(func(bucket *bolt.Bucket) error {
		return bucket.Put([]byte(id), encodeExpiry(now.Add(b.readingTTL)))
	})
}

// count returns the number of stored IDs, expired or not.
func (b *boltStore) count() (int, error) {
	var n int
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(readingBucket))
		if bucket == nil {
			return fmt.Errorf("reading bucket missing")
		}
		n = bucket.Stats().KeyN
		return nil
	})
	return n, err
}

func (b *boltStore) update(fn func(*bolt.Bucket) error) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(readingBucket))
		if bucket == nil {
			return fmt.Errorf("reading bucket missing")
		}
		return fn(bucket)
	})
}

// maybeCleanupExpired sweeps expired IDs at most once per cleanup interval.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	if !b.cleanupDue(now) {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	if !b.cleanupDue(now) {
		return nil
	}

	err := b.update(func(bucket *bolt.Bucket) error {
		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			if expiry, ok := decodeExpiry(v); ok && expiry.After(now) {
				continue
			}
			if err := cursor.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

func (b *boltStore) cleanupDue(now time.Time) bool {
	last := time.Unix(b.lastCleanup.Load(), 0)
	return now.Sub(last) >= b.cleanupInterval
}

func encodeExpiry(at time.Time) []byte {
	buf := make([]byte, expiryValueBytes)
	binary.BigEndian.PutUint64(buf, uint64(at.Unix()))
	return buf
}

// decodeExpiry reads the big-endian unix expiry; malformed values count as expired.
func decodeExpiry(value []byte) (time.Time, bool) {
	if len(value) != expiryValueBytes {
		return time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value))
	if unix <= 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}

// Package cache provides a small TTL'd response cache for external
// catalog providers, backed by BadgerDB. Cache failures are never fatal:
// callers log and fall through to the provider.
package cache

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// Cache stores provider response bodies keyed by request identity.
type Cache interface {
	// Get returns the cached value and whether it was present and fresh.
	Get(key string) ([]byte, bool)
	// Set stores a value with a TTL.
	Set(key string, value []byte, ttl time.Duration) error
	Close() error
}

// Badger is a Cache backed by a BadgerDB directory.
type Badger struct {
	db     *badger.DB
	logger *slog.Logger
}

// OpenBadger opens (or creates) the cache at dir.
func OpenBadger(dir string, logger *slog.Logger) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &Badger{db: db, logger: logger}, nil
}

// Get implements Cache. Expired entries are handled by Badger's native
// TTL support, so a found key is always fresh.
func (b *Badger) Get(key string) ([]byte, bool) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			b.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return value, true
}

// Set implements Cache.
func (b *Badger) Set(key string, value []byte, ttl time.Duration) error {
	return b.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), value).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
}

// Close closes the underlying database.
func (b *Badger) Close() error {
	return b.db.Close()
}

// Noop is a Cache that stores nothing. Used in tests and when caching
// is disabled by configuration.
type Noop struct{}

// NewNoop returns a no-op cache.
func NewNoop() Noop { return Noop{} }

// Get always misses.
func (Noop) Get(string) ([]byte, bool) { return nil, false }

// Set discards the value.
func (Noop) Set(string, []byte, time.Duration) error { return nil }

// Close is a no-op.
func (Noop) Close() error { return nil }

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache memoizes computed results keyed by a hash of their input. A nil
// *Cache is valid and never holds anything.
type Cache[V any] struct {
	store *ristretto.Cache[string, V]
	ttl   time.Duration
}

// New returns a cache holding up to maxEntries results for ttl each.
// maxEntries <= 0 disables caching and returns nil.
func New[V any](maxEntries int64, ttl time.Duration) (*Cache[V], error) {
	if maxEntries <= 0 {
		return nil, nil
	}
	store, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Cache[V]{store: store, ttl: ttl}, nil
}

// Key derives a stable cache key from the JSON encoding of input.
func Key(namespace string, input any) (string, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("failed to encode cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return namespace + ":" + hex.EncodeToString(sum[:]), nil
}

func (c *Cache[V]) Get(key string) (V, bool) {
	if c == nil {
		var zero V
		return zero, false
	}
	return c.store.Get(key)
}

// Set stores value under key. Admission is asynchronous and may be refused
// under pressure.
func (c *Cache[V]) Set(key string, value V) {
	if c == nil {
		return
	}
	if c.ttl > 0 {
		c.store.SetWithTTL(key, value, 1, c.ttl)
		return
	}
	c.store.Set(key, value, 1)
}

// Wait blocks until buffered writes are applied.
func (c *Cache[V]) Wait() {
	if c != nil {
		c.store.Wait()
	}
}

func (c *Cache[V]) Close() {
	if c != nil {
		c.store.Close()
	}
}

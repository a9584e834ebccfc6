package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/plugfox/foxy-fib/internal/config"
	"github.com/plugfox/foxy-fib/internal/fib"
)

// Key identifies a cached value: the algorithm and n.
type Key struct {
	Algorithm fib.Algorithm
	N         int64
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%d", k.Algorithm, k.N)
}

// Cache - bounded in-memory cache of evaluated Fibonacci numbers
type Cache struct {
	store *ristretto.Cache[string, int64]
}

func New(cfg *config.CacheConfig) (*Cache, error) {
	store, err := ristretto.NewCache(&ristretto.Config[string, int64]{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}

	return &Cache{store: store}, nil
}

// Get - cached value for the key, if any
func (c *Cache) Get(key Key) (int64, bool) {
	return c.store.Get(key.String())
}

// Set stores the value with unit cost. Admission is asynchronous and may be refused.
func (c *Cache) Set(key Key, value int64) bool {
	return c.store.Set(key.String(), value, 1)
}

// Wait blocks until pending writes are applied.
func (c *Cache) Wait() {
	c.store.Wait()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.store.Clear()
}

// Close stops the cache goroutines.
func (c *Cache) Close() {
	c.store.Close()
}

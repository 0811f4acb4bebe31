package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU is a bounded, size-limited cache keyed by K. It wraps
// [github.com/hashicorp/golang-lru/v2] rather than hand-rolling eviction:
// the teacher's own dependency set pulls this library in transitively, and
// spec.md §4.1/§6 calls for exactly this shape (bounded LRU, eviction does
// not affect correctness because recomputation is pure).
type LRU[K comparable, V any] struct {
	inner *lru.Cache[K, V]

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// NewLRU creates an LRU bounded to size entries. size must be positive.
func NewLRU[K comparable, V any](size int) (*LRU[K, V], error) {
	c := &LRU[K, V]{}
	inner, err := lru.NewWithEvict[K, V](size, func(K, V) {
		c.evictions.Add(1)
	})
	if err != nil {
		return nil, err
	}
	c.inner = inner
	return c, nil
}

// Get returns the cached value for key, recording a hit or miss.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	v, ok := c.inner.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Add inserts or updates the value for key.
func (c *LRU[K, V]) Add(key K, value V) {
	c.inner.Add(key, value)
}

// Len returns the number of entries currently cached.
func (c *LRU[K, V]) Len() int {
	return c.inner.Len()
}

// Stats reports cumulative hit/miss/eviction counters, grounded on the
// teacher's "every cache exposes introspection for tests" idiom
// (graph/concurrent_test.go asserts on internal counters).
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Stats returns a snapshot of the cache's cumulative counters.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Evictions: c.evictions.Load()}
}

// GetOrCompute returns the cached value for key, computing and storing it
// via fn on a miss. fn errors are not cached: a failing computation may be
// retried on the next call.
func (c *LRU[K, V]) GetOrCompute(key K, fn func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := fn()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Add(key, v)
	return v, nil
}

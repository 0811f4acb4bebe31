package builder

import (
	"reflect"
	"sync/atomic"

	"github.com/ductile-labs/beanval/cache"
	"github.com/ductile-labs/beanval/descriptor"
	"github.com/ductile-labs/beanval/diag"
)

// built pairs a resolved descriptor with the diag.Result its build
// produced, so a cached miss-then-hit sequence still exposes the
// original build's collected diagnostics.
type built struct {
	descriptor *descriptor.BeanDescriptor
	result     diag.Result
}

// Cache publishes one [descriptor.BeanDescriptor] per [reflect.Type],
// computed at most once per type regardless of concurrent callers, per
// spec.md §3's "created on first query per type and cached process-wide"
// lifecycle. Grounded on the teacher's once-init cell idiom ([cache.Map])
// rather than a hand-rolled double-checked-locking singleton.
type Cache struct {
	cells *cache.Map[reflect.Type, built]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache creates an empty descriptor cache.
func NewCache() *Cache {
	return &Cache{cells: cache.NewMap[reflect.Type, built]()}
}

// CacheStats reports cumulative hit/miss counters for introspection in
// tests, per the teacher's "every cache exposes introspection for tests"
// idiom (graph package's concurrent_test.go).
type CacheStats struct {
	Hits   uint64
	Misses uint64
}

// Stats returns a snapshot of the cache's cumulative counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// getOrBuild returns the published descriptor for t, invoking fn to
// compute it on the first request for that type.
func (c *Cache) getOrBuild(t reflect.Type, fn func() (*descriptor.BeanDescriptor, diag.Result, error)) (*descriptor.BeanDescriptor, diag.Result, error) {
	var computed bool
	b, err := c.cells.GetOrInit(t, func() (built, error) {
		computed = true
		d, result, e := fn()
		if e != nil {
			return built{}, e
		}
		return built{descriptor: d, result: result}, nil
	})
	if computed {
		c.misses.Add(1)
	} else {
		c.hits.Add(1)
	}
	if err != nil {
		return nil, diag.Result{}, err
	}
	return b.descriptor, b.result, nil
}

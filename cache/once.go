package cache

import "sync"

// Cell is a once-init cell: the first caller to invoke [Cell.GetOrInit]
// runs the supplied function and publishes its result; every subsequent
// caller (including concurrent racers) observes the same published value
// without recomputation. This replaces the "lazy, thread-safe singleton via
// double-checked init" pattern spec.md §9 calls out for redesign, in favor
// of Go's explicit [sync.Once].
type Cell[V any] struct {
	once  sync.Once
	value V
	err   error
}

// GetOrInit returns the cell's published value, computing it via fn on the
// first call. The result — success or error — is published permanently;
// later calls never re-run fn, matching "first completed value wins; all
// readers observe the same value" from spec.md §3.
func (c *Cell[V]) GetOrInit(fn func() (V, error)) (V, error) {
	c.once.Do(func() {
		c.value, c.err = fn()
	})
	return c.value, c.err
}

// Map is a keyed collection of [Cell] values, giving single-writer-per-key
// idempotent publication across many keys (the per-[reflect.Type]
// descriptor cache of spec.md §3's Lifecycle section).
type Map[K comparable, V any] struct {
	mu    sync.Mutex
	cells map[K]*Cell[V]
}

// NewMap creates an empty Map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{cells: make(map[K]*Cell[V])}
}

// GetOrInit returns the published value for key, computing it via fn on
// the first request for that key.
func (m *Map[K, V]) GetOrInit(key K, fn func() (V, error)) (V, error) {
	m.mu.Lock()
	cell, ok := m.cells[key]
	if !ok {
		cell = &Cell[V]{}
		m.cells[key] = cell
	}
	m.mu.Unlock()
	return cell.GetOrInit(fn)
}

// Len returns the number of keys with a cell present (published or not).
func (m *Map[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cells)
}

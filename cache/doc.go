// Package cache provides the two small caching primitives the descriptor
// build pipeline needs: a bounded LRU for derived, recomputable data (the
// annotation-composition cache of spec.md §4.1 and §6's
// constraints.cache.size knob) and a once-init cell for data that must be
// computed exactly once and then published immutably process-wide (the
// per-type descriptor cache of spec.md §3's Lifecycle section).
//
// Both primitives are safe for concurrent use, matching spec.md §5:
// "Descriptor cache... single-writer-per-key with idempotent publication."
package cache

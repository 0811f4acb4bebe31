// Package builder implements the descriptor builder pipeline from
// spec.md §4.3: independent sources of declarative metadata (a reflective
// source reading Go struct tags, and a JSONC mapping-document overlay) are
// combined through Hierarchy, Parallel, and Composite combinators into a
// single effective [ForBean] per type, then converted into an immutable
// [descriptor.BeanDescriptor].
//
// The pipeline is evaluated lazily per [reflect.Type] and the resulting
// descriptor is cached process-wide in a [Cache], matching spec.md §3's
// "created on first query per type and cached process-wide" lifecycle.
// The cache itself is grounded on the teacher's once-init cell idiom
// (cache.Map, sync.Once per key) rather than a hand-rolled double-checked
// singleton, per spec.md §9's "lazy thread-safe singletons -> explicit
// once-init cells" redesign note.
package builder

// Package descriptor implements the immutable-after-build per-type
// metadata graph from spec.md §3: [BeanDescriptor], [PropertyDescriptor],
// [ContainerElementDescriptor], and [ExecutableDescriptor].
//
// Every descriptor type follows the same shape as constraint.Descriptor:
// an unexported struct plus a fluent *Builder whose Build method returns a
// defensively-copied, read-only value. This mirrors the teacher's
// schema.Schema/schema.Type sealed-after-load pattern (schema/schema.go,
// schema/property.go) — name-indexed lookup maps alongside ordered slices,
// slices.Clone/maps.Clone on every accessor that would otherwise leak
// mutable internal state.
package descriptor

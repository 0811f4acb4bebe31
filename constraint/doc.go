// Package constraint implements the constraint-descriptor model and the
// annotation-composition algorithm of spec.md §3 and §4.1.
//
// A [Descriptor] is the immutable-after-build metadata for one declared
// constraint occurrence: its [Kind], attribute map, effective group set,
// payload markers, composing constraints, and the flags ([Descriptor.ApplyTo],
// [Descriptor.Scope], [Descriptor.ReportAsSingleViolation]) the traversal
// engine needs to evaluate it. Descriptor is built exclusively through
// [NewBuilder], matching the teacher's fluent-builder-is-the-only-valid-
// construction-path idiom (see diag.IssueBuilder) — direct struct literals
// would bypass the groups-closure and payload-exclusivity invariants.
//
// [Compose] implements §4.1: given a constraint kind's declared
// meta-constraints (composing kinds plus attribute-override declarations,
// supplied by a [MetaSource]), it produces a fresh, independent set of
// composing [Descriptor] instances for a given source occurrence, with
// override values copied from the source's own attributes. The meta-level
// declarations (which kinds compose which, and their override mappings) are
// cached per [Kind] in a bounded LRU — see [NewComposer] — because that
// structure never depends on a particular occurrence's attribute values;
// only the per-call attribute copy is freshly built every time, matching
// spec.md's "produce a fresh array of composing annotation instances."
package constraint

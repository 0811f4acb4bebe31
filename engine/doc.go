// Package engine implements the cascading traversal/evaluation core from
// spec.md §4.5: a [Job] walks a validated bean (or an executable's
// parameters/return value), applying constraints group by group,
// recursing into cascaded properties and container elements, and
// collecting [violation.Violation] values.
//
// The frame-stack shape (bean frame, sprout frame, parameters frame) is
// adapted from the teacher's graph/internal/walk.Walker: deterministic,
// depth-first recursion with a context-cancellation check between frames
// (graph/internal/walk/walker.go's per-instance/per-type ctx.Err() checks),
// generalized from "walk a persisted instance graph" to "walk one
// validation request's cascade". Unlike the teacher's walker, a Job's
// object graph may contain real reference cycles (arbitrary Go pointers),
// so cycle detection here is spec-driven rather than inherited: an
// identity-keyed seen-set per group pass (SPEC_FULL.md §8's "cycle safety"
// property: each cycle-participating bean evaluated at most once per
// group) plus an ancestor-chain scan before a child frame is constructed.
//
// A Job is single-use and single-goroutine, per spec.md §5: its validate
// method may be called exactly once.
package engine

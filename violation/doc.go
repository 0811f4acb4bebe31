// Package violation implements the fluent additional-violation builder
// from spec.md §4.6: a validator's context can suppress the default
// violation and/or build one or more custom violations, each extending a
// base [path.Path] with property, bean, or container-element nodes before
// terminating with AddConstraintViolation.
//
// The fluent shape is lifted directly from the teacher's
// diag.IssueBuilder (diag/builder.go): required fields fixed at
// construction, chained With*-style calls, a terminal Build/AddXxx call
// that deep-copies into an immutable result. Per spec.md §9's redesign
// note on "fluent violation builder (chained context-carrying objects)",
// the container-element step is modeled as its own intermediate state: a
// pending container-element name is only finalized into a path node once
// AtIndex, AtKey, or another chain call commits it.
package violation

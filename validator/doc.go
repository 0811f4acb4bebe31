// Package validator resolves, for a constraint occurrence and a runtime
// value type, which registered [spi.ConstraintValidator] implementation
// applies — the "maximally specific, ascending walk, discard less
// specific" algorithm from spec.md §4.2, built on [rtype.Resolve].
//
// A [Registry] holds, per [constraint.Kind], every validator implementation
// registered for it together with the concrete value type it declares
// support for. Resolve boxes the runtime type (rtype.Box), narrows the
// registered value types to those applicable (rtype.Applicable), and keeps
// only the maximally specific ones (rtype.MostSpecific) — mirroring the
// teacher's instance/eval.Checker dispatch-by-kind shape, generalized from
// a closed kind switch to an open, host-extensible registry.
package validator

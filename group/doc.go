// Package group implements the group computer from spec.md §4.4: default
// redirection (a bean's own declared group sequence substitutes for
// Default when validating that bean) and group-sequence expansion (a
// group kind that is itself declared as a sequence expands to its ordered
// component list), producing the (simple, sequences) pair the traversal
// engine evaluates.
//
// The cycle-detection shape (DFS that checks each group against the
// current expansion path, keep-first deduplication of an already-seen
// node) is grounded on the
// teacher's schema/internal/complete/linearize.go inheritance-cycle
// detector, generalized from type-inheritance linearization to
// group-sequence expansion.
package group

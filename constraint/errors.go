package constraint

import "fmt"

// DefinitionErrorKind classifies a [DefinitionError], matching the
// "Definition error" row of spec.md §7's taxonomy for the composition
// subsystem.
type DefinitionErrorKind int

const (
	// KindUnwrapSkipConflict: a constraint declares both Unwrap and Skip.
	KindUnwrapSkipConflict DefinitionErrorKind = iota
	// KindOverrideConflict: two override declarations map to the same
	// (target kind, index, to-attribute) triple.
	KindOverrideConflict
	// KindOverrideAmbiguous: an override's index of -1 did not resolve to
	// exactly one composing constraint of the named kind.
	KindOverrideAmbiguous
	// KindTargetMismatch: a composing kind's supported targets share
	// nothing with the composed kind's supported targets.
	KindTargetMismatch
	// KindEmptyGroups is never surfaced as an error (empty groups are
	// silently rewritten to {Default} per spec.md §3), but the kind exists
	// so callers constructing descriptors directly can label the condition
	// if they choose to reject it instead of rewriting it.
	KindEmptyGroups
)

// String returns a human-readable label.
func (k DefinitionErrorKind) String() string {
	switch k {
	case KindUnwrapSkipConflict:
		return "unwrap/skip conflict"
	case KindOverrideConflict:
		return "override conflict"
	case KindOverrideAmbiguous:
		return "override target ambiguous"
	case KindTargetMismatch:
		return "target mismatch"
	case KindEmptyGroups:
		return "empty groups"
	default:
		return "unknown"
	}
}

// DefinitionError reports a malformed constraint or composition declaration.
// Per spec.md §7, definition errors are fatal to the descriptor build (or,
// when raised mid-job via lazy composition, fatal to the job).
type DefinitionError struct {
	Kind      DefinitionErrorKind
	Source    Kind
	Composing Kind
	Detail    string
}

func (e *DefinitionError) Error() string {
	if e.Composing.IsZero() {
		return fmt.Sprintf("constraint: %s for %s: %s", e.Kind, e.Source, e.Detail)
	}
	return fmt.Sprintf("constraint: %s between %s and composing %s: %s", e.Kind, e.Source, e.Composing, e.Detail)
}

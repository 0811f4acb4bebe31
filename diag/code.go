package diag

// CodeCategory represents the semantic domain of an error code.
//
// Categories represent the semantic domain of an error, not necessarily the
// API layer that emits it. Most codes are emitted exclusively by their
// category's layer, but some codes represent cross-cutting concerns.
type CodeCategory uint8

const (
	// CategorySentinel is for sentinel codes like E_LIMIT_REACHED and E_INTERNAL.
	CategorySentinel CodeCategory = iota

	// CategoryConstraint is for annotation-composition and constraint-descriptor
	// build errors (override conflicts, target-compatibility mismatches).
	CategoryConstraint

	// CategoryDescriptor is for builder-pipeline merge errors (hierarchy,
	// parallel, and composite source combination).
	CategoryDescriptor

	// CategoryConfig is for configuration parsing/validation errors.
	CategoryConfig
)

// String returns a human-readable label for the category.
func (c CodeCategory) String() string {
	switch c {
	case CategorySentinel:
		return "sentinel"
	case CategoryConstraint:
		return "constraint"
	case CategoryDescriptor:
		return "descriptor"
	case CategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Code is a stable programmatic identifier for an Issue.
//
// Error codes are stable identifiers that tools can match on, even when
// message text changes. The Code type uses unexported fields to enforce
// a closed set of valid codes—only codes defined in this package are valid.
//
// Code.String() values are globally unique across all categories. The
// CodeCategory is informational metadata for filtering and grouping.
type Code struct {
	value string
	cat   CodeCategory
}

// String returns the code's string representation (e.g., "E_OVERRIDE_CONFLICT").
func (c Code) String() string {
	return c.value
}

// Category returns the programmatic category for this code.
func (c Code) Category() CodeCategory {
	return c.cat
}

// IsZero reports whether the code is unset.
func (c Code) IsZero() bool {
	return c.value == ""
}

// code is the unexported constructor—callers cannot create arbitrary codes.
func code(value string, cat CodeCategory) Code {
	return Code{value: value, cat: cat}
}

// Sentinel codes.
var (
	// E_LIMIT_REACHED is a sentinel code for explicit limit notification.
	// It does not automatically trigger Result.LimitReached(); use
	// Collector.LimitReached() to check limit status. Callers may inject
	// this code manually when desired.
	E_LIMIT_REACHED = code("E_LIMIT_REACHED", CategorySentinel)

	// E_INTERNAL indicates an unexpected invariant failure (internal bug indicator).
	// Use for conditions that should never occur in correct code.
	E_INTERNAL = code("E_INTERNAL", CategorySentinel)
)

// Constraint composition codes (spec.md §4.1, §7 "Definition error").
var (
	// E_OVERRIDE_CONFLICT indicates two attribute-override declarations map to
	// the same (target-kind, index, to-attribute) triple.
	E_OVERRIDE_CONFLICT = code("E_OVERRIDE_CONFLICT", CategoryConstraint)

	// E_OVERRIDE_TARGET_AMBIGUOUS indicates an override's constraint-index of -1
	// ("the sole composing of that kind") did not resolve to exactly one
	// composing constraint of the named kind.
	E_OVERRIDE_TARGET_AMBIGUOUS = code("E_OVERRIDE_TARGET_AMBIGUOUS", CategoryConstraint)

	// E_TARGET_MISMATCH indicates a composing constraint's supported-target set
	// does not intersect the supported-target set of the composed constraint.
	E_TARGET_MISMATCH = code("E_TARGET_MISMATCH", CategoryConstraint)

	// E_UNWRAP_SKIP_CONFLICT indicates a constraint declaration carries both the
	// Unwrap and Skip payload markers, which spec.md §3 forbids.
	E_UNWRAP_SKIP_CONFLICT = code("E_UNWRAP_SKIP_CONFLICT", CategoryConstraint)
)

// Builder pipeline codes (spec.md §4.3).
var (
	// E_ANNOTATION_BEHAVIOR_CONFLICT indicates sibling builders disagree on a
	// non-ABSTAIN annotation-behaviour during composite consensus merge.
	E_ANNOTATION_BEHAVIOR_CONFLICT = code("E_ANNOTATION_BEHAVIOR_CONFLICT", CategoryDescriptor)

	// E_DUPLICATE_PROPERTY indicates two sources declare the same property name
	// on the same bean with incompatible cascade/group-conversion metadata.
	E_DUPLICATE_PROPERTY = code("E_DUPLICATE_PROPERTY", CategoryDescriptor)

	// E_DUPLICATE_EXECUTABLE indicates two sources declare the same method or
	// constructor signature with conflicting parameter metadata.
	E_DUPLICATE_EXECUTABLE = code("E_DUPLICATE_EXECUTABLE", CategoryDescriptor)

	// E_GROUP_SEQUENCE_CYCLE indicates a declared group sequence is
	// self-referential or forms a cycle through nested sequence kinds.
	E_GROUP_SEQUENCE_CYCLE = code("E_GROUP_SEQUENCE_CYCLE", CategoryDescriptor)
)

// Configuration codes (spec.md §6).
var (
	// E_INVALID_CACHE_SIZE indicates constraints.cache.size failed to parse as
	// a positive integer.
	E_INVALID_CACHE_SIZE = code("E_INVALID_CACHE_SIZE", CategoryConfig)
)

// allCodes contains all defined codes for AllCodes() and uniqueness verification.
var allCodes = []Code{
	// Sentinel
	E_LIMIT_REACHED,
	E_INTERNAL,
	// Constraint
	E_OVERRIDE_CONFLICT,
	E_OVERRIDE_TARGET_AMBIGUOUS,
	E_TARGET_MISMATCH,
	E_UNWRAP_SKIP_CONFLICT,
	// Descriptor
	E_ANNOTATION_BEHAVIOR_CONFLICT,
	E_DUPLICATE_PROPERTY,
	E_DUPLICATE_EXECUTABLE,
	E_GROUP_SEQUENCE_CYCLE,
	// Config
	E_INVALID_CACHE_SIZE,
}

// AllCodes returns all defined codes.
//
// This function is useful for tooling and testing. The returned slice is a
// copy; modifications do not affect the original.
func AllCodes() []Code {
	result := make([]Code, len(allCodes))
	copy(result, allCodes)
	return result
}

// CodesByCategory returns codes in the given category.
//
// The returned slice is a new allocation; modifications do not affect
// internal state.
func CodesByCategory(cat CodeCategory) []Code {
	var result []Code
	for _, c := range allCodes {
		if c.cat == cat {
			result = append(result, c)
		}
	}
	return result
}

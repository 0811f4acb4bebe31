package builder

import (
	"fmt"
	"reflect"

	"github.com/ductile-labs/beanval/location"
)

// DefinitionErrorKind classifies a [DefinitionError], matching the
// "Definition error" row of spec.md §7's taxonomy for the builder
// pipeline (as distinct from [constraint.DefinitionError], which covers
// the annotation-composition subsystem).
type DefinitionErrorKind int

const (
	// KindMalformedTag: a struct tag's constraint specification could not
	// be parsed.
	KindMalformedTag DefinitionErrorKind = iota
	// KindUnknownKind: a mapping-document constraint references a kind
	// with no registered attribute shape.
	KindUnknownKind
	// KindBehaviourConflict: sibling sources disagree on a non-ABSTAIN
	// annotation-behaviour during composite consensus merge.
	KindBehaviourConflict
	// KindDuplicateProperty: two sources declare the same property name
	// with incompatible cascade or group-conversion metadata.
	KindDuplicateProperty
	// KindDuplicateExecutable: two sources declare the same method or
	// constructor signature with conflicting parameter metadata.
	KindDuplicateExecutable
	// KindMalformedDocument: a JSONC mapping document could not be parsed
	// at all (as distinct from KindMalformedTag, which covers one struct
	// tag's constraint specification).
	KindMalformedDocument
)

// String returns a human-readable label.
func (k DefinitionErrorKind) String() string {
	switch k {
	case KindMalformedTag:
		return "malformed tag"
	case KindUnknownKind:
		return "unknown constraint kind"
	case KindBehaviourConflict:
		return "annotation-behaviour conflict"
	case KindDuplicateProperty:
		return "duplicate property"
	case KindDuplicateExecutable:
		return "duplicate executable"
	case KindMalformedDocument:
		return "malformed mapping document"
	default:
		return "unknown"
	}
}

// DefinitionError reports a malformed or conflicting builder-pipeline
// declaration. Per spec.md §7, definition errors are fatal to the
// descriptor build.
type DefinitionError struct {
	Kind   DefinitionErrorKind
	Type   reflect.Type
	Detail string

	// Span locates the error within a parsed mapping document, when
	// known. Zero for struct-tag and cross-source conflict errors, which
	// have no source-file position to report.
	Span location.Span
}

func (e *DefinitionError) Error() string {
	if !e.Span.IsZero() {
		return fmt.Sprintf("builder: %s at %s: %s", e.Kind, e.Span, e.Detail)
	}
	if e.Type == nil {
		return fmt.Sprintf("builder: %s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("builder: %s for %s: %s", e.Kind, e.Type, e.Detail)
}

package validator

import (
	"fmt"
	"reflect"

	"github.com/ductile-labs/beanval/constraint"
)

// UnexpectedTypeErrorKind classifies an [UnexpectedTypeError].
type UnexpectedTypeErrorKind uint8

const (
	// KindNoValidator: no registered validator applies to the value's type.
	KindNoValidator UnexpectedTypeErrorKind = iota
	// KindAmbiguous: more than one registered validator applies and none
	// dominates the others.
	KindAmbiguous
)

// String returns a human-readable label.
func (k UnexpectedTypeErrorKind) String() string {
	switch k {
	case KindNoValidator:
		return "no validator"
	case KindAmbiguous:
		return "ambiguous validator resolution"
	default:
		return "unknown"
	}
}

// UnexpectedTypeError reports that validator resolution for a constraint
// kind and value type failed, per spec.md §7's job-fatal taxonomy. It is
// returned, never panicked, and aborts the current job.
type UnexpectedTypeError struct {
	Kind         UnexpectedTypeErrorKind
	Constraint   constraint.Kind
	ValueType    reflect.Type
	Alternatives []reflect.Type
}

func (e *UnexpectedTypeError) Error() string {
	switch e.Kind {
	case KindNoValidator:
		return fmt.Sprintf("validator: no validator registered for constraint %s applicable to type %s", e.Constraint, e.ValueType)
	case KindAmbiguous:
		return fmt.Sprintf("validator: ambiguous validator resolution for constraint %s on type %s: %d equally specific candidates", e.Constraint, e.ValueType, len(e.Alternatives))
	default:
		return fmt.Sprintf("validator: unexpected type error for constraint %s on type %s", e.Constraint, e.ValueType)
	}
}

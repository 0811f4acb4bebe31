package engine

import (
	"errors"
	"fmt"

	"github.com/ductile-labs/beanval/path"
)

// CollaboratorErrorKind classifies a [CollaboratorError], following the
// teacher's InternalError/InternalErrorKind idiom: a closed, typed enum
// naming which host-supplied collaborator misbehaved.
type CollaboratorErrorKind uint8

const (
	// KindTraversableResolver: a spi.TraversableResolver call returned or
	// (if it were allowed to) panicked with an error.
	KindTraversableResolver CollaboratorErrorKind = iota

	// KindValueExtractor: a spi.ValueExtractor.ExtractValues call failed.
	KindValueExtractor

	// KindValidatorInitialize: a spi.ConstraintValidator.Initialize call
	// failed. Per spec.md §7 this is a definition error — fatal to the
	// job, surfaced through the same collaborator-error type as the other
	// job-time collaborator failures since engine owns no diag code of
	// its own (see diag/code.go's closed category set).
	KindValidatorInitialize

	// KindValidatorIsValid: a spi.ConstraintValidator.IsValid call failed.
	KindValidatorIsValid

	// KindDescriptorBuild: resolving a cascaded bean's descriptor produced
	// a diag.Result with unresolved errors.
	KindDescriptorBuild
)

// String returns a human-readable label.
func (k CollaboratorErrorKind) String() string {
	switch k {
	case KindTraversableResolver:
		return "traversable resolver"
	case KindValueExtractor:
		return "value extractor"
	case KindValidatorInitialize:
		return "validator initialize"
	case KindValidatorIsValid:
		return "validator is-valid"
	case KindDescriptorBuild:
		return "descriptor build"
	default:
		return "unknown"
	}
}

// CollaboratorError reports that a host-supplied collaborator (a
// TraversableResolver, ValueExtractor, or ConstraintValidator) failed
// during a job, per spec.md §7's "Validation error (collaborator)" row.
// It aborts the job that triggered it.
type CollaboratorError struct {
	Kind  CollaboratorErrorKind
	Path  path.Path
	Cause error
}

func (e *CollaboratorError) Error() string {
	if e.Path.IsRoot() {
		return fmt.Sprintf("engine: %s failed: %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("engine: %s failed at %s: %v", e.Kind, e.Path, e.Cause)
}

func (e *CollaboratorError) Unwrap() error { return e.Cause }

// ErrJobAlreadyUsed is returned when a [Job]'s validate method is called
// more than once, per spec.md §5's single-use job contract.
var ErrJobAlreadyUsed = errors.New("engine: job already realized its result set")

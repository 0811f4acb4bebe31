package spi

import (
	"reflect"
	"time"

	"github.com/ductile-labs/beanval/constraint"
	"github.com/ductile-labs/beanval/path"
)

// TraversableResolver decides whether a property of an object the engine
// is currently visiting may be read (IsReachable) and, if readable,
// whether it should be cascaded into (IsCascadable). Hosts that expose
// lazy-loaded properties (an ORM proxy, a partially-hydrated DTO) implement
// this to avoid forcing a load the caller did not ask for.
type TraversableResolver interface {
	// IsReachable reports whether traversableProperty of traversableObject
	// may be accessed at all, given the root bean's type and the path
	// traveled to reach traversableObject.
	IsReachable(traversableObject any, traversableProperty path.Node, rootBeanType reflect.Type, pathToTraversableObject path.Path, elementKind constraint.ElementKind) bool

	// IsCascadable reports whether traversableProperty, once reached,
	// should be cascaded into for nested validation.
	IsCascadable(traversableObject any, traversableProperty path.Node, rootBeanType reflect.Type, pathToTraversableObject path.Path, elementKind constraint.ElementKind) bool
}

// ValueExtractor unwraps the element values of a container type (a slice,
// map, optional-like wrapper, or any host-defined container) so the engine
// can cascade into them. Extract calls emit one (node, value) pair per
// contained element; for indexed containers node is typically an
// IndexNode, for keyed containers a KeyNode.
type ValueExtractor interface {
	// ExtractValues extracts the element values of container, invoking
	// receive once per element with the path node describing that
	// element's position within container.
	ExtractValues(container any, receive func(node path.Node, value any)) error
}

// ValueExtractors resolves the registered ValueExtractor for a given
// container type.
type ValueExtractors interface {
	ExtractorFor(containerType reflect.Type) (ValueExtractor, bool)
}

// ConstraintValidator implements the actual validation logic for a
// constraint kind. Initialize is called once per resolved occurrence with
// the constraint's attributes; IsValid is called once per validated value.
type ConstraintValidator interface {
	// Initialize configures the validator instance from the occurrence's
	// descriptor (its attributes, groups, payloads). Called once before
	// any IsValid call for that occurrence.
	Initialize(descriptor *constraint.Descriptor) error

	// IsValid reports whether value satisfies the constraint. ctx grants
	// access to the validator's enclosing bean, disabling the default
	// constraint violation, and adding custom violations.
	IsValid(value any, ctx ValidationContext) (bool, error)
}

// ValidationContext is the callback surface a ConstraintValidator receives
// during IsValid, allowing it to suppress the default violation and/or
// build its own.
type ValidationContext interface {
	// DisableDefaultConstraintViolation suppresses the violation that
	// would otherwise be built from the constraint's own message template
	// on an IsValid false return.
	DisableDefaultConstraintViolation()

	// BuildConstraintViolationWithTemplate starts a fluent violation
	// builder seeded with the given message template, rooted at the
	// constraint's own property path.
	BuildConstraintViolationWithTemplate(messageTemplate string) ViolationBuilder
}

// ViolationBuilder is the minimal fluent surface ValidationContext exposes
// to constraint validators; the full builder lives in package violation.
type ViolationBuilder interface {
	AddPropertyNode(name string) ViolationBuilder
	AddBeanNode() ViolationBuilder
	AddContainerElementNode(name string) ViolationBuilder
	AtIndex(i int) ViolationBuilder
	AtKey(key any) ViolationBuilder
	AddConstraintViolation()
}

// MessageInterpolator resolves a constraint's raw message template
// (attribute references, resource-bundle lookups, EL-like expressions) to
// the final human-readable message for one violation. No implementation
// ships in this module; hosts supply their own.
type MessageInterpolator interface {
	Interpolate(messageTemplate string, attributes map[string]any, validatedValue any) (string, error)
}

// ClockProvider supplies the reference instant for time-relative
// constraints (e.g. "must be in the past/future"), allowing deterministic
// testing.
type ClockProvider interface {
	Now() time.Time
}

// ParameterNameProvider resolves human-readable parameter names for an
// executable, used when building violation paths for cross-parameter and
// per-parameter constraints. Go's reflect package does not carry parameter
// names, so this is always host-supplied (commonly generated at build time
// from source, or a fixed "arg0, arg1, ..." fallback).
type ParameterNameProvider interface {
	ParameterNames(method reflect.Method) []string
}

package builder

import (
	"reflect"

	"github.com/ductile-labs/beanval/constraint"
	"github.com/ductile-labs/beanval/descriptor"
)

// Behaviour controls how a source's declarations interact with those of
// other sources at the same hierarchy level or sibling position, per
// spec.md §4.3's "annotation-behaviour" control.
type Behaviour uint8

const (
	// BehaviourMerge combines this source's declarations with the other
	// side's rather than replacing them.
	BehaviourMerge Behaviour = iota
	// BehaviourOverride replaces the other side's declarations entirely.
	BehaviourOverride
	// BehaviourAbstain contributes nothing at this level; declarations flow
	// through from the other side unchanged.
	BehaviourAbstain
)

// String returns the behaviour's declared name, matching the JSONC
// mapping-document vocabulary (MERGE/OVERRIDE/ABSTAIN).
func (b Behaviour) String() string {
	switch b {
	case BehaviourMerge:
		return "MERGE"
	case BehaviourOverride:
		return "OVERRIDE"
	case BehaviourAbstain:
		return "ABSTAIN"
	default:
		return "UNKNOWN"
	}
}

// ElementSource is the uniform per-element metadata shape shared by
// properties, parameters, and return values: own constraints, cascade
// flag, group conversions, and nested container-element descriptors.
type ElementSource struct {
	ElementType       reflect.Type
	Constraints       []*constraint.Descriptor
	IsCascade         bool
	GroupConversions  []descriptor.GroupConversion
	ContainerElements map[descriptor.ContainerElementKey]*descriptor.ContainerElementDescriptor
}

// ParameterSource is an [ElementSource] for one parameter of an
// [ExecutableSource], carrying the parameter's name and index.
type ParameterSource struct {
	Name  string
	Index int
	ElementSource
}

// ExecutableSource is the uniform per-method/constructor metadata shape a
// [Source] produces: its parameters, return value, and cross-parameter
// constraints, keyed by signature.
type ExecutableSource struct {
	Name                      string
	ParameterTypes            []reflect.Type
	Parameters                []ParameterSource
	ReturnValue               ElementSource
	CrossParameterConstraints []*constraint.Descriptor
}

// executableKey identifies an [ExecutableSource] by signature for merge
// lookups, mirroring descriptor's own (unexported) executableKey.
type executableKey struct {
	name   string
	params string
}

func newExecutableKey(name string, paramTypes []reflect.Type) executableKey {
	s := name
	for _, t := range paramTypes {
		s += "," + t.String()
	}
	return executableKey{name: name, params: s}
}

// ForBean is the uniform descriptor-source shape every pipeline stage
// produces and consumes, per spec.md §4.3's "each expose a uniform
// ForBean interface" — realized here as a plain value type rather than an
// interface, since every source, combinator, and merge step operates on
// the same concrete shape.
type ForBean struct {
	Type             reflect.Type
	TypeConstraints  []*constraint.Descriptor
	Properties       map[string]ElementSource
	Methods          map[executableKey]ExecutableSource
	Constructors     map[executableKey]ExecutableSource
	GroupSequence    []constraint.Group
	HasGroupSequence bool

	// Behaviour is this ForBean's own annotation-behaviour declaration,
	// consulted by [Hierarchy] and [Composite] when merging it against
	// other levels or siblings.
	Behaviour Behaviour
}

// newForBean returns an empty ForBean for t.
func newForBean(t reflect.Type) ForBean {
	return ForBean{
		Type:         t,
		Properties:   make(map[string]ElementSource),
		Methods:      make(map[executableKey]ExecutableSource),
		Constructors: make(map[executableKey]ExecutableSource),
	}
}

// Source produces a [ForBean] describing t's own (non-inherited)
// declarative metadata.
type Source interface {
	ForBean(t reflect.Type) (ForBean, error)
}

package descriptor

import (
	"reflect"
	"slices"

	"github.com/ductile-labs/beanval/constraint"
)

// ParameterDescriptor is the immutable-after-build metadata for one
// parameter of an [ExecutableDescriptor].
type ParameterDescriptor struct {
	name             string
	index            int
	elementType      reflect.Type
	constraints      []*constraint.Descriptor
	isCascade        bool
	groupConversions []GroupConversion
	containerElems   map[ContainerElementKey]*ContainerElementDescriptor
}

func (p *ParameterDescriptor) Name() string             { return p.name }
func (p *ParameterDescriptor) Index() int                { return p.index }
func (p *ParameterDescriptor) ElementType() reflect.Type { return p.elementType }
func (p *ParameterDescriptor) IsCascade() bool           { return p.isCascade }

func (p *ParameterDescriptor) Constraints() []*constraint.Descriptor {
	return slices.Clone(p.constraints)
}

func (p *ParameterDescriptor) GroupConversions() []GroupConversion {
	return slices.Clone(p.groupConversions)
}

func (p *ParameterDescriptor) ContainerElement(key ContainerElementKey) (*ContainerElementDescriptor, bool) {
	ce, ok := p.containerElems[key]
	return ce, ok
}

// ReturnValueDescriptor is the immutable-after-build metadata for an
// executable's return value.
type ReturnValueDescriptor struct {
	elementType      reflect.Type
	constraints      []*constraint.Descriptor
	isCascade        bool
	groupConversions []GroupConversion
	containerElems   map[ContainerElementKey]*ContainerElementDescriptor
}

func (r *ReturnValueDescriptor) ElementType() reflect.Type { return r.elementType }
func (r *ReturnValueDescriptor) IsCascade() bool           { return r.isCascade }

func (r *ReturnValueDescriptor) Constraints() []*constraint.Descriptor {
	return slices.Clone(r.constraints)
}

func (r *ReturnValueDescriptor) GroupConversions() []GroupConversion {
	return slices.Clone(r.groupConversions)
}

func (r *ReturnValueDescriptor) ContainerElement(key ContainerElementKey) (*ContainerElementDescriptor, bool) {
	ce, ok := r.containerElems[key]
	return ce, ok
}

// ExecutableDescriptor is the immutable-after-build metadata for one
// constrained method or constructor, per spec.md §3: its parameters, its
// return value, and any cross-parameter constraints evaluated against the
// parameter array as a whole.
type ExecutableDescriptor struct {
	name                      string
	parameterTypes            []reflect.Type
	parameters                []*ParameterDescriptor
	returnValue               *ReturnValueDescriptor
	crossParameterConstraints []*constraint.Descriptor
}

// Name returns the executable's declared name (method name, or a fixed
// constructor marker for constructors).
func (e *ExecutableDescriptor) Name() string { return e.name }

// ParameterTypes returns the executable's declared parameter types, in
// order — together with Name this is the executable's signature.
func (e *ExecutableDescriptor) ParameterTypes() []reflect.Type {
	return slices.Clone(e.parameterTypes)
}

// Parameters returns the executable's per-parameter descriptors, in
// declaration order.
func (e *ExecutableDescriptor) Parameters() []*ParameterDescriptor {
	return slices.Clone(e.parameters)
}

// ReturnValue returns the executable's return-value descriptor.
func (e *ExecutableDescriptor) ReturnValue() *ReturnValueDescriptor { return e.returnValue }

// CrossParameterConstraints returns the executable's cross-parameter
// constraint descriptors, in declaration order.
func (e *ExecutableDescriptor) CrossParameterConstraints() []*constraint.Descriptor {
	return slices.Clone(e.crossParameterConstraints)
}

// ExecutableBuilder constructs an [ExecutableDescriptor].
type ExecutableBuilder struct {
	e ExecutableDescriptor
}

// NewExecutableBuilder starts building the named executable with the
// given parameter types (its signature).
func NewExecutableBuilder(name string, parameterTypes []reflect.Type) *ExecutableBuilder {
	return &ExecutableBuilder{e: ExecutableDescriptor{
		name:           name,
		parameterTypes: append([]reflect.Type(nil), parameterTypes...),
		returnValue:    &ReturnValueDescriptor{containerElems: map[ContainerElementKey]*ContainerElementDescriptor{}},
	}}
}

// WithParameter appends a parameter descriptor. Parameters must be added
// in index order matching parameterTypes.
func (b *ExecutableBuilder) WithParameter(p *ParameterDescriptor) *ExecutableBuilder {
	b.e.parameters = append(b.e.parameters, p)
	return b
}

// WithReturnValue sets the return-value descriptor.
func (b *ExecutableBuilder) WithReturnValue(r *ReturnValueDescriptor) *ExecutableBuilder {
	b.e.returnValue = r
	return b
}

// WithCrossParameterConstraints appends cross-parameter constraint
// descriptors.
func (b *ExecutableBuilder) WithCrossParameterConstraints(cs ...*constraint.Descriptor) *ExecutableBuilder {
	b.e.crossParameterConstraints = append(b.e.crossParameterConstraints, cs...)
	return b
}

// Build finalizes the ExecutableDescriptor.
func (b *ExecutableBuilder) Build() *ExecutableDescriptor {
	out := b.e
	out.parameterTypes = slices.Clone(b.e.parameterTypes)
	out.parameters = slices.Clone(b.e.parameters)
	out.crossParameterConstraints = slices.Clone(b.e.crossParameterConstraints)
	return &out
}

// NewParameterDescriptor builds a [ParameterDescriptor] directly (no
// separate builder type: parameters carry no invariant beyond the shared
// container-element/constraint shape already enforced by their callers).
func NewParameterDescriptor(name string, index int, elementType reflect.Type, constraints []*constraint.Descriptor, isCascade bool, groupConversions []GroupConversion, containerElems map[ContainerElementKey]*ContainerElementDescriptor) *ParameterDescriptor {
	ce := make(map[ContainerElementKey]*ContainerElementDescriptor, len(containerElems))
	for k, v := range containerElems {
		ce[k] = v
	}
	return &ParameterDescriptor{
		name:             name,
		index:            index,
		elementType:      elementType,
		constraints:      slices.Clone(constraints),
		isCascade:        isCascade,
		groupConversions: slices.Clone(groupConversions),
		containerElems:   ce,
	}
}

// NewReturnValueDescriptor builds a [ReturnValueDescriptor] directly.
func NewReturnValueDescriptor(elementType reflect.Type, constraints []*constraint.Descriptor, isCascade bool, groupConversions []GroupConversion, containerElems map[ContainerElementKey]*ContainerElementDescriptor) *ReturnValueDescriptor {
	ce := make(map[ContainerElementKey]*ContainerElementDescriptor, len(containerElems))
	for k, v := range containerElems {
		ce[k] = v
	}
	return &ReturnValueDescriptor{
		elementType:      elementType,
		constraints:      slices.Clone(constraints),
		isCascade:        isCascade,
		groupConversions: slices.Clone(groupConversions),
		containerElems:   ce,
	}
}

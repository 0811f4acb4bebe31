package descriptor

import (
	"reflect"
	"slices"

	"github.com/ductile-labs/beanval/constraint"
)

// GroupConversion redirects a cascaded element's groups: when cascading
// through an element bearing this conversion, an occurrence of From among
// the groups passed to the child frame is replaced with To, per spec.md
// §4.5's "Group conversions".
type GroupConversion struct {
	From constraint.Group
	To   constraint.Group
}

// ContainerElementKey identifies one nested container-element descriptor
// slot of a property or parameter: the container's declared static type
// and which of its type arguments the slot corresponds to (0 for a slice's
// element type, 0 or 1 for a map's key/value), per spec.md §3's "keyed by
// (type-arg-index, declared-container-type)".
type ContainerElementKey struct {
	ContainerType reflect.Type
	TypeArgIndex  int
}

// PropertyDescriptor is the immutable-after-build metadata for one
// constrained bean property, per spec.md §3.
type PropertyDescriptor struct {
	name             string
	elementType      reflect.Type
	constraints      []*constraint.Descriptor
	isCascade        bool
	groupConversions []GroupConversion
	containerElems   map[ContainerElementKey]*ContainerElementDescriptor
}

// Name returns the property's name.
func (p *PropertyDescriptor) Name() string { return p.name }

// ElementType returns the property's static Go type.
func (p *PropertyDescriptor) ElementType() reflect.Type { return p.elementType }

// Constraints returns the property's own constraint descriptors, in
// declaration order.
func (p *PropertyDescriptor) Constraints() []*constraint.Descriptor {
	return slices.Clone(p.constraints)
}

// IsCascade reports whether this property's value is cascaded into for
// nested validation.
func (p *PropertyDescriptor) IsCascade() bool { return p.isCascade }

// GroupConversions returns the property's declared group-conversion set.
func (p *PropertyDescriptor) GroupConversions() []GroupConversion {
	return slices.Clone(p.groupConversions)
}

// ContainerElement returns the nested container-element descriptor for
// key, if any.
func (p *PropertyDescriptor) ContainerElement(key ContainerElementKey) (*ContainerElementDescriptor, bool) {
	ce, ok := p.containerElems[key]
	return ce, ok
}

// ContainerElements returns all nested container-element descriptors.
func (p *PropertyDescriptor) ContainerElements() map[ContainerElementKey]*ContainerElementDescriptor {
	out := make(map[ContainerElementKey]*ContainerElementDescriptor, len(p.containerElems))
	for k, v := range p.containerElems {
		out[k] = v
	}
	return out
}

// PropertyBuilder constructs a [PropertyDescriptor].
type PropertyBuilder struct {
	p PropertyDescriptor
}

// NewPropertyBuilder starts building the named property.
func NewPropertyBuilder(name string, elementType reflect.Type) *PropertyBuilder {
	return &PropertyBuilder{p: PropertyDescriptor{
		name:           name,
		elementType:    elementType,
		containerElems: make(map[ContainerElementKey]*ContainerElementDescriptor),
	}}
}

// WithConstraints appends constraint descriptors.
func (b *PropertyBuilder) WithConstraints(cs ...*constraint.Descriptor) *PropertyBuilder {
	b.p.constraints = append(b.p.constraints, cs...)
	return b
}

// WithCascade marks the property as cascaded.
func (b *PropertyBuilder) WithCascade(cascade bool) *PropertyBuilder {
	b.p.isCascade = cascade
	return b
}

// WithGroupConversion adds a group-conversion entry.
func (b *PropertyBuilder) WithGroupConversion(gc GroupConversion) *PropertyBuilder {
	b.p.groupConversions = append(b.p.groupConversions, gc)
	return b
}

// WithContainerElement attaches a nested container-element descriptor.
func (b *PropertyBuilder) WithContainerElement(key ContainerElementKey, ce *ContainerElementDescriptor) *PropertyBuilder {
	b.p.containerElems[key] = ce
	return b
}

// Build finalizes the PropertyDescriptor.
func (b *PropertyBuilder) Build() *PropertyDescriptor {
	out := b.p
	out.constraints = slices.Clone(b.p.constraints)
	out.groupConversions = slices.Clone(b.p.groupConversions)
	out.containerElems = make(map[ContainerElementKey]*ContainerElementDescriptor, len(b.p.containerElems))
	for k, v := range b.p.containerElems {
		out.containerElems[k] = v
	}
	return &out
}

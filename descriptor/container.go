package descriptor

import (
	"reflect"
	"slices"

	"github.com/ductile-labs/beanval/constraint"
)

// ContainerElementDescriptor is the immutable-after-build metadata for one
// container-element slot (e.g. a slice's element type, a map's key or
// value type), per spec.md §3. Nested container elements (a slice of
// slices, a map of lists) are represented recursively via their own
// ContainerElements, keyed the same way as [PropertyDescriptor].
type ContainerElementDescriptor struct {
	containerType    reflect.Type
	typeArgIndex     int
	elementType      reflect.Type
	constraints      []*constraint.Descriptor
	isCascade        bool
	groupConversions []GroupConversion
	containerElems   map[ContainerElementKey]*ContainerElementDescriptor
}

// ContainerType returns the declared static type of the enclosing
// container.
func (c *ContainerElementDescriptor) ContainerType() reflect.Type { return c.containerType }

// TypeArgIndex returns which of the container's type arguments this
// descriptor describes.
func (c *ContainerElementDescriptor) TypeArgIndex() int { return c.typeArgIndex }

// ElementType returns the static Go type of the contained element.
func (c *ContainerElementDescriptor) ElementType() reflect.Type { return c.elementType }

// Constraints returns the element's own constraint descriptors, in
// declaration order.
func (c *ContainerElementDescriptor) Constraints() []*constraint.Descriptor {
	return slices.Clone(c.constraints)
}

// IsCascade reports whether this element's value is cascaded into for
// nested validation.
func (c *ContainerElementDescriptor) IsCascade() bool { return c.isCascade }

// GroupConversions returns the element's declared group-conversion set.
func (c *ContainerElementDescriptor) GroupConversions() []GroupConversion {
	return slices.Clone(c.groupConversions)
}

// ContainerElement returns the nested container-element descriptor for
// key, if any.
func (c *ContainerElementDescriptor) ContainerElement(key ContainerElementKey) (*ContainerElementDescriptor, bool) {
	ce, ok := c.containerElems[key]
	return ce, ok
}

// ContainerElementBuilder constructs a [ContainerElementDescriptor].
type ContainerElementBuilder struct {
	c ContainerElementDescriptor
}

// NewContainerElementBuilder starts building a container-element
// descriptor for the given container type and type-argument index.
func NewContainerElementBuilder(containerType reflect.Type, typeArgIndex int, elementType reflect.Type) *ContainerElementBuilder {
	return &ContainerElementBuilder{c: ContainerElementDescriptor{
		containerType:  containerType,
		typeArgIndex:   typeArgIndex,
		elementType:    elementType,
		containerElems: make(map[ContainerElementKey]*ContainerElementDescriptor),
	}}
}

// WithConstraints appends constraint descriptors.
func (b *ContainerElementBuilder) WithConstraints(cs ...*constraint.Descriptor) *ContainerElementBuilder {
	b.c.constraints = append(b.c.constraints, cs...)
	return b
}

// WithCascade marks the element as cascaded.
func (b *ContainerElementBuilder) WithCascade(cascade bool) *ContainerElementBuilder {
	b.c.isCascade = cascade
	return b
}

// WithGroupConversion adds a group-conversion entry.
func (b *ContainerElementBuilder) WithGroupConversion(gc GroupConversion) *ContainerElementBuilder {
	b.c.groupConversions = append(b.c.groupConversions, gc)
	return b
}

// WithContainerElement attaches a nested container-element descriptor.
func (b *ContainerElementBuilder) WithContainerElement(key ContainerElementKey, ce *ContainerElementDescriptor) *ContainerElementBuilder {
	b.c.containerElems[key] = ce
	return b
}

// Build finalizes the ContainerElementDescriptor.
func (b *ContainerElementBuilder) Build() *ContainerElementDescriptor {
	out := b.c
	out.constraints = slices.Clone(b.c.constraints)
	out.groupConversions = slices.Clone(b.c.groupConversions)
	out.containerElems = make(map[ContainerElementKey]*ContainerElementDescriptor, len(b.c.containerElems))
	for k, v := range b.c.containerElems {
		out.containerElems[k] = v
	}
	return &out
}

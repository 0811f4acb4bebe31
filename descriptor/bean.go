package descriptor

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/ductile-labs/beanval/constraint"
)

// executableKey identifies a method or constructor by name and parameter
// types — an executable's signature, per spec.md §3.
type executableKey struct {
	name   string
	params string // concatenated parameter type strings; comparable map key
}

func newExecutableKey(name string, paramTypes []reflect.Type) executableKey {
	s := name
	for _, t := range paramTypes {
		s += "," + t.String()
	}
	return executableKey{name: name, params: s}
}

// BeanDescriptor is the immutable-after-build per-type metadata graph from
// spec.md §3: constraints declared on the type itself, its constrained
// properties, constrained methods and constructors, and an optional
// declared group sequence.
type BeanDescriptor struct {
	beanType      reflect.Type
	constraints   []*constraint.Descriptor
	properties    map[string]*PropertyDescriptor
	methods       map[executableKey]*ExecutableDescriptor
	constructors  map[executableKey]*ExecutableDescriptor
	groupSequence []constraint.Group
}

// BeanType returns the Go type this descriptor describes.
func (d *BeanDescriptor) BeanType() reflect.Type { return d.beanType }

// Constraints returns the type-level constraint descriptors, in
// declaration order.
func (d *BeanDescriptor) Constraints() []*constraint.Descriptor {
	return slices.Clone(d.constraints)
}

// Property returns the named property's descriptor, if constrained.
func (d *BeanDescriptor) Property(name string) (*PropertyDescriptor, bool) {
	p, ok := d.properties[name]
	return p, ok
}

// Properties returns all constrained property descriptors, in
// lexicographic name order for deterministic iteration.
func (d *BeanDescriptor) Properties() []*PropertyDescriptor {
	names := make([]string, 0, len(d.properties))
	for name := range d.properties {
		names = append(names, name)
	}
	slices.Sort(names)
	out := make([]*PropertyDescriptor, len(names))
	for i, name := range names {
		out[i] = d.properties[name]
	}
	return out
}

// Method returns the constrained method descriptor matching name and
// parameterTypes, if any.
func (d *BeanDescriptor) Method(name string, parameterTypes []reflect.Type) (*ExecutableDescriptor, bool) {
	e, ok := d.methods[newExecutableKey(name, parameterTypes)]
	return e, ok
}

// Constructor returns the constrained constructor descriptor matching
// parameterTypes, if any. Constructors are keyed under the fixed name
// "<init>" since Go has no named-constructor reflection primitive.
func (d *BeanDescriptor) Constructor(parameterTypes []reflect.Type) (*ExecutableDescriptor, bool) {
	e, ok := d.constructors[newExecutableKey(constructorName, parameterTypes)]
	return e, ok
}

// GroupSequence returns the type's declared group sequence, or nil if
// none was declared (in which case Default does not redirect for this
// bean).
func (d *BeanDescriptor) GroupSequence() []constraint.Group {
	return slices.Clone(d.groupSequence)
}

// HasGroupSequence reports whether this type declared a group sequence.
func (d *BeanDescriptor) HasGroupSequence() bool { return d.groupSequence != nil }

// constructorName is the fixed executable name under which constructor
// descriptors are keyed.
const constructorName = "<init>"

// BeanBuilder constructs a [BeanDescriptor].
type BeanBuilder struct {
	d   BeanDescriptor
	err error
}

// NewBeanBuilder starts building the descriptor for beanType.
func NewBeanBuilder(beanType reflect.Type) *BeanBuilder {
	return &BeanBuilder{d: BeanDescriptor{
		beanType:     beanType,
		properties:   make(map[string]*PropertyDescriptor),
		methods:      make(map[executableKey]*ExecutableDescriptor),
		constructors: make(map[executableKey]*ExecutableDescriptor),
	}}
}

// WithConstraints appends type-level constraint descriptors.
func (b *BeanBuilder) WithConstraints(cs ...*constraint.Descriptor) *BeanBuilder {
	b.d.constraints = append(b.d.constraints, cs...)
	return b
}

// WithProperty attaches a property descriptor. Attaching two properties
// with the same name is a definition error, surfaced at Build.
func (b *BeanBuilder) WithProperty(p *PropertyDescriptor) *BeanBuilder {
	if _, dup := b.d.properties[p.Name()]; dup && b.err == nil {
		b.err = fmt.Errorf("descriptor: duplicate property %q on %s", p.Name(), b.d.beanType)
		return b
	}
	b.d.properties[p.Name()] = p
	return b
}

// WithMethod attaches a constrained method descriptor.
func (b *BeanBuilder) WithMethod(e *ExecutableDescriptor) *BeanBuilder {
	key := newExecutableKey(e.Name(), e.ParameterTypes())
	if _, dup := b.d.methods[key]; dup && b.err == nil {
		b.err = fmt.Errorf("descriptor: duplicate method %s on %s", e.Name(), b.d.beanType)
		return b
	}
	b.d.methods[key] = e
	return b
}

// WithConstructor attaches a constrained constructor descriptor.
func (b *BeanBuilder) WithConstructor(e *ExecutableDescriptor) *BeanBuilder {
	key := newExecutableKey(constructorName, e.ParameterTypes())
	if _, dup := b.d.constructors[key]; dup && b.err == nil {
		b.err = fmt.Errorf("descriptor: duplicate constructor on %s", b.d.beanType)
		return b
	}
	b.d.constructors[key] = e
	return b
}

// WithGroupSequence sets the type's declared group sequence.
func (b *BeanBuilder) WithGroupSequence(seq ...constraint.Group) *BeanBuilder {
	b.d.groupSequence = append([]constraint.Group(nil), seq...)
	return b
}

// Build finalizes the BeanDescriptor, or returns the first definition
// error encountered (duplicate property/method/constructor).
func (b *BeanBuilder) Build() (*BeanDescriptor, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := b.d
	out.constraints = slices.Clone(b.d.constraints)
	out.properties = make(map[string]*PropertyDescriptor, len(b.d.properties))
	for k, v := range b.d.properties {
		out.properties[k] = v
	}
	out.methods = make(map[executableKey]*ExecutableDescriptor, len(b.d.methods))
	for k, v := range b.d.methods {
		out.methods[k] = v
	}
	out.constructors = make(map[executableKey]*ExecutableDescriptor, len(b.d.constructors))
	for k, v := range b.d.constructors {
		out.constructors[k] = v
	}
	return &out, nil
}

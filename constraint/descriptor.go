package constraint

import (
	"maps"

	"github.com/ductile-labs/beanval/immutable"
)

// ComposingConstraint pairs a composing [Descriptor] with the attribute
// values that were copied into it from the parent occurrence via an
// attribute-override declaration, per spec.md §4.1.
type ComposingConstraint struct {
	Descriptor *Descriptor

	// Overridden records which attribute names on Descriptor were set by an
	// override mapping (as opposed to the composing kind's own declared
	// defaults), keyed by the composing attribute name.
	Overridden map[string]bool
}

// Descriptor is the immutable-after-build metadata for one declared
// constraint occurrence, per spec.md §3.
type Descriptor struct {
	kind                    Kind
	attributes              immutable.Properties
	groups                  []Group
	payloads                map[Payload]bool
	validatorIDs            []string
	composing               []ComposingConstraint
	reportAsSingleViolation bool
	applyTo                 ApplyTo
	scope                   Scope
	declaredOn              ElementKind
	message                 string
}

// Kind returns the constraint's declarative identity.
func (d *Descriptor) Kind() Kind { return d.kind }

// Attributes returns a defensive copy of the constraint's attribute map.
func (d *Descriptor) Attributes() map[string]any {
	return d.attributes.Clone()
}

// Attribute returns the named attribute value and whether it was present.
func (d *Descriptor) Attribute(name string) (any, bool) {
	v, ok := d.attributes.Get(name)
	if !ok {
		return nil, false
	}
	return v.Unwrap(), true
}

// Groups returns the constraint's effective (non-empty) group set.
func (d *Descriptor) Groups() []Group {
	out := make([]Group, len(d.groups))
	copy(out, d.groups)
	return out
}

// HasGroup reports whether g is in the constraint's effective group set.
func (d *Descriptor) HasGroup(g Group) bool {
	for _, own := range d.groups {
		if own == g {
			return true
		}
	}
	return false
}

// HasPayload reports whether the constraint carries the given payload
// marker.
func (d *Descriptor) HasPayload(p Payload) bool {
	return d.payloads[p]
}

// ValidatorIDs returns the declared validator-implementation identifiers
// for this constraint kind, in declaration order.
func (d *Descriptor) ValidatorIDs() []string {
	out := make([]string, len(d.validatorIDs))
	copy(out, d.validatorIDs)
	return out
}

// Composing returns the constraint's composing constraints, in declaration
// order.
func (d *Descriptor) Composing() []ComposingConstraint {
	out := make([]ComposingConstraint, len(d.composing))
	copy(out, d.composing)
	return out
}

// ReportAsSingleViolation reports whether the declaring kind bears the
// report-as-single-violation meta-marker.
func (d *Descriptor) ReportAsSingleViolation() bool { return d.reportAsSingleViolation }

// ApplyTo returns the constraint's validation-applies-to declaration.
func (d *Descriptor) ApplyTo() ApplyTo { return d.applyTo }

// Scope returns the constraint's declared scope.
func (d *Descriptor) Scope() Scope { return d.scope }

// DeclaredOn returns the ElementKind the constraint was declared on.
func (d *Descriptor) DeclaredOn() ElementKind { return d.declaredOn }

// MessageTemplate returns the constraint's declared message attribute
// value, resolving spec.md §9's open question about
// get-default-constraint-message-template: it returns the "message"
// attribute verbatim.
func (d *Descriptor) MessageTemplate() string { return d.message }

// Builder constructs [Descriptor] values. Builder is the only valid
// construction path: it is the sole place the groups-closure and
// payload/Unwrap-Skip-exclusivity invariants from spec.md §3 are enforced.
type Builder struct {
	d     Descriptor
	attrs map[string]any
	err   error
}

// NewBuilder starts building a Descriptor for the given kind.
func NewBuilder(kind Kind) *Builder {
	return &Builder{
		d:     Descriptor{kind: kind, payloads: map[Payload]bool{}},
		attrs: map[string]any{},
	}
}

// WithAttribute sets an attribute value.
func (b *Builder) WithAttribute(name string, value any) *Builder {
	b.attrs[name] = value
	return b
}

// WithAttributes merges attribute values, overwriting any existing keys.
func (b *Builder) WithAttributes(attrs map[string]any) *Builder {
	for k, v := range attrs {
		b.attrs[k] = v
	}
	return b
}

// WithGroups sets the declared groups. Per spec.md §3's groups-closure
// invariant, an empty-at-declaration set is rewritten to {Default}.
func (b *Builder) WithGroups(groups ...Group) *Builder {
	if len(groups) == 0 {
		groups = []Group{Default}
	}
	b.d.groups = append([]Group(nil), groups...)
	return b
}

// WithPayload adds a payload marker. Setting both [PayloadUnwrap] and
// [PayloadSkip] is rejected at [Builder.Build] time.
func (b *Builder) WithPayload(p Payload) *Builder {
	b.d.payloads[p] = true
	return b
}

// WithValidatorIDs sets the declared validator-implementation identifiers.
func (b *Builder) WithValidatorIDs(ids ...string) *Builder {
	b.d.validatorIDs = append([]string(nil), ids...)
	return b
}

// WithComposing appends a composing constraint.
func (b *Builder) WithComposing(c ComposingConstraint) *Builder {
	b.d.composing = append(b.d.composing, c)
	return b
}

// WithReportAsSingleViolation sets the report-as-single-violation flag.
func (b *Builder) WithReportAsSingleViolation(v bool) *Builder {
	b.d.reportAsSingleViolation = v
	return b
}

// WithApplyTo sets the validation-applies-to declaration.
func (b *Builder) WithApplyTo(a ApplyTo) *Builder {
	b.d.applyTo = a
	return b
}

// WithScope sets the declared scope.
func (b *Builder) WithScope(s Scope) *Builder {
	b.d.scope = s
	return b
}

// WithDeclaredOn sets the ElementKind the constraint was declared on.
func (b *Builder) WithDeclaredOn(e ElementKind) *Builder {
	b.d.declaredOn = e
	return b
}

// WithMessage sets the constraint's declared message template attribute.
func (b *Builder) WithMessage(msg string) *Builder {
	b.d.message = msg
	b.attrs["message"] = msg
	return b
}

// Build finalizes the Descriptor, enforcing the invariants spec.md §3
// requires at build time. Returns a [DefinitionError] if the constraint
// carries both Unwrap and Skip payloads.
func (b *Builder) Build() (*Descriptor, error) {
	if b.d.payloads[PayloadUnwrap] && b.d.payloads[PayloadSkip] {
		return nil, &DefinitionError{
			Kind:   KindUnwrapSkipConflict,
			Source: b.d.kind,
			Detail: "a constraint may not bear both Unwrap and Skip payloads",
		}
	}
	if len(b.d.groups) == 0 {
		b.d.groups = []Group{Default}
	}
	out := b.d
	out.attributes = immutable.WrapPropertiesClone(b.attrs)
	out.payloads = maps.Clone(b.d.payloads)
	out.groups = append([]Group(nil), b.d.groups...)
	out.validatorIDs = append([]string(nil), b.d.validatorIDs...)
	out.composing = append([]ComposingConstraint(nil), b.d.composing...)
	return &out, nil
}

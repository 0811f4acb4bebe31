package builder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/ductile-labs/beanval/constraint"
	"github.com/ductile-labs/beanval/descriptor"
)

// StructTag is the struct-tag key the [ReflectiveSource] reads for
// constraint declarations, per spec.md §9's "annotation substrate" open
// question: Go has no annotations, so a struct tag plays their role. The
// tag value is one or more ";"-separated constraint specs of the form
// "Kind[,attr=value[,attr2=value2...]]"; the special spec "valid" marks
// the field as cascaded, the in-language analogue of "@Valid".
const StructTag = "beanval"

// GroupConversionTag is the struct-tag key for group-conversion
// declarations, e.g. `convertgroup:"Extended=Basic,Premium=Extended"`.
const GroupConversionTag = "convertgroup"

// cascadeMarker is the special constraint-spec token standing in for a
// constraint kind that marks a field as cascaded.
const cascadeMarker = "valid"

// TypeConstrained is implemented by a type that declares type-level
// (class-level) constraints, since Go struct tags have no type-level
// position. Each returned string uses the same spec syntax as a single
// field's [StructTag] value.
type TypeConstrained interface {
	BeanvalConstraints() []string
}

// GroupSequenced is implemented by a type that declares a group
// sequence, since Go struct tags have no type-level position.
type GroupSequenced interface {
	BeanvalGroupSequence() []string
}

// ReflectiveSource reads declarative metadata from Go struct tags: the
// idiomatic in-language analogue of spec.md §4.3's reflective source. It
// is stateless and safe to share as a singleton across a [Pipeline], per
// the teacher's "stateless, shares a singleton per factory" idiom
// (schema package doc comment).
type ReflectiveSource struct{}

// NewReflectiveSource returns the (stateless) reflective source.
func NewReflectiveSource() *ReflectiveSource { return &ReflectiveSource{} }

// ForBean implements [Source], reading t's own declared struct tags.
// Inherited fields (promoted via struct embedding) are intentionally
// left to [Hierarchy] rather than walked here, so a single ForBean
// always reflects exactly one type's own declarations.
func (s *ReflectiveSource) ForBean(t reflect.Type) (ForBean, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return ForBean{}, &DefinitionError{Kind: KindMalformedTag, Type: t, Detail: "reflective source requires a struct type"}
	}

	fb := newForBean(t)

	if tc, ok := reflect.New(t).Interface().(TypeConstrained); ok {
		cs, err := parseConstraintSpecs(tc.BeanvalConstraints(), constraint.ElementType)
		if err != nil {
			return ForBean{}, wrapMalformed(t, err)
		}
		fb.TypeConstraints = cs
	}
	if gs, ok := reflect.New(t).Interface().(GroupSequenced); ok {
		if seq := gs.BeanvalGroupSequence(); len(seq) > 0 {
			fb.HasGroupSequence = true
			for _, name := range seq {
				fb.GroupSequence = append(fb.GroupSequence, constraint.NewGroup(name))
			}
		}
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		raw, hasTag := f.Tag.Lookup(StructTag)
		if !hasTag {
			continue
		}

		specs, cascade := splitFieldTag(raw)
		constraints, err := parseConstraintSpecs(specs, constraint.ElementField)
		if err != nil {
			return ForBean{}, wrapMalformed(t, fmt.Errorf("field %s: %w", f.Name, err))
		}
		var conversions []descriptor.GroupConversion
		if gcRaw, ok := f.Tag.Lookup(GroupConversionTag); ok {
			conversions, err = parseGroupConversions(gcRaw)
			if err != nil {
				return ForBean{}, wrapMalformed(t, fmt.Errorf("field %s: %w", f.Name, err))
			}
		}

		fb.Properties[propertyName(f)] = ElementSource{
			ElementType:       f.Type,
			Constraints:       constraints,
			IsCascade:         cascade,
			GroupConversions:  conversions,
			ContainerElements: map[descriptor.ContainerElementKey]*descriptor.ContainerElementDescriptor{},
		}
	}

	return fb, nil
}

func wrapMalformed(t reflect.Type, err error) error {
	return &DefinitionError{Kind: KindMalformedTag, Type: t, Detail: err.Error()}
}

// propertyName derives a bean-validation property name from an exported
// Go field, lower-casing its leading rune (the idiomatic-Go analogue of a
// Java getter's property-name derivation).
func propertyName(f reflect.StructField) string {
	if f.Name == "" {
		return f.Name
	}
	r := []rune(f.Name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// splitFieldTag splits a raw [StructTag] value into its constraint specs
// and reports whether the cascade marker was present.
func splitFieldTag(raw string) (specs []string, cascade bool) {
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == cascadeMarker {
			cascade = true
			continue
		}
		specs = append(specs, part)
	}
	return specs, cascade
}

// parseConstraintSpecs parses each "Kind[,attr=value...]" spec into a
// built [constraint.Descriptor]. The special attribute "groups" (pipe-
// separated group names) and "message" are consumed into the
// descriptor's groups and message fields rather than left as plain
// attributes.
func parseConstraintSpecs(specs []string, declaredOn constraint.ElementKind) ([]*constraint.Descriptor, error) {
	out := make([]*constraint.Descriptor, 0, len(specs))
	for _, spec := range specs {
		fields := strings.Split(spec, ",")
		kindName := strings.TrimSpace(fields[0])
		if kindName == "" {
			return nil, fmt.Errorf("empty constraint kind in spec %q", spec)
		}
		b := constraint.NewBuilder(constraint.NewKind(kindName)).WithDeclaredOn(declaredOn)

		var groups []constraint.Group
		for _, attr := range fields[1:] {
			k, v, err := splitAttr(attr)
			if err != nil {
				return nil, fmt.Errorf("spec %q: %w", spec, err)
			}
			switch k {
			case "groups":
				for _, name := range strings.Split(v, "|") {
					if name = strings.TrimSpace(name); name != "" {
						groups = append(groups, constraint.NewGroup(name))
					}
				}
			case "message":
				b = b.WithMessage(v)
			default:
				b = b.WithAttribute(k, parseAttrValue(v))
			}
		}
		b = b.WithGroups(groups...)

		d, err := b.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func splitAttr(raw string) (key, value string, err error) {
	idx := strings.IndexByte(raw, '=')
	if idx < 0 {
		return "", "", fmt.Errorf("malformed attribute %q (expected key=value)", raw)
	}
	return strings.TrimSpace(raw[:idx]), strings.TrimSpace(raw[idx+1:]), nil
}

// parseAttrValue converts a tag-literal attribute value to the most
// specific Go type it parses as (bool, int64, float64), falling back to
// string.
func parseAttrValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// parseGroupConversions parses a [GroupConversionTag] value of the form
// "From=To,From2=To2".
func parseGroupConversions(raw string) ([]descriptor.GroupConversion, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var out []descriptor.GroupConversion
	for _, pair := range strings.Split(raw, ",") {
		from, to, err := splitAttr(pair)
		if err != nil {
			return nil, fmt.Errorf("malformed group conversion %q", pair)
		}
		out = append(out, descriptor.GroupConversion{From: constraint.NewGroup(from), To: constraint.NewGroup(to)})
	}
	return out, nil
}

package builder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/tidwall/jsonc"

	"github.com/ductile-labs/beanval/constraint"
	"github.com/ductile-labs/beanval/descriptor"
	"github.com/ductile-labs/beanval/location"
)

// mappingSourceID identifies an in-memory JSONC mapping document for
// [location.Span] reporting. Mapping documents have no stable file
// identity of their own (callers typically embed or generate them), so
// all of them share this synthetic source.
var mappingSourceID = location.NewSourceID("inline:mapping")

// mappingProperty is one property entry in a [MappingSource] document.
type mappingProperty struct {
	Constraints      []string          `json:"constraints"`
	Cascade          bool              `json:"cascade"`
	GroupConversions map[string]string `json:"groupConversions"`
}

// mappingType is one type entry in a [MappingSource] document, keyed by
// the type's package-qualified name ([reflect.Type.String]).
type mappingType struct {
	AnnotationBehaviour string                     `json:"annotationBehaviour"`
	TypeConstraints     []string                   `json:"typeConstraints"`
	GroupSequence       []string                   `json:"groupSequence"`
	Properties          map[string]mappingProperty `json:"properties"`
}

// MappingSource is a build-time manifest-file descriptor overlay: the
// JSONC realization of spec.md §4.3's XML source, sanctioned by spec.md
// §9's note that reflection-derived metadata "may substitute... build-
// time manifest files". Parsed once via [ParseMappingSource] and then
// safe for concurrent [MappingSource.ForBean] calls.
type MappingSource struct {
	types map[string]mappingType
}

// ParseMappingSource parses a JSONC mapping document (comments and
// trailing commas tolerated via [github.com/tidwall/jsonc]) into a
// MappingSource.
func ParseMappingSource(doc []byte) (*MappingSource, error) {
	converted := jsonc.ToJSON(doc)
	var types map[string]mappingType
	if err := json.Unmarshal(converted, &types); err != nil {
		span := location.Span{}
		if syntaxErr, ok := err.(*json.SyntaxError); ok {
			span = spanAtOffset(converted, syntaxErr.Offset)
		}
		return nil, &DefinitionError{Kind: KindMalformedDocument, Span: span, Detail: err.Error()}
	}
	return &MappingSource{types: types}, nil
}

// spanAtOffset converts a byte offset into a single-point [location.Span]
// by counting newlines in doc up to offset, per the JSON decoder's
// 1-based line numbering convention.
func spanAtOffset(doc []byte, offset int64) location.Span {
	if offset < 0 || offset > int64(len(doc)) {
		return location.Span{}
	}
	prefix := doc[:offset]
	line := bytes.Count(prefix, []byte("\n")) + 1
	lineStart := bytes.LastIndexByte(prefix, '\n') + 1
	col := utf8.RuneCount(prefix[lineStart:]) + 1
	return location.PointWithByte(mappingSourceID, line, col, int(offset))
}

// ForBean implements [Source]. A type with no entry in the document
// abstains: it contributes nothing, and [Hierarchy]/[Composite] merges
// fall through entirely to other sources.
func (m *MappingSource) ForBean(t reflect.Type) (ForBean, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	fb := newForBean(t)

	mt, ok := m.types[t.String()]
	if !ok {
		fb.Behaviour = BehaviourAbstain
		return fb, nil
	}
	fb.Behaviour = parseBehaviour(mt.AnnotationBehaviour)

	cs, err := parseConstraintSpecs(mt.TypeConstraints, constraint.ElementType)
	if err != nil {
		return ForBean{}, wrapMalformed(t, err)
	}
	fb.TypeConstraints = cs

	if len(mt.GroupSequence) > 0 {
		fb.HasGroupSequence = true
		for _, name := range mt.GroupSequence {
			fb.GroupSequence = append(fb.GroupSequence, constraint.NewGroup(name))
		}
	}

	for name, p := range mt.Properties {
		constraints, err := parseConstraintSpecs(p.Constraints, constraint.ElementField)
		if err != nil {
			return ForBean{}, wrapMalformed(t, fmt.Errorf("property %s: %w", name, err))
		}
		var conversions []descriptor.GroupConversion
		for from, to := range p.GroupConversions {
			conversions = append(conversions, descriptor.GroupConversion{From: constraint.NewGroup(from), To: constraint.NewGroup(to)})
		}

		elementType := t
		if f, ok := t.FieldByName(exportedFieldName(name)); ok {
			elementType = f.Type
		}

		fb.Properties[name] = ElementSource{
			ElementType:       elementType,
			Constraints:       constraints,
			IsCascade:         p.Cascade,
			GroupConversions:  conversions,
			ContainerElements: map[descriptor.ContainerElementKey]*descriptor.ContainerElementDescriptor{},
		}
	}

	return fb, nil
}

// exportedFieldName reverses [propertyName]'s lower-casing, since a
// mapping document names properties the same way the reflective source
// does, but field lookup needs the exported Go identifier.
func exportedFieldName(property string) string {
	if property == "" {
		return property
	}
	r := []rune(property)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func parseBehaviour(raw string) Behaviour {
	switch raw {
	case "OVERRIDE":
		return BehaviourOverride
	case "ABSTAIN":
		return BehaviourAbstain
	default:
		return BehaviourMerge
	}
}

package builder

import (
	"reflect"

	"github.com/ductile-labs/beanval/constraint"
	"github.com/ductile-labs/beanval/descriptor"
)

// conflicts accumulates the names of properties and executables where two
// merged sources disagreed on group-conversion metadata, per spec.md
// §4.3's "incompatible cascade/group-conversion metadata" duplicate
// conditions, and the types whose sibling sources disagreed on
// annotation-behaviour. Pipeline.build turns each entry into an
// E_DUPLICATE_PROPERTY / E_DUPLICATE_EXECUTABLE /
// E_ANNOTATION_BEHAVIOR_CONFLICT diag.Issue.
type conflicts struct {
	properties  []string
	executables []string
	behaviour   []string
}

func (c *conflicts) merge(other conflicts) {
	c.properties = append(c.properties, other.properties...)
	c.executables = append(c.executables, other.executables...)
	c.behaviour = append(c.behaviour, other.behaviour...)
}

// mergeElementSource combines base and overlay, with overlay's cascade
// flag and element type taking precedence when set, and constraints /
// container elements accumulating additively. A non-empty conflict
// return means base and overlay declared different "to" groups for the
// same "from" group in their GroupConversions.
func mergeElementSource(base, overlay ElementSource) (ElementSource, bool) {
	out := ElementSource{
		ElementType:       base.ElementType,
		Constraints:       append(append([]*constraint.Descriptor(nil), base.Constraints...), overlay.Constraints...),
		IsCascade:         base.IsCascade || overlay.IsCascade,
		ContainerElements: make(map[descriptor.ContainerElementKey]*descriptor.ContainerElementDescriptor),
	}
	if overlay.ElementType != nil {
		out.ElementType = overlay.ElementType
	}
	for k, v := range base.ContainerElements {
		out.ContainerElements[k] = v
	}
	for k, v := range overlay.ContainerElements {
		out.ContainerElements[k] = v
	}

	byFrom := make(map[constraint.Group]constraint.Group, len(base.GroupConversions))
	conflict := false
	for _, gc := range base.GroupConversions {
		byFrom[gc.From] = gc.To
		out.GroupConversions = append(out.GroupConversions, gc)
	}
	for _, gc := range overlay.GroupConversions {
		if existingTo, ok := byFrom[gc.From]; ok {
			if existingTo != gc.To {
				conflict = true
			}
			continue
		}
		byFrom[gc.From] = gc.To
		out.GroupConversions = append(out.GroupConversions, gc)
	}
	return out, conflict
}

func mergeExecutableSource(base, overlay ExecutableSource) (ExecutableSource, bool) {
	out := ExecutableSource{
		Name:           base.Name,
		ParameterTypes: append([]reflect.Type(nil), base.ParameterTypes...),
		CrossParameterConstraints: append(
			append([]*constraint.Descriptor(nil), base.CrossParameterConstraints...),
			overlay.CrossParameterConstraints...),
	}
	rv, conflict := mergeElementSource(base.ReturnValue, overlay.ReturnValue)
	out.ReturnValue = rv

	byIndex := make(map[int]ParameterSource, len(base.Parameters))
	for _, p := range base.Parameters {
		byIndex[p.Index] = p
	}
	for _, p := range overlay.Parameters {
		if existing, ok := byIndex[p.Index]; ok {
			merged, c := mergeElementSource(existing.ElementSource, p.ElementSource)
			if c {
				conflict = true
			}
			name := existing.Name
			if p.Name != "" {
				name = p.Name
			}
			byIndex[p.Index] = ParameterSource{Name: name, Index: p.Index, ElementSource: merged}
		} else {
			byIndex[p.Index] = p
		}
	}
	out.Parameters = make([]ParameterSource, 0, len(byIndex))
	for i := 0; i < len(byIndex); i++ {
		if p, ok := byIndex[i]; ok {
			out.Parameters = append(out.Parameters, p)
		}
	}
	return out, conflict
}

// mergeForBean additively combines base and overlay: overlay's scalar
// declarations (group sequence) win when present, properties/methods/
// constructors union by key with per-key merges, and type constraints
// concatenate.
func mergeForBean(base, overlay ForBean) (ForBean, conflicts) {
	t := base.Type
	if t == nil {
		t = overlay.Type
	}
	out := newForBean(t)
	out.TypeConstraints = append(append([]*constraint.Descriptor(nil), base.TypeConstraints...), overlay.TypeConstraints...)

	if overlay.HasGroupSequence {
		out.GroupSequence = overlay.GroupSequence
		out.HasGroupSequence = true
	} else if base.HasGroupSequence {
		out.GroupSequence = base.GroupSequence
		out.HasGroupSequence = true
	}

	var c conflicts

	for name, es := range base.Properties {
		out.Properties[name] = es
	}
	for name, es := range overlay.Properties {
		if existing, ok := out.Properties[name]; ok {
			merged, conflict := mergeElementSource(existing, es)
			out.Properties[name] = merged
			if conflict {
				c.properties = append(c.properties, name)
			}
			continue
		}
		out.Properties[name] = es
	}

	mergeExecMap := func(base, overlay map[executableKey]ExecutableSource) map[executableKey]ExecutableSource {
		out := make(map[executableKey]ExecutableSource, len(base)+len(overlay))
		for k, v := range base {
			out[k] = v
		}
		for k, v := range overlay {
			if existing, ok := out[k]; ok {
				merged, conflict := mergeExecutableSource(existing, v)
				out[k] = merged
				if conflict {
					c.executables = append(c.executables, k.name)
				}
				continue
			}
			out[k] = v
		}
		return out
	}
	out.Methods = mergeExecMap(base.Methods, overlay.Methods)
	out.Constructors = mergeExecMap(base.Constructors, overlay.Constructors)

	return out, c
}

// Hierarchy flattens own's declarations with those of its superclasses
// and interfaces (parents, in most-specific-first order is not required;
// all are merged additively), honouring own's annotation-behaviour per
// spec.md §4.3: MERGE combines own with parents, OVERRIDE discards
// parents entirely, and ABSTAIN discards own's own declarations in favor
// of the flattened parents.
func Hierarchy(own ForBean, parents ...ForBean) (ForBean, conflicts) {
	switch own.Behaviour {
	case BehaviourOverride:
		return own, conflicts{}
	case BehaviourAbstain:
		if len(parents) == 0 {
			return newForBean(own.Type), conflicts{}
		}
		result := parents[0]
		var all conflicts
		for _, p := range parents[1:] {
			merged, c := mergeForBean(result, p)
			result = merged
			all.merge(c)
		}
		result.Type = own.Type
		return result, all
	default: // BehaviourMerge
		result := own
		var all conflicts
		for _, p := range parents {
			merged, c := mergeForBean(p, result)
			result = merged
			all.merge(c)
		}
		return result, all
	}
}

// Parallel merges the primary (reflective) and custom (mapping/
// programmatic) sources for the same level, per spec.md §4.3, only when
// custom is non-empty; an empty custom source (no mapping-document entry
// for this type) leaves primary untouched.
func Parallel(primary, custom ForBean) (ForBean, conflicts) {
	if isEmptyForBean(custom) {
		return primary, conflicts{}
	}
	switch custom.Behaviour {
	case BehaviourOverride:
		custom.Type = primary.Type
		return custom, conflicts{}
	case BehaviourAbstain:
		return primary, conflicts{}
	default:
		return mergeForBean(primary, custom)
	}
}

func isEmptyForBean(fb ForBean) bool {
	return len(fb.Properties) == 0 && len(fb.Methods) == 0 && len(fb.Constructors) == 0 &&
		len(fb.TypeConstraints) == 0 && !fb.HasGroupSequence
}

// Composite reduces a list of sibling sources (e.g. several embedded
// interfaces contributing to the same hierarchy level) using consensus
// merge: all non-ABSTAIN sources must declare the same annotation-
// behaviour. A disagreement is recorded in the returned conflicts'
// behaviour field (naming t) rather than failing outright, so the caller
// can surface it as a collected E_ANNOTATION_BEHAVIOR_CONFLICT diag.Issue
// instead of aborting the whole pipeline.
func Composite(sources ...ForBean) (ForBean, conflicts) {
	if len(sources) == 0 {
		return ForBean{}, conflicts{}
	}
	var t reflect.Type
	var agreed Behaviour
	hasAgreed := false
	var c conflicts
	for _, s := range sources {
		if t == nil {
			t = s.Type
		}
		if s.Behaviour == BehaviourAbstain {
			continue
		}
		if !hasAgreed {
			agreed = s.Behaviour
			hasAgreed = true
			continue
		}
		if s.Behaviour != agreed && len(c.behaviour) == 0 {
			c.behaviour = append(c.behaviour, t.String())
		}
	}

	result := newForBean(t)
	for _, s := range sources {
		merged, mc := mergeForBean(result, s)
		result = merged
		c.merge(mc)
	}
	result.Behaviour = agreed
	return result, c
}

package rtype

import "reflect"

// Box returns the boxed form of t if t is a pointer, mirroring the
// primitive→wrapper promotion spec.md §4.2 requires before validator
// resolution. Go has no primitive/wrapper split; the nearest analogue is a
// pointer to a value type (a nilable "wrapper" around the value), so Box
// dereferences one level of pointer indirection. Non-pointer types are
// returned unchanged.
func Box(t reflect.Type) reflect.Type {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

// Applicable filters candidates to those a value of type v may be assigned
// to (v itself, or an interface type v implements), matching spec.md
// §4.2's supertype-hierarchy walk without requiring an explicit BFS: Go's
// [reflect.Type.AssignableTo] already encodes "is this type (or an
// interface it implements) a supertype of v".
func Applicable(v reflect.Type, candidates []reflect.Type) []reflect.Type {
	var out []reflect.Type
	for _, c := range candidates {
		if v.AssignableTo(c) {
			out = append(out, c)
		}
	}
	return out
}

// MostSpecific narrows a set of applicable supertypes down to those that are
// maximally specific: a candidate VT is discarded if some other candidate
// VT' in the set is itself assignable to VT (VT' ⊑ VT), since spec.md §4.2
// says "discard any previously collected VT' with VT ⊑ VT'... never admit a
// VT less specific than one already admitted."
//
// The result has zero elements if candidates is empty, exactly one element
// when resolution is unambiguous, and more than one when two or more
// candidates are mutually incomparable (ambiguous).
func MostSpecific(candidates []reflect.Type) []reflect.Type {
	kept := make([]reflect.Type, 0, len(candidates))
	for i, c := range candidates {
		dominated := false
		for j, other := range candidates {
			if i == j {
				continue
			}
			if other == c {
				continue
			}
			if other.AssignableTo(c) {
				// other is more specific than (or equal to) c; c is dominated.
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, c)
		}
	}
	return dedupe(kept)
}

// Resolve combines [Applicable] and [MostSpecific]: it returns the
// maximally-specific supertypes of v among candidates. An empty result means
// no validator exists for v; a result with more than one element means
// resolution is ambiguous.
func Resolve(v reflect.Type, candidates []reflect.Type) []reflect.Type {
	return MostSpecific(Applicable(v, candidates))
}

func dedupe(types []reflect.Type) []reflect.Type {
	seen := make(map[reflect.Type]bool, len(types))
	out := make([]reflect.Type, 0, len(types))
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

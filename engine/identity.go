package engine

import (
	"reflect"

	"github.com/ductile-labs/beanval/path"
)

// identityKey identifies one reference-kind Go value for cycle detection,
// the engine's analogue of the teacher's instanceKey{typeName, pk} in
// graph/internal/walk/walker.go — except a validated object graph has no
// universal primary key, so identity here is the underlying pointer value
// itself rather than a string key.
type identityKey struct {
	typ reflect.Type
	ptr uintptr
}

// identityOf returns the stable identity of v and true, or the zero key
// and false if v has no Go-level notion of reference identity (a value
// struct, a number, a nil). Structs passed by value cannot themselves
// participate in a pointer cycle, so they are simply never deduplicated.
func identityOf(v reflect.Value) (identityKey, bool) {
	if !v.IsValid() {
		return identityKey{}, false
	}
	switch v.Kind() {
	case reflect.Interface:
		return identityOf(v.Elem())
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Slice:
		if v.IsNil() {
			return identityKey{}, false
		}
		return identityKey{typ: v.Type(), ptr: v.Pointer()}, true
	default:
		return identityKey{}, false
	}
}

// frameContext is one node of the ancestor chain threaded through a
// recursive validation pass, grounding the "graph-context chain of
// ancestors is scanned before creating a child context" rule from
// spec.md §4.5 — a second, local cycle guard on top of the job-wide
// per-pass seen-set, scoped to the single path currently being walked.
type frameContext struct {
	path   path.Path
	value  reflect.Value
	parent *frameContext
}

// ancestorHasIdentity reports whether key matches the identity of any
// frame on the chain starting at f (inclusive of f itself, walking up via
// parent), per spec.md §4.5: when an identical instance is already an
// ancestor of the value about to be cascaded into, the child frame is not
// created.
func ancestorHasIdentity(f *frameContext, key identityKey) bool {
	for cur := f; cur != nil; cur = cur.parent {
		if k, ok := identityOf(cur.value); ok && k == key {
			return true
		}
	}
	return false
}

// skip reports whether v has already been evaluated during the current
// group pass, recording it as seen if not. Per spec.md §4.5 and
// SPEC_FULL.md §8's cycle-safety property, this guarantees each
// cycle-participating bean is evaluated at most once per group: the
// seen-set is reset at the start of every group pass in [Job.runPlan].
func (j *Job) skip(v reflect.Value) bool {
	key, ok := identityOf(v)
	if !ok {
		return false
	}
	if j.seen[key] {
		return true
	}
	j.seen[key] = true
	return false
}

package spi

import (
	"fmt"
	"reflect"

	"github.com/ductile-labs/beanval/path"
)

// sliceExtractor extracts the elements of a slice or array, per-element
// node being an IndexNode.
type sliceExtractor struct{}

func (sliceExtractor) ExtractValues(container any, receive func(node path.Node, value any)) error {
	v := reflect.ValueOf(container)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return fmt.Errorf("spi: sliceExtractor: %s is not a slice or array", v.Kind())
	}
	for i := 0; i < v.Len(); i++ {
		receive(path.IndexNode{Index: i}, v.Index(i).Interface())
	}
	return nil
}

// mapExtractor extracts the values of a map, per-element node being a
// KeyNode holding the map key.
type mapExtractor struct{}

func (mapExtractor) ExtractValues(container any, receive func(node path.Node, value any)) error {
	v := reflect.ValueOf(container)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Map {
		return fmt.Errorf("spi: mapExtractor: %s is not a map", v.Kind())
	}
	iter := v.MapRange()
	for iter.Next() {
		receive(path.KeyNode{Key: iter.Key().Interface()}, iter.Value().Interface())
	}
	return nil
}

// registry is a reflect.Kind-keyed ValueExtractors implementation backing
// DefaultValueExtractors.
type registry struct {
	byKind map[reflect.Kind]ValueExtractor
}

func (r *registry) ExtractorFor(containerType reflect.Type) (ValueExtractor, bool) {
	t := containerType
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	ex, ok := r.byKind[t.Kind()]
	return ex, ok
}

// DefaultValueExtractors returns a ValueExtractors registry covering Go's
// built-in container shapes: slices, arrays, and maps. This is the
// reference implementation spec.md §10 calls for so the engine is runnable
// without a host-supplied extractor for the common cases; anything else
// (sync.Map, a host-defined Optional-like box) requires the host to
// register its own.
func DefaultValueExtractors() ValueExtractors {
	ex := &registry{byKind: map[reflect.Kind]ValueExtractor{
		reflect.Slice: sliceExtractor{},
		reflect.Array: sliceExtractor{},
		reflect.Map:   mapExtractor{},
	}}
	return ex
}

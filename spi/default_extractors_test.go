package spi

import (
	"reflect"
	"sort"
	"testing"

	"github.com/ductile-labs/beanval/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValueExtractors_Slice(t *testing.T) {
	reg := DefaultValueExtractors()
	ex, ok := reg.ExtractorFor(reflect.TypeOf([]string{}))
	require.True(t, ok)

	var got []string
	err := ex.ExtractValues([]string{"a", "b", "c"}, func(node path.Node, value any) {
		got = append(got, value.(string))
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestDefaultValueExtractors_Array(t *testing.T) {
	reg := DefaultValueExtractors()
	ex, ok := reg.ExtractorFor(reflect.TypeOf([3]int{}))
	require.True(t, ok)

	var got []int
	err := ex.ExtractValues([3]int{1, 2, 3}, func(node path.Node, value any) {
		got = append(got, value.(int))
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestDefaultValueExtractors_Map(t *testing.T) {
	reg := DefaultValueExtractors()
	ex, ok := reg.ExtractorFor(reflect.TypeOf(map[string]int{}))
	require.True(t, ok)

	var got []string
	err := ex.ExtractValues(map[string]int{"x": 1, "y": 2}, func(node path.Node, value any) {
		got = append(got, node.String())
	})
	require.NoError(t, err)
	sort.Strings(got)
	assert.Equal(t, []string{"[x]", "[y]"}, got)
}

func TestDefaultValueExtractors_UnsupportedKind(t *testing.T) {
	reg := DefaultValueExtractors()
	_, ok := reg.ExtractorFor(reflect.TypeOf(struct{}{}))
	assert.False(t, ok)
}

func TestDefaultValueExtractors_NilPointer(t *testing.T) {
	reg := DefaultValueExtractors()
	ex, ok := reg.ExtractorFor(reflect.TypeOf(&[]string{}))
	require.True(t, ok)

	var calls int
	var nilSlice *[]string
	err := ex.ExtractValues(nilSlice, func(node path.Node, value any) {
		calls++
	})
	require.NoError(t, err)
	assert.Zero(t, calls)
}

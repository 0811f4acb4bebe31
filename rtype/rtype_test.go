package rtype

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stringer interface {
	String() string
}

type namer interface {
	Name() string
}

type person struct{}

func (person) String() string { return "person" }
func (person) Name() string   { return "p" }

func TestBox(t *testing.T) {
	var i int
	assert.Equal(t, reflect.TypeOf(i), Box(reflect.TypeOf(&i)))
	assert.Equal(t, reflect.TypeOf(i), Box(reflect.TypeOf(i)))
	assert.Nil(t, Box(nil))
}

func TestApplicable(t *testing.T) {
	v := reflect.TypeOf(person{})
	candidates := []reflect.Type{
		reflect.TypeOf((*stringer)(nil)).Elem(),
		reflect.TypeOf((*namer)(nil)).Elem(),
		reflect.TypeOf(0),
		v,
	}
	got := Applicable(v, candidates)
	assert.ElementsMatch(t, []reflect.Type{
		reflect.TypeOf((*stringer)(nil)).Elem(),
		reflect.TypeOf((*namer)(nil)).Elem(),
		v,
	}, got)
}

func TestMostSpecific_Unambiguous(t *testing.T) {
	v := reflect.TypeOf(person{})
	stringerT := reflect.TypeOf((*stringer)(nil)).Elem()
	candidates := []reflect.Type{stringerT, v}
	got := MostSpecific(Applicable(v, candidates))
	assert.Equal(t, []reflect.Type{v}, got)
}

func TestMostSpecific_Ambiguous(t *testing.T) {
	stringerT := reflect.TypeOf((*stringer)(nil)).Elem()
	namerT := reflect.TypeOf((*namer)(nil)).Elem()
	v := reflect.TypeOf(person{})
	got := Resolve(v, []reflect.Type{stringerT, namerT})
	assert.Len(t, got, 2)
}

func TestMostSpecific_NoMatch(t *testing.T) {
	v := reflect.TypeOf(0)
	got := Resolve(v, []reflect.Type{reflect.TypeOf("")})
	assert.Empty(t, got)
}

package validator

import (
	"reflect"
	"testing"

	"github.com/ductile-labs/beanval/constraint"
	"github.com/ductile-labs/beanval/spi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{}

func (stubValidator) Initialize(*constraint.Descriptor) error { return nil }
func (stubValidator) IsValid(any, spi.ValidationContext) (bool, error) {
	return true, nil
}

func newStub() spi.ConstraintValidator { return stubValidator{} }

func TestRegistry_ResolveUnambiguous(t *testing.T) {
	kind := NewTestKind("NotBlank")
	r := NewRegistry()
	r.Register(kind, reflect.TypeOf(""), constraint.TargetAnnotatedElement, newStub)

	reg, err := r.Resolve(kind, reflect.TypeOf("hello"), constraint.TargetAnnotatedElement)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(""), reg.ValueType)
}

func TestRegistry_ResolveBoxesPointer(t *testing.T) {
	kind := NewTestKind("Min")
	r := NewRegistry()
	r.Register(kind, reflect.TypeOf(0), constraint.TargetAnnotatedElement, newStub)

	var v *int
	reg, err := r.Resolve(kind, reflect.TypeOf(v), constraint.TargetAnnotatedElement)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(0), reg.ValueType)
}

func TestRegistry_ResolveNoValidator(t *testing.T) {
	kind := NewTestKind("NotBlank")
	r := NewRegistry()
	r.Register(kind, reflect.TypeOf(""), constraint.TargetAnnotatedElement, newStub)

	_, err := r.Resolve(kind, reflect.TypeOf(0), constraint.TargetAnnotatedElement)
	require.Error(t, err)
	var uerr *UnexpectedTypeError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, KindNoValidator, uerr.Kind)
}

func TestRegistry_ResolveAmbiguous(t *testing.T) {
	kind := NewTestKind("Custom")
	r := NewRegistry()

	type ifaceA interface{ A() }
	type ifaceB interface{ B() }
	r.Register(kind, reflect.TypeOf((*ifaceA)(nil)).Elem(), constraint.TargetAnnotatedElement, newStub)
	r.Register(kind, reflect.TypeOf((*ifaceB)(nil)).Elem(), constraint.TargetAnnotatedElement, newStub)

	// A concrete type implementing both interfaces makes resolution ambiguous.
	vt := reflect.TypeOf(bothImpl{})
	_, err := r.Resolve(kind, vt, constraint.TargetAnnotatedElement)
	require.Error(t, err)
	var uerr *UnexpectedTypeError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, KindAmbiguous, uerr.Kind)
}

type bothImpl struct{}

func (bothImpl) A() {}
func (bothImpl) B() {}

func TestRegistry_ResolveRespectsTarget(t *testing.T) {
	kind := NewTestKind("CrossField")
	r := NewRegistry()
	r.Register(kind, reflect.TypeOf(""), constraint.TargetParameters, newStub)

	_, err := r.Resolve(kind, reflect.TypeOf("x"), constraint.TargetAnnotatedElement)
	require.Error(t, err)

	reg, err := r.Resolve(kind, reflect.TypeOf("x"), constraint.TargetParameters)
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(""), reg.ValueType)
}

// NewTestKind is a thin readability wrapper; constraint.NewKind is already
// exported, this just documents intent at call sites in this file.
func NewTestKind(name string) constraint.Kind {
	return constraint.NewKind(name)
}

package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_EqualityAndString(t *testing.T) {
	a := NewKind("NotNull")
	b := NewKind("NotNull")
	c := NewKind("Size")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "NotNull", a.String())
	assert.False(t, a.IsZero())
	assert.True(t, Kind{}.IsZero())
}

func TestGroup_DefaultAndEquality(t *testing.T) {
	assert.Equal(t, "Default", Default.String())
	g1 := NewGroup("Strict")
	g2 := NewGroup("Strict")
	assert.Equal(t, g1, g2)
	assert.NotEqual(t, g1, Default)
}

func TestValidationTarget_String(t *testing.T) {
	assert.Equal(t, "ANNOTATED_ELEMENT", TargetAnnotatedElement.String())
	assert.Equal(t, "PARAMETERS", TargetParameters.String())
}

func TestElementKind_String(t *testing.T) {
	cases := map[ElementKind]string{
		ElementField:            "FIELD",
		ElementGetter:           "GETTER",
		ElementType:             "TYPE",
		ElementParameter:        "PARAMETER",
		ElementReturnValue:      "RETURN_VALUE",
		ElementCrossParameter:   "CROSS_PARAMETER",
		ElementContainerElement: "CONTAINER_ELEMENT",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}

func TestPayload_Constants(t *testing.T) {
	assert.Equal(t, Payload("Unwrap"), PayloadUnwrap)
	assert.Equal(t, Payload("Skip"), PayloadSkip)
}

package builder

import (
	"reflect"
	"testing"

	"github.com/ductile-labs/beanval/constraint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mappedPerson struct {
	Name string
	Age  int
}

type mappedUnmentioned struct {
	Foo string
}

func TestParseMappingSource_KnownType(t *testing.T) {
	doc := []byte(`{
		// comment lines must be tolerated
		"builder.mappedPerson": {
			"annotationBehaviour": "OVERRIDE",
			"typeConstraints": ["ConsistentAge"],
			"groupSequence": ["Basic", "Extended"],
			"properties": {
				"name": {"constraints": ["NotBlank"], "cascade": false},
				"age": {"constraints": ["Min,value=0"], "groupConversions": {"Extended": "Basic"}},
			},
		},
	}`)

	ms, err := ParseMappingSource(doc)
	require.NoError(t, err)

	fb, err := ms.ForBean(reflect.TypeOf(mappedPerson{}))
	require.NoError(t, err)

	assert.Equal(t, BehaviourOverride, fb.Behaviour)
	require.Len(t, fb.TypeConstraints, 1)
	assert.Equal(t, constraint.NewKind("ConsistentAge"), fb.TypeConstraints[0].Kind())
	assert.True(t, fb.HasGroupSequence)
	assert.Equal(t, []constraint.Group{constraint.NewGroup("Basic"), constraint.NewGroup("Extended")}, fb.GroupSequence)

	name, ok := fb.Properties["name"]
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(""), name.ElementType)
	require.Len(t, name.Constraints, 1)

	age, ok := fb.Properties["age"]
	require.True(t, ok)
	assert.Equal(t, reflect.TypeOf(0), age.ElementType)
	require.Len(t, age.GroupConversions, 1)
	assert.Equal(t, constraint.NewGroup("Extended"), age.GroupConversions[0].From)
	assert.Equal(t, constraint.NewGroup("Basic"), age.GroupConversions[0].To)
}

func TestMappingSource_UnmentionedTypeAbstains(t *testing.T) {
	ms, err := ParseMappingSource([]byte(`{}`))
	require.NoError(t, err)

	fb, err := ms.ForBean(reflect.TypeOf(mappedUnmentioned{}))
	require.NoError(t, err)
	assert.Equal(t, BehaviourAbstain, fb.Behaviour)
	assert.Empty(t, fb.Properties)
}

func TestParseMappingSource_MalformedDocumentIsError(t *testing.T) {
	_, err := ParseMappingSource([]byte(`not json at all`))
	require.Error(t, err)
}

package builder

import (
	"reflect"
	"testing"

	"github.com/ductile-labs/beanval/constraint"
	"github.com/ductile-labs/beanval/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDescriptor(t *testing.T, kind string) *constraint.Descriptor {
	t.Helper()
	d, err := constraint.NewBuilder(constraint.NewKind(kind)).Build()
	require.NoError(t, err)
	return d
}

func TestMergeElementSource_Additive(t *testing.T) {
	base := ElementSource{
		Constraints:       []*constraint.Descriptor{mustDescriptor(t, "NotBlank")},
		ContainerElements: map[descriptor.ContainerElementKey]*descriptor.ContainerElementDescriptor{},
	}
	overlay := ElementSource{
		Constraints:       []*constraint.Descriptor{mustDescriptor(t, "Size")},
		IsCascade:         true,
		ContainerElements: map[descriptor.ContainerElementKey]*descriptor.ContainerElementDescriptor{},
	}
	merged, conflict := mergeElementSource(base, overlay)
	assert.False(t, conflict)
	assert.Len(t, merged.Constraints, 2)
	assert.True(t, merged.IsCascade)
}

func TestMergeElementSource_GroupConversionConflict(t *testing.T) {
	base := ElementSource{
		GroupConversions: []descriptor.GroupConversion{{From: constraint.NewGroup("Extended"), To: constraint.NewGroup("Basic")}},
	}
	overlay := ElementSource{
		GroupConversions: []descriptor.GroupConversion{{From: constraint.NewGroup("Extended"), To: constraint.NewGroup("Other")}},
	}
	_, conflict := mergeElementSource(base, overlay)
	assert.True(t, conflict)
}

func TestMergeElementSource_GroupConversionAgreementNoConflict(t *testing.T) {
	base := ElementSource{
		GroupConversions: []descriptor.GroupConversion{{From: constraint.NewGroup("Extended"), To: constraint.NewGroup("Basic")}},
	}
	overlay := ElementSource{
		GroupConversions: []descriptor.GroupConversion{{From: constraint.NewGroup("Extended"), To: constraint.NewGroup("Basic")}},
	}
	merged, conflict := mergeElementSource(base, overlay)
	assert.False(t, conflict)
	assert.Len(t, merged.GroupConversions, 1)
}

type combinatorBean struct{}

func TestHierarchy_MergeCombinesOwnAndParents(t *testing.T) {
	own := newForBean(reflect.TypeOf(combinatorBean{}))
	own.Behaviour = BehaviourMerge
	own.Properties["name"] = ElementSource{Constraints: []*constraint.Descriptor{mustDescriptor(t, "NotBlank")}}

	parent := newForBean(reflect.TypeOf(combinatorBean{}))
	parent.Properties["address"] = ElementSource{Constraints: []*constraint.Descriptor{mustDescriptor(t, "NotNull")}}

	result, c := Hierarchy(own, parent)
	assert.Empty(t, c.properties)
	assert.Contains(t, result.Properties, "name")
	assert.Contains(t, result.Properties, "address")
}

func TestHierarchy_OverrideDiscardsParents(t *testing.T) {
	own := newForBean(reflect.TypeOf(combinatorBean{}))
	own.Behaviour = BehaviourOverride
	own.Properties["name"] = ElementSource{}

	parent := newForBean(reflect.TypeOf(combinatorBean{}))
	parent.Properties["address"] = ElementSource{}

	result, c := Hierarchy(own, parent)
	assert.Empty(t, c.properties)
	assert.Contains(t, result.Properties, "name")
	assert.NotContains(t, result.Properties, "address")
}

func TestHierarchy_AbstainUsesParentsOnly(t *testing.T) {
	own := newForBean(reflect.TypeOf(combinatorBean{}))
	own.Behaviour = BehaviourAbstain
	own.Properties["name"] = ElementSource{}

	parent := newForBean(reflect.TypeOf(combinatorBean{}))
	parent.Properties["address"] = ElementSource{}

	result, _ := Hierarchy(own, parent)
	assert.NotContains(t, result.Properties, "name")
	assert.Contains(t, result.Properties, "address")
	assert.Equal(t, own.Type, result.Type)
}

func TestParallel_EmptyCustomPassesPrimaryThrough(t *testing.T) {
	primary := newForBean(reflect.TypeOf(combinatorBean{}))
	primary.Properties["name"] = ElementSource{}
	custom := newForBean(reflect.TypeOf(combinatorBean{}))
	custom.Behaviour = BehaviourAbstain

	result, c := Parallel(primary, custom)
	assert.Empty(t, c.properties)
	assert.Contains(t, result.Properties, "name")
}

func TestParallel_OverrideReplacesPrimary(t *testing.T) {
	primary := newForBean(reflect.TypeOf(combinatorBean{}))
	primary.Properties["name"] = ElementSource{}
	custom := newForBean(reflect.TypeOf(combinatorBean{}))
	custom.Behaviour = BehaviourOverride
	custom.Properties["age"] = ElementSource{}

	result, _ := Parallel(primary, custom)
	assert.NotContains(t, result.Properties, "name")
	assert.Contains(t, result.Properties, "age")
	assert.Equal(t, primary.Type, result.Type)
}

func TestParallel_MergeCombinesBoth(t *testing.T) {
	primary := newForBean(reflect.TypeOf(combinatorBean{}))
	primary.Properties["name"] = ElementSource{}
	custom := newForBean(reflect.TypeOf(combinatorBean{}))
	custom.Behaviour = BehaviourMerge
	custom.Properties["age"] = ElementSource{}

	result, _ := Parallel(primary, custom)
	assert.Contains(t, result.Properties, "name")
	assert.Contains(t, result.Properties, "age")
}

func TestComposite_ConsensusAgreement(t *testing.T) {
	a := newForBean(reflect.TypeOf(combinatorBean{}))
	a.Behaviour = BehaviourMerge
	a.Properties["x"] = ElementSource{}
	b := newForBean(reflect.TypeOf(combinatorBean{}))
	b.Behaviour = BehaviourMerge
	b.Properties["y"] = ElementSource{}

	result, c := Composite(a, b)
	assert.Empty(t, c.behaviour)
	assert.Contains(t, result.Properties, "x")
	assert.Contains(t, result.Properties, "y")
	assert.Equal(t, BehaviourMerge, result.Behaviour)
}

func TestComposite_DisagreementRecordsConflict(t *testing.T) {
	a := newForBean(reflect.TypeOf(combinatorBean{}))
	a.Behaviour = BehaviourMerge
	b := newForBean(reflect.TypeOf(combinatorBean{}))
	b.Behaviour = BehaviourOverride

	_, c := Composite(a, b)
	require.Len(t, c.behaviour, 1)
	assert.Equal(t, reflect.TypeOf(combinatorBean{}).String(), c.behaviour[0])
}

func TestComposite_AbstainDoesNotCountTowardConsensus(t *testing.T) {
	a := newForBean(reflect.TypeOf(combinatorBean{}))
	a.Behaviour = BehaviourAbstain
	b := newForBean(reflect.TypeOf(combinatorBean{}))
	b.Behaviour = BehaviourMerge

	_, c := Composite(a, b)
	assert.Empty(t, c.behaviour)
}

func TestMergeForBean_DuplicatePropertyConflict(t *testing.T) {
	base := newForBean(reflect.TypeOf(combinatorBean{}))
	base.Properties["name"] = ElementSource{
		GroupConversions: []descriptor.GroupConversion{{From: constraint.NewGroup("A"), To: constraint.NewGroup("B")}},
	}
	overlay := newForBean(reflect.TypeOf(combinatorBean{}))
	overlay.Properties["name"] = ElementSource{
		GroupConversions: []descriptor.GroupConversion{{From: constraint.NewGroup("A"), To: constraint.NewGroup("C")}},
	}

	_, c := mergeForBean(base, overlay)
	assert.Equal(t, []string{"name"}, c.properties)
}

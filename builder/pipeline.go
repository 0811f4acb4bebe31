package builder

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/ductile-labs/beanval/descriptor"
	"github.com/ductile-labs/beanval/diag"
	"github.com/ductile-labs/beanval/internal/trace"
)

// Pipeline resolves a [reflect.Type] into a [descriptor.BeanDescriptor]
// by combining a stateless [ReflectiveSource] with an optional
// [MappingSource] overlay through [Parallel] and [Hierarchy], caching
// the result per type in a [Cache], per spec.md §4.3's "pipeline is
// evaluated lazily per type and the resulting BeanDescriptor is cached".
type Pipeline struct {
	reflective *ReflectiveSource
	mapping    *MappingSource
	cache      *Cache
	logger     *slog.Logger
}

// PipelineOption configures a [Pipeline] at construction time.
type PipelineOption func(*Pipeline)

// WithLogger enables trace-level debug logging for pipeline builds.
// Without one, [Pipeline.Resolve] carries no logging overhead beyond a
// nil check, per the teacher's graph.WithLogger idiom.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = logger }
}

// NewPipeline creates a Pipeline. mapping may be nil, in which case only
// the reflective source contributes declarations.
func NewPipeline(mapping *MappingSource, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		reflective: NewReflectiveSource(),
		mapping:    mapping,
		cache:      NewCache(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CacheStats exposes the underlying descriptor cache's hit/miss counters.
func (p *Pipeline) CacheStats() CacheStats {
	return p.cache.Stats()
}

// Resolve returns the cached (or newly built) BeanDescriptor for t, along
// with the diag.Result its build collected. A non-nil error means
// resolution could not proceed at all (e.g. a malformed struct tag); a
// nil descriptor with result.HasErrors() true means resolution completed
// but the merged descriptor has unresolved conflicts.
func (p *Pipeline) Resolve(ctx context.Context, t reflect.Type) (*descriptor.BeanDescriptor, diag.Result, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return p.cache.getOrBuild(t, func() (*descriptor.BeanDescriptor, diag.Result, error) {
		return p.build(ctx, t)
	})
}

// resolveForBean computes t's own effective ForBean by running
// [Parallel] over t's reflective and mapping sources, reducing any
// embedded (Go's hierarchy analogue) parent types via [Composite], and
// flattening the result into t's own declarations via [Hierarchy].
func (p *Pipeline) resolveForBean(t reflect.Type) (ForBean, conflicts, error) {
	reflective, err := p.reflective.ForBean(t)
	if err != nil {
		return ForBean{}, conflicts{}, err
	}

	custom := newForBean(t)
	custom.Behaviour = BehaviourAbstain
	if p.mapping != nil {
		custom, err = p.mapping.ForBean(t)
		if err != nil {
			return ForBean{}, conflicts{}, err
		}
	}

	own, all := Parallel(reflective, custom)
	// own's annotation-behaviour for Hierarchy purposes is whatever the
	// mapping document declared for this level (reflective tags carry no
	// behaviour concept of their own). An abstaining mapping, including one
	// with no entry for this type, has no opinion, so own's declarations
	// are merged with its parents'.
	own.Behaviour = custom.Behaviour
	if own.Behaviour == BehaviourAbstain {
		own.Behaviour = BehaviourMerge
	}

	var parents []ForBean
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		pt := f.Type
		for pt.Kind() == reflect.Pointer {
			pt = pt.Elem()
		}
		if pt.Kind() != reflect.Struct {
			continue
		}
		parentFB, pc, err := p.resolveForBean(pt)
		if err != nil {
			return ForBean{}, conflicts{}, err
		}
		parents = append(parents, parentFB)
		all.merge(pc)
	}

	var mergedParent ForBean
	if len(parents) > 0 {
		var pc conflicts
		mergedParent, pc = Composite(parents...)
		all.merge(pc)
	}

	var result ForBean
	var hc conflicts
	if len(parents) > 0 {
		result, hc = Hierarchy(own, mergedParent)
	} else {
		result, hc = Hierarchy(own)
	}
	all.merge(hc)

	return result, all, nil
}

// build performs one (uncached) descriptor build for t.
func (p *Pipeline) build(ctx context.Context, t reflect.Type) (*descriptor.BeanDescriptor, diag.Result, error) {
	op := trace.Begin(ctx, p.logger, "beanval.builder.build", slog.String("type", t.String()))
	var retErr error
	var issueCount int
	defer func() { op.End(retErr, slog.Int("issue_count", issueCount)) }()

	fb, c, err := p.resolveForBean(t)
	if err != nil {
		retErr = err
		return nil, diag.Result{}, err
	}

	collector := diag.NewCollectorUnlimited()
	for _, name := range c.behaviour {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_ANNOTATION_BEHAVIOR_CONFLICT,
			fmt.Sprintf("sibling sources for %s disagree on annotation-behaviour", name)).
			WithPath(t.String(), "").
			WithHint("give each source an explicit OVERRIDE or ABSTAIN annotationBehaviour so they no longer disagree").
			WithDetail(diag.DetailKeyTypeName, t.String()).Build())
	}
	for _, name := range c.properties {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_DUPLICATE_PROPERTY,
			fmt.Sprintf("property %q declared by multiple sources with conflicting group-conversion metadata", name)).
			WithPath(t.String(), name).
			WithHint("make the reflective and mapping-document declarations for this property agree on cascade and group-conversion metadata").
			WithDetail(diag.DetailKeyPropertyName, name).Build())
	}
	for _, name := range c.executables {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_DUPLICATE_EXECUTABLE,
			fmt.Sprintf("executable %q declared by multiple sources with conflicting parameter metadata", name)).
			WithPath(t.String(), name).
			WithHint("make the reflective and mapping-document declarations for this method or constructor agree on parameter metadata").
			WithDetail(diag.DetailKeyPropertyName, name).Build())
	}

	bd, buildErr := assembleDescriptor(t, fb)
	if buildErr != nil {
		collector.Collect(diag.NewIssue(diag.Error, diag.E_INTERNAL, buildErr.Error()).
			WithPath(t.String(), "").
			WithDetail(diag.DetailKeyTypeName, t.String()).Build())
	}

	result := collector.Result()
	issueCount = result.Len()
	if !result.OK() {
		return nil, result, nil
	}
	return bd, result, nil
}

// assembleDescriptor converts a merged ForBean into an immutable
// descriptor.BeanDescriptor.
func assembleDescriptor(t reflect.Type, fb ForBean) (*descriptor.BeanDescriptor, error) {
	bb := descriptor.NewBeanBuilder(t).WithConstraints(fb.TypeConstraints...)
	if fb.HasGroupSequence {
		bb = bb.WithGroupSequence(fb.GroupSequence...)
	}

	for name, es := range fb.Properties {
		pb := descriptor.NewPropertyBuilder(name, es.ElementType).
			WithConstraints(es.Constraints...).
			WithCascade(es.IsCascade)
		for _, gc := range es.GroupConversions {
			pb = pb.WithGroupConversion(gc)
		}
		for key, ce := range es.ContainerElements {
			pb = pb.WithContainerElement(key, ce)
		}
		bb = bb.WithProperty(pb.Build())
	}
	for _, ex := range fb.Methods {
		bb = bb.WithMethod(assembleExecutable(ex))
	}
	for _, ex := range fb.Constructors {
		bb = bb.WithConstructor(assembleExecutable(ex))
	}

	return bb.Build()
}

func assembleExecutable(ex ExecutableSource) *descriptor.ExecutableDescriptor {
	eb := descriptor.NewExecutableBuilder(ex.Name, ex.ParameterTypes)
	for _, p := range ex.Parameters {
		eb = eb.WithParameter(descriptor.NewParameterDescriptor(
			p.Name, p.Index, p.ElementType, p.Constraints, p.IsCascade, p.GroupConversions, p.ContainerElements))
	}
	eb = eb.WithReturnValue(descriptor.NewReturnValueDescriptor(
		ex.ReturnValue.ElementType, ex.ReturnValue.Constraints, ex.ReturnValue.IsCascade,
		ex.ReturnValue.GroupConversions, ex.ReturnValue.ContainerElements))
	eb = eb.WithCrossParameterConstraints(ex.CrossParameterConstraints...)
	return eb.Build()
}

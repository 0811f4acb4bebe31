package engine

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"unicode"

	"github.com/google/uuid"

	"github.com/ductile-labs/beanval/builder"
	"github.com/ductile-labs/beanval/constraint"
	"github.com/ductile-labs/beanval/descriptor"
	"github.com/ductile-labs/beanval/group"
	"github.com/ductile-labs/beanval/internal/trace"
	"github.com/ductile-labs/beanval/path"
	"github.com/ductile-labs/beanval/spi"
	"github.com/ductile-labs/beanval/validator"
	"github.com/ductile-labs/beanval/violation"
)

// Job realizes one validation request against a bean, executable
// parameter array, or return value, per spec.md §4.5. A Job is single-use
// and single-goroutine: call exactly one of [Job.Validate],
// [Job.ValidateParameters], or [Job.ValidateReturnValue].
type Job struct {
	pipeline   *builder.Pipeline
	validators *validator.Registry
	resolver   spi.TraversableResolver
	extractors spi.ValueExtractors
	clock      spi.ClockProvider
	paramNames spi.ParameterNameProvider
	composer   *constraint.Composer
	seqOf      group.SequenceLookup
	logger     *slog.Logger

	seen map[identityKey]bool
	used bool
}

// Option configures a [Job] at construction time.
type Option func(*Job)

// WithTraversableResolver installs a resolver gating property
// reachability and cascadability. Without one, every property is treated
// as reachable and cascadable.
func WithTraversableResolver(r spi.TraversableResolver) Option {
	return func(j *Job) { j.resolver = r }
}

// WithValueExtractors overrides the default ([spi.DefaultValueExtractors])
// container-element extraction registry.
func WithValueExtractors(e spi.ValueExtractors) Option {
	return func(j *Job) { j.extractors = e }
}

// WithClockProvider installs the reference-time collaborator for
// time-relative constraints.
func WithClockProvider(c spi.ClockProvider) Option {
	return func(j *Job) { j.clock = c }
}

// WithParameterNameProvider installs the collaborator resolving
// human-readable parameter names for method/constructor validation paths.
func WithParameterNameProvider(p spi.ParameterNameProvider) Option {
	return func(j *Job) { j.paramNames = p }
}

// WithComposer installs the annotation-composition resolver used to
// expand a constraint occurrence's composing constraints at validation
// time, per spec.md §4.1. Without one, only a constraint's statically
// attached [constraint.Descriptor.Composing] (if any) is used.
func WithComposer(c *constraint.Composer) Option {
	return func(j *Job) { j.composer = c }
}

// WithSequenceLookup installs the lookup resolving whether a requested
// group kind is itself declared as a named group sequence, per spec.md
// §4.4. Without one, no requested group is treated as a sequence kind
// (only a bean's own class-level group sequence still redirects Default).
func WithSequenceLookup(fn group.SequenceLookup) Option {
	return func(j *Job) { j.seqOf = fn }
}

// WithLogger enables trace-level debug logging for this Job's run,
// tagged with a per-Job request ID so a single run's operation
// boundaries (descriptor resolution, traversal) can be correlated in
// log output. Without one, a Job carries no logging overhead beyond a
// nil check, per the teacher's graph.WithLogger idiom.
func WithLogger(logger *slog.Logger) Option {
	return func(j *Job) { j.logger = logger }
}

// NewJob creates a Job resolving descriptors through pipeline and
// validators through registry.
func NewJob(pipeline *builder.Pipeline, validators *validator.Registry, opts ...Option) *Job {
	j := &Job{
		pipeline:   pipeline,
		validators: validators,
		extractors: spi.DefaultValueExtractors(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *Job) sequenceLookup(g constraint.Group) ([]constraint.Group, bool) {
	if j.seqOf == nil {
		return nil, false
	}
	return j.seqOf(g)
}

// beginRun tags ctx with a fresh per-Job request ID and opens the
// "beanval.engine.validate" operation boundary, per the teacher's
// trace.Begin/Op.End idiom (graph.Add's op boundary logging).
func (j *Job) beginRun(ctx context.Context, rootType reflect.Type) (context.Context, *trace.Op) {
	ctx = trace.WithRequestID(ctx, uuid.NewString())
	op := trace.Begin(ctx, j.logger, "beanval.engine.validate", slog.String("type", rootType.String()))
	return ctx, op
}

// Validate validates bean against the requested groups (defaulting to
// just [constraint.Default] when none are given), per spec.md §4.4 and
// §4.5.
func (j *Job) Validate(ctx context.Context, bean any, groups ...constraint.Group) (violations []violation.Violation, err error) {
	if j.used {
		return nil, ErrJobAlreadyUsed
	}
	j.used = true
	if len(groups) == 0 {
		groups = []constraint.Group{constraint.Default}
	}

	v := reflect.ValueOf(bean)
	rootType := v.Type()
	for rootType.Kind() == reflect.Ptr {
		rootType = rootType.Elem()
	}

	ctx, op := j.beginRun(ctx, rootType)
	defer func() { op.End(err, slog.Int("violation_count", len(violations))) }()

	descr, result, err := j.pipeline.Resolve(ctx, rootType)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		err = &CollaboratorError{Kind: KindDescriptorBuild, Cause: fmt.Errorf("descriptor build for %s failed: %s", rootType, result)}
		return nil, err
	}

	violations, err = j.runPlan(groups, func(g constraint.Group) ([]violation.Violation, error) {
		return j.evalBean(ctx, descr, v, path.Root(), nil, g, rootType)
	})
	return violations, err
}

// ValidateParameters validates the arguments of one invocation of a
// constrained method, per spec.md §4.5. methodName must name a method
// resolved by [descriptor.BeanDescriptor.Method].
func (j *Job) ValidateParameters(ctx context.Context, receiver any, methodName string, params []any, groups ...constraint.Group) (violations []violation.Violation, err error) {
	if j.used {
		return nil, ErrJobAlreadyUsed
	}
	j.used = true
	if len(groups) == 0 {
		groups = []constraint.Group{constraint.Default}
	}

	rootType, err := receiverType(receiver)
	if err != nil {
		return nil, err
	}

	ctx, op := j.beginRun(ctx, rootType)
	defer func() { op.End(err, slog.Int("violation_count", len(violations))) }()

	descr, result, err := j.pipeline.Resolve(ctx, rootType)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		err = &CollaboratorError{Kind: KindDescriptorBuild, Cause: fmt.Errorf("descriptor build for %s failed: %s", rootType, result)}
		return nil, err
	}

	paramTypes := make([]reflect.Type, len(params))
	for i, p := range params {
		paramTypes[i] = reflect.TypeOf(p)
	}

	ex, ok := descr.Method(methodName, paramTypes)
	if !ok {
		err = fmt.Errorf("engine: %s has no constrained method %s with the given parameter types", rootType, methodName)
		return nil, err
	}

	names := j.resolveParameterNames(rootType, methodName, ex)

	violations, err = j.runPlan(groups, func(g constraint.Group) ([]violation.Violation, error) {
		return j.evalExecutable(ctx, ex, names, params, path.Root(), nil, g, rootType)
	})
	return violations, err
}

// ValidateReturnValue validates the return value of one invocation of a
// constrained method or constructor, per spec.md §4.5.
func (j *Job) ValidateReturnValue(ctx context.Context, receiver any, methodName string, paramTypes []reflect.Type, returnValue any, groups ...constraint.Group) (violations []violation.Violation, err error) {
	if j.used {
		return nil, ErrJobAlreadyUsed
	}
	j.used = true
	if len(groups) == 0 {
		groups = []constraint.Group{constraint.Default}
	}

	rootType, err := receiverType(receiver)
	if err != nil {
		return nil, err
	}

	ctx, op := j.beginRun(ctx, rootType)
	defer func() { op.End(err, slog.Int("violation_count", len(violations))) }()

	descr, result, err := j.pipeline.Resolve(ctx, rootType)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		err = &CollaboratorError{Kind: KindDescriptorBuild, Cause: fmt.Errorf("descriptor build for %s failed: %s", rootType, result)}
		return nil, err
	}

	ex, ok := descr.Method(methodName, paramTypes)
	if !ok {
		err = fmt.Errorf("engine: %s has no constrained method %s with the given parameter types", rootType, methodName)
		return nil, err
	}

	rv := ex.ReturnValue()
	p := path.Root().ReturnValue()
	node := path.ReturnValueNode{}

	violations, err = j.runPlan(groups, func(g constraint.Group) ([]violation.Violation, error) {
		return j.evalSprout(ctx, sproutInput{
			elementType:      rv.ElementType(),
			constraints:      rv.Constraints(),
			isCascade:        rv.IsCascade(),
			groupConversions: rv.GroupConversions(),
			containerElems:   containerElementMap(rv.ElementType(), rv),
			elementKind:      constraint.ElementReturnValue,
		}, reflect.ValueOf(returnValue), p, nil, g, rootType, node)
	})
	return violations, err
}

// runPlan computes the requested groups' traversal plan via group.Compute
// and runs one fresh pass per group, short-circuiting the remainder of a
// sequence as soon as a pass within it produces any violation, per
// spec.md §4.4.
func (j *Job) runPlan(groups []constraint.Group, run func(constraint.Group) ([]violation.Violation, error)) ([]violation.Violation, error) {
	simple, sequences, err := group.Compute(groups, j.sequenceLookup)
	if err != nil {
		return nil, err
	}

	var all []violation.Violation
	for _, g := range simple {
		j.seen = make(map[identityKey]bool)
		vs, err := run(g)
		if err != nil {
			return nil, err
		}
		all = append(all, vs...)
	}
	for _, seq := range sequences {
		for _, g := range seq {
			j.seen = make(map[identityKey]bool)
			vs, err := run(g)
			if err != nil {
				return nil, err
			}
			all = append(all, vs...)
			if len(vs) > 0 {
				break
			}
		}
	}
	return all, nil
}

func (j *Job) resolveParameterNames(rootType reflect.Type, methodName string, ex *descriptor.ExecutableDescriptor) []string {
	if j.paramNames != nil {
		if m, ok := rootType.MethodByName(methodName); ok {
			return j.paramNames.ParameterNames(m)
		}
	}
	names := make([]string, len(ex.Parameters()))
	for _, pd := range ex.Parameters() {
		if pd.Index() < len(names) {
			names[pd.Index()] = pd.Name()
		}
	}
	return names
}

func receiverType(receiver any) (reflect.Type, error) {
	v := reflect.ValueOf(receiver)
	if !v.IsValid() {
		return nil, fmt.Errorf("engine: nil receiver")
	}
	t := v.Type()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t, nil
}

// containerElementMap adapts a descriptor's single ContainerElement lookup
// method into the map shape [PropertyDescriptor.ContainerElements] already
// returns, since [descriptor.ReturnValueDescriptor] and
// [descriptor.ParameterDescriptor] only expose the keyed accessor. Engine
// code only ever needs a handful of well-known keys (type-argument index 0
// for single-argument containers, 0/1 for maps), so this probes those
// rather than requiring every descriptor type to expose the full map.
func containerElementMap(elementType reflect.Type, src interface {
	ContainerElement(descriptor.ContainerElementKey) (*descriptor.ContainerElementDescriptor, bool)
}) map[descriptor.ContainerElementKey]*descriptor.ContainerElementDescriptor {
	out := make(map[descriptor.ContainerElementKey]*descriptor.ContainerElementDescriptor)
	for _, idx := range []int{0, 1} {
		key := descriptor.ContainerElementKey{ContainerType: elementType, TypeArgIndex: idx}
		if ce, ok := src.ContainerElement(key); ok {
			out[key] = ce
		}
	}
	return out
}

func exportedFieldName(property string) string {
	if property == "" {
		return property
	}
	r := []rune(property)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func dereference(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func safeInterface(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}

func applyConversion(g constraint.Group, conversions []descriptor.GroupConversion) constraint.Group {
	for _, gc := range conversions {
		if gc.From == g {
			return gc.To
		}
	}
	return g
}

func containerElementKeyFor(containerType reflect.Type, node path.Node) descriptor.ContainerElementKey {
	if _, ok := node.(path.KeyNode); ok {
		return descriptor.ContainerElementKey{ContainerType: containerType, TypeArgIndex: 1}
	}
	return descriptor.ContainerElementKey{ContainerType: containerType, TypeArgIndex: 0}
}

func extendPath(p path.Path, node path.Node) path.Path {
	switch n := node.(type) {
	case path.IndexNode:
		return p.Index(n.Index)
	case path.KeyNode:
		return p.Key(n.Key)
	default:
		return p.ContainerElement(path.ContainerElementNode{})
	}
}

func targetFor(d *constraint.Descriptor) constraint.ValidationTarget {
	switch d.ApplyTo() {
	case constraint.ApplyToParameters:
		return constraint.TargetParameters
	case constraint.ApplyToAnnotatedElement:
		return constraint.TargetAnnotatedElement
	default:
		if d.DeclaredOn() == constraint.ElementCrossParameter {
			return constraint.TargetParameters
		}
		return constraint.TargetAnnotatedElement
	}
}

package engine

import (
	"context"
	"fmt"
	"reflect"

	"github.com/ductile-labs/beanval/constraint"
	"github.com/ductile-labs/beanval/descriptor"
	"github.com/ductile-labs/beanval/group"
	"github.com/ductile-labs/beanval/path"
	"github.com/ductile-labs/beanval/violation"
)

// sproutInput bundles the ElementSource-shaped metadata shared by
// properties, parameters, return values, and container elements — every
// non-bean frame the engine evaluates, per spec.md §3's common
// "constraints / is-cascade / group-conversions / container-elements"
// shape.
type sproutInput struct {
	elementType      reflect.Type
	constraints      []*constraint.Descriptor
	isCascade        bool
	groupConversions []descriptor.GroupConversion
	containerElems   map[descriptor.ContainerElementKey]*descriptor.ContainerElementDescriptor
	elementKind      constraint.ElementKind
}

// evalBean is the Bean frame of spec.md §4.5: it evaluates d's type-level
// constraints (honoring a declared group sequence's local short-circuit),
// then recurses into every constrained property using grp unchanged.
func (j *Job) evalBean(ctx context.Context, d *descriptor.BeanDescriptor, v reflect.Value, p path.Path, parent *frameContext, grp constraint.Group, rootType reflect.Type) ([]violation.Violation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !v.IsValid() {
		return nil, nil
	}
	if j.skip(v) {
		return nil, nil
	}

	frame := &frameContext{path: p, value: v, parent: parent}

	var violations []violation.Violation
	for _, g := range group.RedirectDefault([]constraint.Group{grp}, d.GroupSequence(), d.HasGroupSequence()) {
		failed := false
		for _, c := range d.Constraints() {
			if !c.HasGroup(g) {
				continue
			}
			vs, err := j.evaluateConstraint(ctx, c, safeInterface(v), d.BeanType(), p)
			if err != nil {
				return nil, err
			}
			if len(vs) > 0 {
				failed = true
			}
			violations = append(violations, vs...)
		}
		if failed {
			break
		}
	}

	structValue := dereference(v)
	if structValue.IsValid() && structValue.Kind() == reflect.Struct {
		for _, prop := range d.Properties() {
			sub, err := j.evalProperty(ctx, prop, v, structValue, p, frame, grp, rootType)
			if err != nil {
				return nil, err
			}
			violations = append(violations, sub...)
		}
	}
	return violations, nil
}

// evalProperty resolves one bean property's reachability, then delegates
// to the shared Sprout-frame evaluation.
func (j *Job) evalProperty(ctx context.Context, prop *descriptor.PropertyDescriptor, beanValue, structValue reflect.Value, beanPath path.Path, parent *frameContext, grp constraint.Group, rootType reflect.Type) ([]violation.Violation, error) {
	field := structValue.FieldByName(exportedFieldName(prop.Name()))
	if !field.IsValid() {
		return nil, nil
	}

	node := path.PropertyNode{Name: prop.Name()}
	if j.resolver != nil {
		if !j.resolver.IsReachable(safeInterface(beanValue), node, rootType, beanPath, constraint.ElementField) {
			return nil, nil
		}
	}

	propPath := beanPath.Property(prop.Name())
	return j.evalSprout(ctx, sproutInput{
		elementType:      prop.ElementType(),
		constraints:      prop.Constraints(),
		isCascade:        prop.IsCascade(),
		groupConversions: prop.GroupConversions(),
		containerElems:   prop.ContainerElements(),
		elementKind:      constraint.ElementField,
	}, field, propPath, parent, grp, rootType, node)
}

// evalExecutable is the Parameters frame of spec.md §4.5: it evaluates an
// executable's cross-parameter constraints against the full argument
// array, then recurses into each parameter as a Sprout frame.
func (j *Job) evalExecutable(ctx context.Context, ex *descriptor.ExecutableDescriptor, paramNames []string, params []any, basePath path.Path, parent *frameContext, grp constraint.Group, rootType reflect.Type) ([]violation.Violation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var violations []violation.Violation
	crossPath := basePath.CrossParameter()
	crossType := reflect.TypeOf(params)
	for _, c := range ex.CrossParameterConstraints() {
		if !c.HasGroup(grp) {
			continue
		}
		vs, err := j.evaluateConstraint(ctx, c, params, crossType, crossPath)
		if err != nil {
			return nil, err
		}
		violations = append(violations, vs...)
	}

	for _, pd := range ex.Parameters() {
		i := pd.Index()
		name := pd.Name()
		if i < len(paramNames) && paramNames[i] != "" {
			name = paramNames[i]
		}
		node := path.ParameterNode{Name: name, Index: i}
		p := basePath.Parameter(name, i)

		var val reflect.Value
		if i < len(params) {
			val = reflect.ValueOf(params[i])
		}

		sub, err := j.evalSprout(ctx, sproutInput{
			elementType:      pd.ElementType(),
			constraints:      pd.Constraints(),
			isCascade:        pd.IsCascade(),
			groupConversions: pd.GroupConversions(),
			containerElems:   containerElementMap(pd.ElementType(), pd),
			elementKind:      constraint.ElementParameter,
		}, val, p, parent, grp, rootType, node)
		if err != nil {
			return nil, err
		}
		violations = append(violations, sub...)
	}

	return violations, nil
}

// evalSprout is the Sprout frame of spec.md §4.5: the shared evaluation
// shape for properties, parameters, return values, and container
// elements. It evaluates in.constraints against value (splitting off any
// Unwrap-payload constraints to apply to extracted container elements
// instead, per spec.md §4.2), recurses into container elements via the
// registered [spi.ValueExtractor], and cascades into a nested bean frame
// when in.isCascade is set and the traversable resolver permits it.
func (j *Job) evalSprout(ctx context.Context, in sproutInput, value reflect.Value, p path.Path, parent *frameContext, grp constraint.Group, rootType reflect.Type, node path.Node) ([]violation.Violation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var violations []violation.Violation
	raw := safeInterface(value)

	var direct, unwrap []*constraint.Descriptor
	for _, c := range in.constraints {
		if c.HasPayload(constraint.PayloadUnwrap) {
			unwrap = append(unwrap, c)
		} else {
			direct = append(direct, c)
		}
	}

	for _, c := range direct {
		if !c.HasGroup(grp) {
			continue
		}
		vs, err := j.evaluateConstraint(ctx, c, raw, in.elementType, p)
		if err != nil {
			return nil, err
		}
		violations = append(violations, vs...)
	}

	if (len(unwrap) > 0 || len(in.containerElems) > 0) && raw != nil && j.extractors != nil {
		if extractor, ok := j.extractors.ExtractorFor(in.elementType); ok {
			var inner error
			extractErr := extractor.ExtractValues(raw, func(subNode path.Node, subValue any) {
				if inner != nil {
					return
				}
				childPath := extendPath(p, subNode)
				subVal := reflect.ValueOf(subValue)

				for _, c := range unwrap {
					if !c.HasGroup(grp) {
						continue
					}
					vs, err := j.evaluateConstraint(ctx, c, subValue, subVal.Type(), childPath)
					if err != nil {
						inner = err
						return
					}
					violations = append(violations, vs...)
				}

				key := containerElementKeyFor(in.elementType, subNode)
				ce, ok := in.containerElems[key]
				if !ok {
					return
				}
				sub, err := j.evalSprout(ctx, sproutInput{
					elementType:      ce.ElementType(),
					constraints:      ce.Constraints(),
					isCascade:        ce.IsCascade(),
					groupConversions: ce.GroupConversions(),
					containerElems:   containerElementMap(ce.ElementType(), ce),
					elementKind:      constraint.ElementContainerElement,
				}, subVal, childPath, parent, grp, rootType, subNode)
				if err != nil {
					inner = err
					return
				}
				violations = append(violations, sub...)
			})
			if extractErr != nil {
				return nil, &CollaboratorError{Kind: KindValueExtractor, Path: p, Cause: extractErr}
			}
			if inner != nil {
				return nil, inner
			}
		}
	}

	if in.isCascade {
		cascadeValue := dereference(value)
		if cascadeValue.IsValid() && cascadeValue.Kind() == reflect.Struct {
			if j.resolver != nil {
				if !j.resolver.IsCascadable(raw, node, rootType, p.Parent(), in.elementKind) {
					return violations, nil
				}
			}

			skip := false
			if key, ok := identityOf(value); ok && ancestorHasIdentity(parent, key) {
				skip = true
			}
			if !skip {
				childGrp := applyConversion(grp, in.groupConversions)
				childDescr, result, err := j.pipeline.Resolve(ctx, cascadeValue.Type())
				if err != nil {
					return nil, err
				}
				if !result.OK() {
					return nil, &CollaboratorError{Kind: KindDescriptorBuild, Path: p, Cause: fmt.Errorf("descriptor build for %s failed: %s", cascadeValue.Type(), result)}
				}
				sub, err := j.evalBean(ctx, childDescr, value, p, parent, childGrp, rootType)
				if err != nil {
					return nil, err
				}
				violations = append(violations, sub...)
			}
		}
	}

	return violations, nil
}

// evaluateConstraint implements the validate(constraint) algorithm of
// spec.md §4.5/§4.6: resolve the applicable validator, initialize and run
// it, collect its violations, then resolve and evaluate its composing
// constraints per the report-as-single-violation rule of spec.md §4.1.
//
// When the declaring kind bears report-as-single-violation, the composed
// constraint's own custom-built violations and every composing
// constraint's violations are suppressed: a single failure anywhere in
// the group (the own validator or any composing constraint) is reported
// as exactly one violation bearing the parent's own default message
// template. This is a deliberate reading of spec.md §4.1's "only its own
// default violation is reported" — the spec's worked scenario pins this
// shape (an Email composed from Pattern+NotNull, null input producing
// exactly the Email default message) without fully specifying what
// happens to an own custom-built violation in the same pass, so the own
// validator's custom additions are folded into the same suppression as
// the composing constraints' violations rather than treated specially.
func (j *Job) evaluateConstraint(ctx context.Context, d *constraint.Descriptor, value any, valueType reflect.Type, p path.Path) ([]violation.Violation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target := targetFor(d)
	reg, err := j.validators.Resolve(d.Kind(), valueType, target)
	if err != nil {
		return nil, err
	}

	v := reg.Factory()
	if err := v.Initialize(d); err != nil {
		return nil, &CollaboratorError{Kind: KindValidatorInitialize, Path: p, Cause: err}
	}

	vctx := violation.NewContext(p, value, d.MessageTemplate())
	valid, err := v.IsValid(value, violationContextAdapter{ctx: vctx})
	if err != nil {
		return nil, &CollaboratorError{Kind: KindValidatorIsValid, Path: p, Cause: err}
	}

	var ownViolations []violation.Violation
	ownFailed := !valid
	if ownFailed {
		ownViolations = vctx.Violations()
	}

	composing := d.Composing()
	reportSingle := d.ReportAsSingleViolation()
	if j.composer != nil {
		resolved, rs, cErr := j.composer.Compose(d)
		if cErr != nil {
			return nil, cErr
		}
		if len(resolved) > 0 {
			composing = resolved
		}
		reportSingle = reportSingle || rs
	}

	if len(composing) == 0 {
		return ownViolations, nil
	}

	if reportSingle {
		failed := ownFailed
		for _, cc := range composing {
			sub, err := j.evaluateConstraint(ctx, cc.Descriptor, value, valueType, p)
			if err != nil {
				return nil, err
			}
			if len(sub) > 0 {
				failed = true
				break
			}
		}
		if failed {
			return []violation.Violation{{Template: d.MessageTemplate(), Path: p, LeafValue: value}}, nil
		}
		return nil, nil
	}

	all := append([]violation.Violation(nil), ownViolations...)
	for _, cc := range composing {
		sub, err := j.evaluateConstraint(ctx, cc.Descriptor, value, valueType, p)
		if err != nil {
			return nil, err
		}
		all = append(all, sub...)
	}
	return all, nil
}

package constraint

import "github.com/ductile-labs/beanval/cache"

// OverrideDecl is one "override" declaration on an attribute of a composed
// constraint kind, per spec.md §4.1: it names the attribute `from` on the
// parent, and maps it onto attribute `to` (default: same name) of the
// `constraintIndex`-th composing constraint of kind `target`.
type OverrideDecl struct {
	From            string
	Target          Kind
	ConstraintIndex int // -1 means "the sole composing of that kind"
	To              string
}

// MetaConstraint is one declared composing constraint of a parent kind: the
// composing kind itself, its default attributes, and its supported-target
// set. The parent-level override declarations that feed it are held in
// [KindMeta.Overrides], not here.
type MetaConstraint struct {
	Kind             Kind
	DefaultAttrs     map[string]any
	SupportedTargets []ValidationTarget
}

// KindMeta is everything [Compose] needs to know about a constraint kind
// independent of any particular occurrence: its composing constraints and
// its own supported-target set.
type KindMeta struct {
	SupportedTargets []ValidationTarget
	Composing        []MetaConstraint
	Overrides        []OverrideDecl
	ReportAsSingle   bool
}

// MetaSource resolves the declared meta-constraints for a constraint kind —
// the composing constraint kinds, their override mappings, and
// supported-target sets. A concrete implementation typically reads this
// from reflected struct-tag metadata or a registry populated at
// registration time.
type MetaSource interface {
	MetaFor(k Kind) (KindMeta, bool)
}

// Composer resolves composing constraints for constraint occurrences,
// caching the per-kind meta-declarations (not the per-occurrence results,
// which are always freshly rebuilt) in a bounded LRU, per spec.md §4.1 and
// §6's constraints.cache.size.
type Composer struct {
	meta  MetaSource
	cache *cache.LRU[Kind, resolvedMeta]
}

type resolvedMeta struct {
	meta KindMeta
}

// NewComposer creates a Composer backed by meta and an LRU of the given
// size (spec.md §6's constraints.cache.size; must be positive).
func NewComposer(meta MetaSource, cacheSize int) (*Composer, error) {
	lru, err := cache.NewLRU[Kind, resolvedMeta](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Composer{meta: meta, cache: lru}, nil
}

// Compose resolves and builds the composing constraints for src, per
// spec.md §4.1. Each composing constraint is freshly rebuilt with attribute
// values copied from src's own attributes wherever an override declaration
// names it.
func (c *Composer) Compose(src *Descriptor) ([]ComposingConstraint, bool, error) {
	rm, err := c.cache.GetOrCompute(src.kind, func() (resolvedMeta, error) {
		meta, ok := c.meta.MetaFor(src.kind)
		if !ok {
			return resolvedMeta{}, nil
		}
		if err := validateOverrides(src.kind, meta); err != nil {
			return resolvedMeta{}, err
		}
		return resolvedMeta{meta: meta}, nil
	})
	if err != nil {
		return nil, false, err
	}
	if len(rm.meta.Composing) == 0 {
		return nil, rm.meta.ReportAsSingle, nil
	}

	result := make([]ComposingConstraint, 0, len(rm.meta.Composing))
	for i, mc := range rm.meta.Composing {
		if err := checkTargetCompatibility(src.kind, rm.meta.SupportedTargets, mc); err != nil {
			return nil, false, err
		}

		b := NewBuilder(mc.Kind).
			WithAttributes(mc.DefaultAttrs).
			WithGroups(src.groups...).
			WithApplyTo(src.applyTo).
			WithScope(src.scope).
			WithDeclaredOn(src.declaredOn)

		overridden := map[string]bool{}
		for _, ov := range rm.meta.Overrides {
			if ov.Target != mc.Kind {
				continue
			}
			idx := ov.ConstraintIndex
			if idx == -1 {
				if soleIndexOf(rm.meta.Composing, mc.Kind) != i {
					continue
				}
			} else if idx != i {
				continue
			}
			to := ov.To
			if to == "" {
				to = ov.From
			}
			if v, ok := src.Attribute(ov.From); ok {
				b.WithAttribute(to, v)
				overridden[to] = true
			}
		}

		d, buildErr := b.Build()
		if buildErr != nil {
			return nil, false, buildErr
		}
		result = append(result, ComposingConstraint{Descriptor: d, Overridden: overridden})
	}

	return result, rm.meta.ReportAsSingle, nil
}

// soleIndexOf returns the single index in composing whose Kind equals
// target, or -1 if there isn't exactly one.
func soleIndexOf(composing []MetaConstraint, target Kind) int {
	found := -1
	count := 0
	for i, mc := range composing {
		if mc.Kind == target {
			found = i
			count++
		}
	}
	if count != 1 {
		return -1
	}
	return found
}

// validateOverrides enforces spec.md §4.1's "Conflict" rule: two override
// declarations must not map to the same (target-kind, index, to-attribute)
// triple.
func validateOverrides(source Kind, meta KindMeta) error {
	type key struct {
		target Kind
		index  int
		to     string
	}
	seen := map[key]bool{}
	for _, ov := range meta.Overrides {
		idx := ov.ConstraintIndex
		if idx == -1 {
			idx = soleIndexOf(meta.Composing, ov.Target)
			if idx == -1 {
				return &DefinitionError{
					Kind:      KindOverrideAmbiguous,
					Source:    source,
					Composing: ov.Target,
					Detail:    "constraintIndex -1 requires exactly one composing constraint of the target kind",
				}
			}
		}
		to := ov.To
		if to == "" {
			to = ov.From
		}
		k := key{target: ov.Target, index: idx, to: to}
		if seen[k] {
			return &DefinitionError{
				Kind:      KindOverrideConflict,
				Source:    source,
				Composing: ov.Target,
				Detail:    "two override declarations map to the same target attribute",
			}
		}
		seen[k] = true
	}
	return nil
}

// checkTargetCompatibility enforces spec.md §4.1's "Target compatibility"
// rule: the composing kind's supported targets must intersect the
// composed (parent) kind's supported targets.
func checkTargetCompatibility(parent Kind, parentTargets []ValidationTarget, mc MetaConstraint) error {
	for _, pt := range parentTargets {
		for _, ct := range mc.SupportedTargets {
			if pt == ct {
				return nil
			}
		}
	}
	return &DefinitionError{
		Kind:      KindTargetMismatch,
		Source:    parent,
		Composing: mc.Kind,
		Detail:    "composing constraint shares no ValidationTarget with the composed constraint",
	}
}

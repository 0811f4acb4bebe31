package group

import (
	"fmt"

	"github.com/ductile-labs/beanval/constraint"
)

// SequenceLookup resolves whether a group kind is itself declared as a
// group sequence and, if so, its ordered component list.
type SequenceLookup func(g constraint.Group) (components []constraint.Group, isSequence bool)

// CycleError reports that expanding a group sequence revisited a group
// kind already on the expansion path, per diag code E_GROUP_SEQUENCE_CYCLE.
type CycleError struct {
	Path []constraint.Group
}

func (e *CycleError) Error() string {
	msg := "group: sequence expansion cycle: "
	for i, g := range e.Path {
		if i > 0 {
			msg += " -> "
		}
		msg += g.String()
	}
	return msg
}

// RedirectDefault substitutes beanSequence for every occurrence of
// [constraint.Default] in groups, in place of that single element,
// per spec.md §4.4's "Default redirection": this applies only when
// validating a bean whose descriptor declares a group sequence
// (hasBeanSequence); otherwise groups is returned unchanged.
func RedirectDefault(groups []constraint.Group, beanSequence []constraint.Group, hasBeanSequence bool) []constraint.Group {
	if !hasBeanSequence {
		return append([]constraint.Group(nil), groups...)
	}
	out := make([]constraint.Group, 0, len(groups))
	for _, g := range groups {
		if g == constraint.Default {
			out = append(out, beanSequence...)
			continue
		}
		out = append(out, g)
	}
	return out
}

// Compute partitions groups (after any [RedirectDefault] substitution)
// into an ordered set of simple groups and an ordered list of expanded
// sequences, per spec.md §4.4. A group resolved by seqOf as a sequence
// kind is expanded to its ordered components (recursively, since a
// sequence's components may themselves be sequence kinds); all other
// groups are deduplicated, order-preserving, into simple.
func Compute(groups []constraint.Group, seqOf SequenceLookup) (simple []constraint.Group, sequences [][]constraint.Group, err error) {
	seenSimple := make(map[constraint.Group]bool, len(groups))
	for _, g := range groups {
		if components, ok := seqOf(g); ok {
			expanded, expandErr := expandSequence(g, components, seqOf, []constraint.Group{g})
			if expandErr != nil {
				return nil, nil, expandErr
			}
			sequences = append(sequences, expanded)
			continue
		}
		if seenSimple[g] {
			continue
		}
		seenSimple[g] = true
		simple = append(simple, g)
	}
	return simple, sequences, nil
}

// expandSequence flattens components left-to-right, recursively expanding
// any component that is itself a sequence kind, with keep-first
// deduplication and DFS-path cycle detection.
func expandSequence(owner constraint.Group, components []constraint.Group, seqOf SequenceLookup, path []constraint.Group) ([]constraint.Group, error) {
	seen := make(map[constraint.Group]bool)
	var out []constraint.Group

	var visit func(g constraint.Group, path []constraint.Group) error
	visit = func(g constraint.Group, path []constraint.Group) error {
		for _, p := range path {
			if p == g {
				return &CycleError{Path: append(append([]constraint.Group(nil), path...), g)}
			}
		}
		if sub, ok := seqOf(g); ok {
			nextPath := append(append([]constraint.Group(nil), path...), g)
			for _, s := range sub {
				if err := visit(s, nextPath); err != nil {
					return err
				}
			}
			return nil
		}
		if seen[g] {
			return nil
		}
		seen[g] = true
		out = append(out, g)
		return nil
	}

	for _, c := range components {
		if err := visit(c, path); err != nil {
			return nil, err
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("group: sequence %s expands to an empty group list", owner)
	}
	return out, nil
}

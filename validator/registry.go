package validator

import (
	"reflect"
	"sync"

	"github.com/ductile-labs/beanval/constraint"
	"github.com/ductile-labs/beanval/rtype"
	"github.com/ductile-labs/beanval/spi"
)

// Registration is one registered validator implementation for a constraint
// kind: the concrete value type it supports, the validation target it
// operates on, and a factory producing a fresh validator instance per
// occurrence (a validator may carry occurrence-scoped state set up in
// Initialize).
type Registration struct {
	ValueType reflect.Type
	Target    constraint.ValidationTarget
	Factory   func() spi.ConstraintValidator
}

// Registry holds every validator implementation registered for every
// constraint kind, generalizing the teacher's eval.NewChecker(registry)
// constructor-injection idiom from a single closed kind-switch to an open,
// host-extensible set.
type Registry struct {
	mu     sync.RWMutex
	byKind map[constraint.Kind][]Registration
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byKind: make(map[constraint.Kind][]Registration)}
}

// Register adds a validator implementation for kind. valueType is the
// concrete (boxed) Go type or interface the validator declares support
// for; factory must return a new, uninitialized validator instance each
// call.
func (r *Registry) Register(kind constraint.Kind, valueType reflect.Type, target constraint.ValidationTarget, factory func() spi.ConstraintValidator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKind[kind] = append(r.byKind[kind], Registration{ValueType: valueType, Target: target, Factory: factory})
}

// Resolve returns the single maximally specific validator registration for
// kind applicable to valueType and target, per spec.md §4.2. valueType is
// boxed ([rtype.Box]) before resolution so a pointer-to-value occurrence
// resolves against value-typed registrations.
func (r *Registry) Resolve(kind constraint.Kind, valueType reflect.Type, target constraint.ValidationTarget) (Registration, error) {
	r.mu.RLock()
	regs := r.byKind[kind]
	r.mu.RUnlock()

	boxed := rtype.Box(valueType)

	var candidates []reflect.Type
	byType := make(map[reflect.Type]Registration, len(regs))
	for _, reg := range regs {
		if reg.Target != target {
			continue
		}
		candidates = append(candidates, reg.ValueType)
		byType[reg.ValueType] = reg
	}

	resolved := rtype.Resolve(boxed, candidates)
	switch len(resolved) {
	case 0:
		return Registration{}, &UnexpectedTypeError{Kind: KindNoValidator, Constraint: kind, ValueType: boxed}
	case 1:
		return byType[resolved[0]], nil
	default:
		return Registration{}, &UnexpectedTypeError{Kind: KindAmbiguous, Constraint: kind, ValueType: boxed, Alternatives: resolved}
	}
}

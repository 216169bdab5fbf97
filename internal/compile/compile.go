// Package compile turns a frozen plan into reusable closures. All type
// decisions are taken here, once; the closures only move values.
package compile

import (
	"errors"
	"fmt"
	"reflect"

	"expression-mapper/internal/plan"
)

var (
	ErrNilArgument  = errors.New("argument must not be nil")
	ErrModeMismatch = errors.New("plan was synthesized for another mapper form")
)

// Converter is the run-time conversion fallback used by StrategyConvert and
// StrategyCollection fragments.
type Converter interface {
	ValueOr(v reflect.Value, to reflect.Type, def reflect.Value) reflect.Value
	CollectionValue(from, to reflect.Value) error
}

// Defaulter is implemented by targets that initialise their own members
// when constructed.
type Defaulter interface {
	SetDefaults()
}

var defaulterType = reflect.TypeFor[Defaulter]()

// MutatorFunc fills the struct behind dst from the struct behind src.
// Both values are pointers of the planned types.
type MutatorFunc func(src, dst reflect.Value) error

// ConstructorFunc builds a new target from the struct behind src.
type ConstructorFunc func(src reflect.Value) (reflect.Value, error)

type step func(src, dst reflect.Value) error

// Mutator compiles a ModeMutate plan.
func Mutator(p *plan.Plan, conv Converter) (MutatorFunc, error) {
	if p.Mode != plan.ModeMutate {
		return nil, fmt.Errorf("%w: %s", ErrModeMismatch, p.Mode)
	}

	steps := compileSteps(p, conv)
	errNil := fmt.Errorf("%w: the (%s) source and (%s) target must not be nil", ErrNilArgument, p.Source, p.Target)

	return func(src, dst reflect.Value) error {
		if src.IsNil() || dst.IsNil() {
			return errNil
		}

		return run(steps, src, dst)
	}, nil
}

// Constructor compiles a ModeConstruct plan. The target is created with
// new(T), then SetDefaults is called when *T implements Defaulter.
func Constructor(p *plan.Plan, conv Converter) (ConstructorFunc, error) {
	if p.Mode != plan.ModeConstruct {
		return nil, fmt.Errorf("%w: %s", ErrModeMismatch, p.Mode)
	}

	steps := compileSteps(p, conv)
	errNil := fmt.Errorf("%w: the (%s) source must not be nil", ErrNilArgument, p.Source)
	target := p.Target
	defaults := reflect.PointerTo(target).Implements(defaulterType)

	return func(src reflect.Value) (reflect.Value, error) {
		if src.IsNil() {
			return reflect.Value{}, errNil
		}

		dst := reflect.New(target)
		if defaults {
			dst.Interface().(Defaulter).SetDefaults()
		}

		if err := run(steps, src, dst); err != nil {
			return reflect.Value{}, err
		}

		return dst, nil
	}, nil
}

func run(steps []step, src, dst reflect.Value) error {
	for _, s := range steps {
		if err := s(src, dst); err != nil {
			return err
		}
	}

	return nil
}

func compileSteps(p *plan.Plan, conv Converter) []step {
	steps := make([]step, 0, len(p.Fragments))
	for _, frag := range p.Fragments {
		steps = append(steps, compileFragment(frag, conv))
	}

	return steps
}

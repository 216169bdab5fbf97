package mapper

import (
	"reflect"

	"expression-mapper/internal/compile"
	"expression-mapper/internal/plan"
)

// Mode selects the mapper form.
type Mode = plan.Mode

const (
	// Mutate fills an existing target.
	Mutate = plan.ModeMutate
	// Construct creates the target.
	Construct = plan.ModeConstruct
)

// NewMutator synthesizes a mapper filling *T from *S. The mapper returns
// ErrNilArgument before touching anything when src or dst is nil.
func NewMutator[S, T any](f *Factory) (func(src *S, dst *T) error, error) {
	p, err := f.synthesize(plan.ModeMutate, reflect.TypeFor[S](), reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	mutate, err := compile.Mutator(p, f.conv)
	if err != nil {
		return nil, err
	}

	return func(src *S, dst *T) error {
		return mutate(reflect.ValueOf(src), reflect.ValueOf(dst))
	}, nil
}

// NewConstructor synthesizes a mapper building a new *T from *S. The target
// is allocated with new(T) and, when *T has a SetDefaults method, initialised
// by it before any member is mapped.
func NewConstructor[S, T any](f *Factory) (func(src *S) (*T, error), error) {
	p, err := f.synthesize(plan.ModeConstruct, reflect.TypeFor[S](), reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}

	construct, err := compile.Constructor(p, f.conv)
	if err != nil {
		return nil, err
	}

	return func(src *S) (*T, error) {
		out, err := construct(reflect.ValueOf(src))
		if err != nil {
			return nil, err
		}

		return out.Interface().(*T), nil
	}, nil
}

// MustMutator is like NewMutator but panics on error.
func MustMutator[S, T any](f *Factory) func(src *S, dst *T) error {
	m, err := NewMutator[S, T](f)
	if err != nil {
		panic(err)
	}

	return m
}

// MustConstructor is like NewConstructor but panics on error.
func MustConstructor[S, T any](f *Factory) func(src *S) (*T, error) {
	c, err := NewConstructor[S, T](f)
	if err != nil {
		panic(err)
	}

	return c
}

// Describe renders the plan of the mapper from S to T as YAML. Plans with
// fatal findings are rendered too, alongside the error.
func Describe[S, T any](f *Factory, mode Mode) ([]byte, error) {
	if err := f.Err(); err != nil {
		return nil, err
	}

	p, synthErr := plan.Synthesize(mode, reflect.TypeFor[S](), reflect.TypeFor[T](), f.rules.Snapshot(), f.config)
	if p == nil {
		return nil, synthErr
	}

	f.logPlan(p)

	out, err := plan.Export(p)
	if err != nil {
		return nil, err
	}

	return out, synthErr
}

package plan

import (
	"fmt"

	"expression-mapper/internal/introspect"
	"expression-mapper/internal/rule"
	"expression-mapper/node"
)

// Config holds configuration for synthesis.
type Config struct {
	// StrictCollections turns enumerable pairs that are not both slices into
	// ErrUnsupportedShape instead of skipping them.
	StrictCollections bool
}

// DefaultConfig returns the default synthesis configuration.
func DefaultConfig() Config {
	return Config{}
}

// Resolver picks the strategy of matched member pairs.
type Resolver struct {
	rules  rule.Snapshot
	config Config
}

// NewResolver creates a Resolver over a snapshot of the registered rules.
func NewResolver(rules rule.Snapshot, config Config) *Resolver {
	return &Resolver{
		rules:  rules,
		config: config,
	}
}

// Resolve returns the fragment for a matched pair. It reports false when the
// pair contributes no fragment (an enumerable pair that is not two slices),
// and fails with ErrUnsupportedShape when either side is a map.
//
// The decision is keyed on the source member's kind:
//   - reference kind, identical types: direct
//   - reference kind, different types: rule, collection or generic converter
//   - value kinds with the same nullability: direct when identical, else as above
//   - value kinds with different nullability: wrap or unwrap when the
//     underlying types match, else rule or generic converter on the declared types
func (r *Resolver) Resolve(src, dst introspect.Member) (Fragment, bool, error) {
	frag := Fragment{Source: src, Target: dst}

	switch {
	case !src.ValueKind && src.Type == dst.Type:
		frag.Case, frag.Strategy = CaseReferenceIdentity, StrategyDirect
		return frag, true, nil

	case !src.ValueKind:
		frag.Case = CaseReferenceMismatch
		return r.convert(frag)

	case src.Nullable == dst.Nullable:
		frag.Case = CaseMatchingNullability
		if src.Type == dst.Type {
			frag.Strategy = StrategyDirect
			return frag, true, nil
		}
		return r.convert(frag)

	default:
		frag.Case = CaseMismatchedNullability
		if node.Underlying(src.Type) == node.Underlying(dst.Type) {
			frag.Strategy = StrategyWrap
			if src.Nullable {
				frag.Strategy = StrategyUnwrap
			}
			return frag, true, nil
		}
		return r.convert(frag)
	}
}

// convert prefers a rule registered for the exact declared types, then the
// collection path, then the generic converter.
func (r *Resolver) convert(frag Fragment) (Fragment, bool, error) {
	src, dst := frag.Source, frag.Target

	if found, ok := r.rules.Lookup(src.Type, dst.Type); ok {
		frag.Strategy, frag.Rule = StrategyRule, found
		return frag, true, nil
	}

	if src.Enumerable && dst.Enumerable {
		return r.collection(frag)
	}

	frag.Strategy = StrategyConvert
	return frag, true, nil
}

func (r *Resolver) collection(frag Fragment) (Fragment, bool, error) {
	src, dst := frag.Source.Type, frag.Target.Type

	switch node.Dispatch(src, dst) {
	case node.DispatcherSlice:
		frag.Strategy = StrategyCollection
		return frag, true, nil

	case node.DispatcherMap:
		return frag, false, fmt.Errorf("%w: %s to %s, register a custom converter for the pair", ErrUnsupportedShape, src, dst)

	default:
		if r.config.StrictCollections {
			return frag, false, fmt.Errorf("%w: %s to %s is not a pair of slices", ErrUnsupportedShape, src, dst)
		}
		return frag, false, nil
	}
}

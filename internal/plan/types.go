package plan

import (
	"errors"
	"reflect"

	"expression-mapper/internal/common"
	"expression-mapper/internal/diagnostic"
	"expression-mapper/internal/introspect"
	"expression-mapper/internal/rule"
)

var (
	ErrUnsupportedShape = errors.New("unsupported collection shape")
	ErrAmbiguousMember  = errors.New("member matched both as property and as field")
)

// Plan is the frozen description of one mapper.
type Plan struct {
	// Mode tells whether the mapper fills an existing target or constructs one.
	Mode Mode
	// Source is the struct type read from.
	Source reflect.Type
	// Target is the struct type written to.
	Target reflect.Type
	// Guard lists the arguments checked for nil before anything else runs.
	Guard Guard
	// Instantiate is set for ModeConstruct: a fresh target is created before the fragments run.
	Instantiate bool
	// Fragments are the assignments in matching order.
	Fragments []Fragment
	// Return is set for ModeConstruct: the mapper evaluates to the instantiated target.
	Return bool
	// Diagnostics holds the non-fatal findings of synthesis.
	Diagnostics diagnostic.Diagnostics
}

// TypePair returns "source -> target" for messages.
func (p *Plan) TypePair() string {
	return typePair(p.Source, p.Target)
}

func typePair(src, dst reflect.Type) string {
	return src.String() + " -> " + dst.String()
}

// Guard describes the leading nil checks.
type Guard struct {
	Source bool
	Target bool
}

// Fragment assigns one target member from one source member.
type Fragment struct {
	// Source member, always readable.
	Source introspect.Member
	// Target member, always writable.
	Target introspect.Member
	// Case is the decision branch that produced the fragment.
	Case Case
	// Strategy is the assignment performed at call time.
	Strategy Strategy
	// Rule is the custom converter of StrategyRule fragments.
	Rule rule.Rule
}

// Mode selects the mapper form.
type Mode int

const (
	ModeMutate    Mode = iota + 1 // func(*S, *T) error
	ModeConstruct                 // func(*S) (*T, error)
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeMutate:
		return "mutate"
	case ModeConstruct:
		return "construct"
	default:
		return common.UnknownStr
	}
}

// Case is the branch of the resolution decision tree, checked in this order.
type Case int

const (
	// CaseReferenceIdentity - source of reference kind, identical types.
	CaseReferenceIdentity Case = iota + 1
	// CaseReferenceMismatch - source of reference kind, different types.
	CaseReferenceMismatch
	// CaseMatchingNullability - value kinds, both nullable or both not.
	CaseMatchingNullability
	// CaseMismatchedNullability - value kinds, exactly one side nullable.
	CaseMismatchedNullability
)

// String returns a human-readable case name.
func (c Case) String() string {
	switch c {
	case CaseReferenceIdentity:
		return "reference_identity"
	case CaseReferenceMismatch:
		return "reference_mismatch"
	case CaseMatchingNullability:
		return "matching_nullability"
	case CaseMismatchedNullability:
		return "mismatched_nullability"
	default:
		return common.UnknownStr
	}
}

// Strategy describes how the value is carried over at call time.
type Strategy int

const (
	// StrategyDirect - plain assignment, types are identical.
	StrategyDirect Strategy = iota + 1
	// StrategyWrap - copy the value into a fresh pointer.
	StrategyWrap
	// StrategyUnwrap - dereference the pointer, nil gives the zero value.
	StrategyUnwrap
	// StrategyRule - call the registered converter.
	StrategyRule
	// StrategyConvert - generic converter, the target zero value on failure.
	StrategyConvert
	// StrategyCollection - fresh target slice, elements converted one by one.
	StrategyCollection
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyDirect:
		return "direct"
	case StrategyWrap:
		return "wrap"
	case StrategyUnwrap:
		return "unwrap"
	case StrategyRule:
		return "rule"
	case StrategyConvert:
		return "convert"
	case StrategyCollection:
		return "collection"
	default:
		return common.UnknownStr
	}
}

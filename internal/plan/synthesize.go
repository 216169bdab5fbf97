package plan

import (
	"fmt"
	"reflect"

	"expression-mapper/internal/common"
	"expression-mapper/internal/diagnostic"
	"expression-mapper/internal/introspect"
	"expression-mapper/internal/match"
	"expression-mapper/internal/rule"
	"expression-mapper/node"
)

// maxSuggestions bounds the near-miss names reported for an unmatched target.
const maxSuggestions = 3

// Synthesize builds the plan of a mapper from src to dst, both struct types.
// Fatal findings are returned as one error joining every error diagnostic;
// the partial plan is returned alongside for inspection.
func Synthesize(mode Mode, src, dst reflect.Type, rules rule.Snapshot, config Config) (*Plan, error) {
	srcProps, srcFields, err := introspect.Members(src)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	dstProps, dstFields, err := introspect.Members(dst)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	p := &Plan{
		Mode:        mode,
		Source:      src,
		Target:      dst,
		Guard:       Guard{Source: true, Target: mode == ModeMutate},
		Instantiate: mode == ModeConstruct,
		Return:      mode == ModeConstruct,
	}

	s := &synthesizer{
		plan:     p,
		resolver: NewResolver(rules, config),
		assigned: map[string]introspect.MemberKind{},
	}

	props := s.pass(readable(srcProps), writable(dstProps))
	fields := s.pass(readable(srcFields), writable(dstFields))

	s.reportUnmatched(writable(dstProps), props, append(readable(srcProps), readable(srcFields)...))
	s.reportUnmatched(writable(dstFields), fields, append(readable(srcProps), readable(srcFields)...))

	if err := p.Diagnostics.Error(); err != nil {
		return p, err
	}

	return p, nil
}

type synthesizer struct {
	plan     *Plan
	resolver *Resolver
	// assigned maps folded target names to the pass that first assigned them.
	assigned map[string]introspect.MemberKind
}

// pass matches one member family and returns which targets were matched.
func (s *synthesizer) pass(sources, targets []introspect.Member) []bool {
	diags := &s.plan.Diagnostics
	pair := s.plan.TypePair()

	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.Name
	}

	index := match.NewIndex(names)
	matched := make([]bool, len(targets))

	for _, src := range sources {
		folded := match.Fold(src.Name)

		for j, dst := range targets {
			if !index.Matches(j, folded) {
				continue
			}

			if matched[j] {
				diags.AddInfo(diagnostic.CodeDuplicateTarget,
					fmt.Sprintf("already assigned, %s skipped", src.Path()), pair, dst.Path())
				break
			}
			matched[j] = true

			if kind, ok := s.assigned[folded]; ok && kind != dst.Kind {
				diags.AddError(diagnostic.CodeAmbiguousMember,
					fmt.Errorf("%w: %s", ErrAmbiguousMember, dst.Name), pair, dst.Path())
				break
			}
			s.assigned[folded] = dst.Kind

			s.resolve(src, dst)

			// one target per source member
			break
		}
	}

	return matched
}

func (s *synthesizer) resolve(src, dst introspect.Member) {
	diags := &s.plan.Diagnostics
	pair := s.plan.TypePair()

	frag, ok, err := s.resolver.Resolve(src, dst)
	switch {
	case err != nil:
		diags.AddError(diagnostic.CodeUnsupportedShape, err, pair, dst.Path())
	case !ok:
		diags.AddWarning(diagnostic.CodeSkippedCollection,
			fmt.Sprintf("%s to %s is not a pair of slices, member skipped", src.Type, dst.Type), pair, dst.Path())
	default:
		if frag.Strategy == StrategyCollection && src.CollectionOfScalar && node.IsValueKind(src.Type.Elem()) {
			diags.AddWarning(diagnostic.CodeSkippedElements,
				fmt.Sprintf("elements of %s are value kinds and are not copied", src.Type), pair, dst.Path())
		}
		s.plan.Fragments = append(s.plan.Fragments, frag)
	}
}

func (s *synthesizer) reportUnmatched(targets []introspect.Member, matched []bool, sources []introspect.Member) {
	if common.IsEmpty(targets) {
		return
	}

	candidates := make([]string, 0, len(sources))
	for _, src := range sources {
		candidates = append(candidates, src.Name)
	}

	for i, dst := range targets {
		if matched[i] {
			continue
		}

		if _, ok := s.assigned[match.Fold(dst.Name)]; ok {
			continue
		}

		s.plan.Diagnostics.AddInfo(diagnostic.CodeUnmatchedMember, "no source member",
			s.plan.TypePair(), dst.Path(), match.Suggest(dst.Name, candidates, maxSuggestions)...)
	}
}

func readable(members []introspect.Member) []introspect.Member {
	var out []introspect.Member
	for _, m := range members {
		if m.Readable {
			out = append(out, m)
		}
	}

	return out
}

func writable(members []introspect.Member) []introspect.Member {
	var out []introspect.Member
	for _, m := range members {
		if m.Writable {
			out = append(out, m)
		}
	}

	return out
}

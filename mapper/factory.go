package mapper

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/rs/zerolog"

	"expression-mapper/convert"
	"expression-mapper/internal/plan"
	"expression-mapper/internal/rule"
	"expression-mapper/options"
	"expression-mapper/primitive"
)

// Factory synthesizes mappers. It is safe for concurrent use; converters
// registered while a mapper is synthesized are seen by later syntheses only.
type Factory struct {
	rules  *rule.Registry
	conv   convert.Converter
	config plan.Config
	logger zerolog.Logger

	mu  sync.Mutex
	err error
}

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithCategories selects the primitive conversions of the generic converter.
func WithCategories(categories primitive.CategoryEnum) Option {
	return func(f *Factory) {
		f.conv.Allowed = categories
	}
}

// WithStrictCollections fails synthesis on enumerable pairs that are not two slices.
func WithStrictCollections(strict bool) Option {
	return func(f *Factory) {
		f.config.StrictCollections = strict
	}
}

// WithConfig applies a loaded configuration. An invalid category list is
// kept as the factory error.
func WithConfig(cfg options.Config) Option {
	return func(f *Factory) {
		mask, err := cfg.CategoryMask()
		if err != nil {
			f.fail(err)
			return
		}

		f.conv.Allowed = mask
		f.config.StrictCollections = cfg.StrictCollections
	}
}

// New creates a Factory with every primitive conversion category enabled.
func New(opts ...Option) *Factory {
	f := &Factory{
		rules:  rule.NewRegistry(),
		conv:   convert.Default,
		config: plan.DefaultConfig(),
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// RegisterConverter adds a conversion rule keyed on the parameter and result
// types of fn, replacing any rule for the same ordered pair. fn is one of
// func(A) B, func(A) (B, bool), func(A) (B, error), func(A) (B, bool, error).
// The first failure is kept and returned by Err and every later synthesis.
func (f *Factory) RegisterConverter(fn any) *Factory {
	key, err := f.rules.Register(fn)
	if err != nil {
		f.fail(err)
		return f
	}

	f.logger.Debug().Stringer("key", key).Int("rules", f.rules.Len()).Msg("converter registered")
	return f
}

// Register is the typed form of RegisterConverter.
func Register[A, B any](f *Factory, fn func(A) B) *Factory {
	return f.RegisterConverter(fn)
}

// RegisterE registers a converter that may fail.
func RegisterE[A, B any](f *Factory, fn func(A) (B, error)) *Factory {
	return f.RegisterConverter(fn)
}

// Err returns the first registration or configuration error.
func (f *Factory) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.err
}

func (f *Factory) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err == nil {
		f.err = err
	}
}

func (f *Factory) synthesize(mode plan.Mode, src, dst reflect.Type) (*plan.Plan, error) {
	if err := f.Err(); err != nil {
		return nil, err
	}

	p, err := plan.Synthesize(mode, src, dst, f.rules.Snapshot(), f.config)
	if p != nil {
		f.logPlan(p)
	}

	if err != nil {
		return nil, fmt.Errorf("%s mapper %s -> %s: %w", mode, src, dst, err)
	}

	return p, nil
}

func (f *Factory) logPlan(p *plan.Plan) {
	pair := p.TypePair()

	for _, frag := range p.Fragments {
		ev := f.logger.Debug().
			Str("pair", pair).
			Str("target", frag.Target.Path()).
			Stringer("case", frag.Case).
			Stringer("strategy", frag.Strategy)
		if frag.Strategy == plan.StrategyRule {
			ev = ev.Str("rule", frag.Rule.Name())
		}
		ev.Msg("fragment resolved")
	}

	for _, d := range p.Diagnostics.Warnings {
		f.logger.Warn().Str("pair", pair).Str("member", d.MemberPath).Str("code", d.Code).Msg(d.Message)
	}

	for _, d := range p.Diagnostics.Infos {
		f.logger.Info().Str("pair", pair).Str("member", d.MemberPath).Str("code", d.Code).Msg(d.String())
	}

	f.logger.Debug().
		Str("pair", pair).
		Stringer("mode", p.Mode).
		Int("fragments", len(p.Fragments)).
		Bool("valid", p.Diagnostics.IsValid()).
		Msg("mapper synthesized")
}

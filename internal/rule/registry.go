// Package rule keeps the custom conversion rules keyed by the ordered pair of
// source and target member types.
package rule

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"sync"

	"expression-mapper/node"
)

var (
	ErrNilConverter = errors.New("custom converter must not be nil")
	ErrConversion   = errors.New("custom conversion failed")
)

// Key is the ordered pair of declared member types. (A, B) and (B, A) are distinct keys.
type Key struct {
	Source reflect.Type
	Target reflect.Type
}

// String returns a human-readable representation of the Key.
func (k Key) String() string {
	return node.TypeStr(k.Source) + " -> " + node.TypeStr(k.Target)
}

// Rule is a registered custom converter.
type Rule struct {
	Key    Key
	caster node.Caster
}

// Name returns the qualified name of the converter function.
func (r Rule) Name() string {
	return r.caster.String()
}

// Apply converts v, which must be of the rule's source type. A converter
// reporting ok=false yields the zero value of the target type.
func (r Rule) Apply(v reflect.Value) (reflect.Value, error) {
	out, ok, err := r.caster.Call(v)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %s (%s): %w", ErrConversion, r.Key, r.caster, err)
	}

	if !ok {
		return reflect.Zero(r.Key.Target), nil
	}

	return out, nil
}

// Registry is a concurrency-safe set of rules. Registrations for an existing key overwrite it.
type Registry struct {
	mu    sync.RWMutex
	rules map[Key]Rule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[Key]Rule),
	}
}

// Register parses fn as a converter and stores it under its declared
// parameter and result types.
func (r *Registry) Register(fn any) (Key, error) {
	caster, err := node.ParseCaster(fn)
	if errors.Is(err, node.ErrNilCaster) {
		return Key{}, ErrNilConverter
	}
	if err != nil {
		return Key{}, fmt.Errorf("register converter: %w", err)
	}

	key := Key{Source: caster.Src, Target: caster.Dst}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules[key] = Rule{Key: key, caster: caster}

	return key, nil
}

// Lookup finds the rule for the exact pair of types.
func (r *Registry) Lookup(src, dst reflect.Type) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.rules[Key{Source: src, Target: dst}]
	return rule, ok
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rules)
}

// Snapshot returns an immutable copy of the current rules.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Snapshot{rules: maps.Clone(r.rules)}
}

// Snapshot is a read-only view of a Registry taken at one point in time.
type Snapshot struct {
	rules map[Key]Rule
}

// Lookup finds the rule for the exact pair of types.
func (s Snapshot) Lookup(src, dst reflect.Type) (Rule, bool) {
	rule, ok := s.rules[Key{Source: src, Target: dst}]
	return rule, ok
}

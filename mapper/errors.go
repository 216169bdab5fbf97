package mapper

import (
	"expression-mapper/internal/compile"
	"expression-mapper/internal/introspect"
	"expression-mapper/internal/plan"
	"expression-mapper/internal/rule"
)

var (
	// ErrNilArgument is returned by mappers called with a nil source or target.
	ErrNilArgument = compile.ErrNilArgument
	// ErrNotStruct is returned when a mapped type is not a struct.
	ErrNotStruct = introspect.ErrNotStruct
	// ErrUnsupportedShape is returned when a matched member pair is a map or, with
	// strict collections, any enumerable pair that is not two slices.
	ErrUnsupportedShape = plan.ErrUnsupportedShape
	// ErrAmbiguousMember is returned when a name matches a property and a field.
	ErrAmbiguousMember = plan.ErrAmbiguousMember
	// ErrConversion wraps the error of a registered converter.
	ErrConversion = rule.ErrConversion
	// ErrNilConverter is returned when a nil converter is registered.
	ErrNilConverter = rule.ErrNilConverter
)

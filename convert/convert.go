// Package convert is the generic run-time conversion fallback used by compiled
// mappers when no exact, nullable or registered rule applies.
//
// The package never logs: the strict forms return an error and the defaulting
// forms swallow it and return the default.
package convert

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"

	"expression-mapper/node"
	"expression-mapper/primitive"
)

var (
	ErrNilValue       = errors.New("value must not be nil")
	ErrNotConvertible = errors.New("value is not convertible")
	ErrNilCollection  = errors.New("target collection must not be nil")
)

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	stringerType        = reflect.TypeFor[fmt.Stringer]()
)

// Converter converts values between arbitrary types. Allowed selects which
// primitive change-of-type categories may be used.
type Converter struct {
	Allowed primitive.CategoryEnum
}

// Default allows every primitive category.
var Default = Converter{Allowed: primitive.CategoryAll}

// To converts value to T with the Default converter.
func To[T any](value any) (T, error) {
	var zero T

	if value == nil {
		return zero, ErrNilValue
	}

	out, err := Default.Value(reflect.ValueOf(value), reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}

	return out.Interface().(T), nil
}

// ToOr converts value to T, returning def on any failure.
func ToOr[T any](value any, def T) T {
	out, err := To[T](value)
	if err != nil {
		return def
	}

	return out
}

// Value converts v to type to. The result is assignable to to.
func (c Converter) Value(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	for v.IsValid() && v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}

	if !v.IsValid() || v.Kind() == reflect.Interface {
		return reflect.Value{}, fmt.Errorf("%w: converting to %s", ErrNilValue, to)
	}

	from := v.Type()
	if from.AssignableTo(to) {
		return v, nil
	}

	if from.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil %s converting to %s", ErrNilValue, from, to)
		}

		return c.Value(v.Elem(), to)
	}

	if node.IsNullable(to) {
		elem, err := c.Value(v, to.Elem())
		if err != nil {
			return reflect.Value{}, err
		}

		ptr := reflect.New(to.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	}

	if primitive.CanChange(from, to, c.Allowed) {
		out, err := primitive.Change(v, to, c.Allowed)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %w", ErrNotConvertible, err)
		}

		return out, nil
	}

	if out, ok, err := fromText(v, to); ok {
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %s -> %s: %w", ErrNotConvertible, from, to, err)
		}

		return out, nil
	}

	if out, ok, err := toText(v, to); ok {
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %s -> %s: %w", ErrNotConvertible, from, to, err)
		}

		return out, nil
	}

	if from.Kind() == to.Kind() && from.ConvertibleTo(to) {
		return v.Convert(to), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s -> %s", ErrNotConvertible, from, to)
}

// ValueOr converts v to type to, returning def on any failure.
// An invalid def stands for the zero value of to.
func (c Converter) ValueOr(v reflect.Value, to reflect.Type, def reflect.Value) reflect.Value {
	out, err := c.Value(v, to)
	if err == nil {
		return out
	}

	if !def.IsValid() {
		return reflect.Zero(to)
	}

	return def
}

// fromText uses the destination's encoding.TextUnmarshaler on a textual origin.
func fromText(v reflect.Value, to reflect.Type) (reflect.Value, bool, error) {
	if !reflect.PointerTo(to).Implements(textUnmarshalerType) {
		return reflect.Value{}, false, nil
	}

	var text []byte

	switch {
	case v.Kind() == reflect.String:
		text = []byte(v.String())
	case v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8:
		text = v.Bytes()
	case v.Type().Implements(textMarshalerType):
		var err error
		if text, err = v.Interface().(encoding.TextMarshaler).MarshalText(); err != nil {
			return reflect.Value{}, true, err
		}
	default:
		return reflect.Value{}, false, nil
	}

	ptr := reflect.New(to)
	if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText(text); err != nil {
		return reflect.Value{}, true, err
	}

	return ptr.Elem(), true, nil
}

// toText renders the origin as text for a string destination.
func toText(v reflect.Value, to reflect.Type) (reflect.Value, bool, error) {
	if to.Kind() != reflect.String {
		return reflect.Value{}, false, nil
	}

	out := reflect.New(to).Elem()

	switch {
	case v.Type().Implements(textMarshalerType):
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return reflect.Value{}, true, err
		}
		out.SetString(string(text))
	case v.Type().Implements(stringerType):
		out.SetString(v.Interface().(fmt.Stringer).String())
	default:
		return reflect.Value{}, false, nil
	}

	return out, true, nil
}

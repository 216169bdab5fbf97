package node

import (
	"reflect"

	"expression-mapper/primitive"
)

// IsValueKind reports whether values of t are copied by value.
// Nullable wrappers count as value kinds: they stand for "a value or nothing".
func IsValueKind(t reflect.Type) bool {
	if t == nil {
		return false
	}

	if IsNullable(t) {
		return true
	}

	return isPlainValue(t)
}

// IsNullable reports whether t is a nullable wrapper: a single pointer to a plain value kind.
// *int, *bool and *time.Time are nullable wrappers; *string, **int and *[]int are not.
func IsNullable(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Ptr && isPlainValue(t.Elem())
}

// Underlying returns the wrapped type of a nullable wrapper, or t itself.
func Underlying(t reflect.Type) reflect.Type {
	if IsNullable(t) {
		return t.Elem()
	}

	return t
}

// IsScalar reports whether t, or the type it wraps, is a primitive kind (numbers, bool, string, time, named enums).
func IsScalar(t reflect.Type) bool {
	return t != nil && primitive.FromReflectType(Underlying(t)) != 0
}

func isPlainValue(t reflect.Type) bool {
	switch t.Kind() {
	default:
		return false
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.Array, reflect.Struct:
		return true
	}
}

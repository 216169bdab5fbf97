package node

import "reflect"

// Dispatch classifies a (src, dst) pair of declared member types by collection shape.
// A map on either side of an enumerable pair yields DispatcherMap. Pairs where
// either side does not iterate are DispatcherUnknown.
func Dispatch(src, dst reflect.Type) DispatcherEnum {
	if IsEnumerable(src) && IsEnumerable(dst) {
		if src.Kind() == reflect.Map || dst.Kind() == reflect.Map {
			return DispatcherMap
		}

		if src.Kind() == reflect.Slice && dst.Kind() == reflect.Slice {
			return DispatcherSlice
		}

		return DispatcherEnumerable
	}

	return DispatcherUnknown
}

// IsEnumerable reports whether values of t can be iterated element by element.
// Strings are excluded even though they range over runes.
func IsEnumerable(t reflect.Type) bool {
	if t == nil {
		return false
	}

	switch t.Kind() {
	default:
		return false
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
}

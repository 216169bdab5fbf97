package node

import (
	"reflect"
	"strconv"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// TypeStr renders t with fully qualified named types, e.g. "*time.Time" or "[]expression-mapper/examples/animal.Tag".
func TypeStr(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + TypeStr(t.Elem())
	case reflect.Slice:
		return "[]" + TypeStr(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + TypeStr(t.Elem())
	case reflect.Map:
		return "map[" + TypeStr(t.Key()) + "]" + TypeStr(t.Elem())
	default:
		if t.PkgPath() == "" || t.Name() == "" {
			return t.String()
		}
		return t.PkgPath() + "." + t.Name()
	}
}

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return t.Implements(errorType)
}

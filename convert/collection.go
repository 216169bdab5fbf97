package convert

import (
	"fmt"
	"reflect"

	"expression-mapper/node"
)

// Collection appends the elements of from, converted to To, to *to.
// Nil elements are skipped, and so is every element when From is a value kind.
func Collection[From, To any](from []From, to *[]To) error {
	var target reflect.Value
	if to != nil {
		target = reflect.ValueOf(to)
	}

	return Default.CollectionValue(reflect.ValueOf(from), target)
}

// CollectionValue is the reflect form of Collection: from is a slice and to a
// pointer to the target slice.
func (c Converter) CollectionValue(from, to reflect.Value) error {
	if !from.IsValid() || from.Len() == 0 {
		return nil
	}

	if !to.IsValid() || to.IsNil() {
		return fmt.Errorf("%w: converting from %s", ErrNilCollection, from.Type())
	}

	elemFrom := from.Type().Elem()
	if node.IsValueKind(elemFrom) {
		return nil
	}

	target := to.Elem()
	elemTo := target.Type().Elem()

	for i := range from.Len() {
		item := from.Index(i)
		if isNil(item) {
			continue
		}

		out, err := c.Value(item, elemTo)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}

		target.Set(reflect.Append(target, out))
	}

	return nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	default:
		return false
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
}

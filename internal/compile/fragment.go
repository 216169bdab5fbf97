package compile

import (
	"fmt"
	"reflect"

	"expression-mapper/internal/plan"
)

func compileFragment(frag plan.Fragment, conv Converter) step {
	get, set := frag.Source.Getter(), frag.Target.Setter()
	to := frag.Target.Type
	zero := reflect.Zero(to)

	switch frag.Strategy {
	default: // plan.StrategyDirect
		return func(src, dst reflect.Value) error {
			set(dst, get(src))
			return nil
		}

	case plan.StrategyWrap:
		return func(src, dst reflect.Value) error {
			ptr := reflect.New(to.Elem())
			ptr.Elem().Set(get(src))
			set(dst, ptr)
			return nil
		}

	case plan.StrategyUnwrap:
		return func(src, dst reflect.Value) error {
			if v := get(src); !v.IsNil() {
				set(dst, v.Elem())
			} else {
				set(dst, zero)
			}
			return nil
		}

	case plan.StrategyRule:
		apply, path := frag.Rule.Apply, frag.Target.Path()
		return func(src, dst reflect.Value) error {
			out, err := apply(get(src))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			set(dst, out)
			return nil
		}

	case plan.StrategyConvert:
		return func(src, dst reflect.Value) error {
			set(dst, conv.ValueOr(get(src), to, zero))
			return nil
		}

	case plan.StrategyCollection:
		path := frag.Target.Path()
		return func(src, dst reflect.Value) error {
			from := get(src)

			out := reflect.New(to)
			out.Elem().Set(reflect.MakeSlice(to, 0, from.Len()))

			if err := conv.CollectionValue(from, out); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			set(dst, out.Elem())
			return nil
		}
	}
}

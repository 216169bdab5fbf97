package primitive

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"expression-mapper/utils"
)

var (
	ErrNotPrimitive = errors.New("type is not a primitive kind")
	ErrNotAllowed   = errors.New("conversion is not allowed by the selected categories")
	ErrOverflow     = errors.New("value overflows the target type")
	ErrInvalidValue = errors.New("value is not valid for the target type")
)

type changeFunc func(v reflect.Value, to reflect.Type) (reflect.Value, error)

var changers map[ConversionPair]changeFunc

func init() {
	changers = map[ConversionPair]changeFunc{}

	for fromKind := KindEnum(1); int(fromKind) < KindTotal; fromKind++ {
		for toKind := KindEnum(1); int(toKind) < KindTotal; toKind++ {
			pair := ConversionPair{fromKind, toKind}

			switch {
			// CategorySafeNumber, CategoryUnsafeNumber
			case fromKind.IsNumber() && toKind.IsNumber():
				changers[pair] = changeNumber

			// CategoryTextNumber
			case fromKind.IsNumber() && toKind == KindString:
				changers[pair] = formatNumber
			case fromKind == KindString && toKind.IsNumber():
				changers[pair] = parseNumber

			// CategoryNumericBool
			case fromKind.IsInteger() && toKind == KindBool:
				changers[pair] = integerToBool
			case fromKind == KindBool && toKind.IsInteger():
				changers[pair] = boolToInteger

			// CategoryTimestamp
			case fromKind.IsInteger() && toKind == KindTime:
				changers[pair] = unixToTime
			case fromKind == KindTime && toKind.IsInteger():
				changers[pair] = timeToUnix

			// CategoryNanoseconds
			case fromKind.IsInteger() && toKind == KindDuration:
				changers[pair] = nanosToDuration
			case fromKind == KindDuration && toKind.IsInteger():
				changers[pair] = durationToNanos

			// CategorySeconds
			case fromKind.IsFloat() && toKind == KindDuration:
				changers[pair] = secondsToDuration
			case fromKind == KindDuration && toKind.IsFloat():
				changers[pair] = durationToSeconds
			}
		}
	}

	// CategoryTextualBool
	changers[ConversionPair{KindString, KindBool}] = textToBool
	changers[ConversionPair{KindBool, KindString}] = boolToText

	// CategoryDatetime
	changers[ConversionPair{KindString, KindTime}] = textToTime
	changers[ConversionPair{KindTime, KindString}] = timeToText

	// CategoryDuration
	changers[ConversionPair{KindString, KindDuration}] = textToDuration
	changers[ConversionPair{KindDuration, KindString}] = durationToText

	// CategoryEnumString
	changers[ConversionPair{KindString, KindPrimitiveEnum}] = textToEnum
	changers[ConversionPair{KindPrimitiveEnum, KindString}] = enumToText
	changers[ConversionPair{KindPrimitiveEnum, KindPrimitiveEnum}] = enumToEnum
}

// Change converts a primitive value v to the primitive type to.
// The pair of kinds must be listed by one of the allowed categories; named int and
// string types fall back to the pair of their predeclared kinds when the enum pair is not listed.
func Change(v reflect.Value, to reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: invalid value", ErrNotPrimitive)
	}

	pair, err := resolvePair(v.Type(), to, allowed)
	if err != nil {
		return reflect.Value{}, err
	}

	out, err := changers[pair](v, to)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%s -> %s: %w", v.Type(), to, err)
	}

	if FromReflectType(to) == KindPrimitiveEnum {
		if err := checkValid(out); err != nil {
			return reflect.Value{}, err
		}
	}

	return out, nil
}

// CanChange reports whether Change may succeed for the pair of types, without looking at a value.
func CanChange(from, to reflect.Type, allowed CategoryEnum) bool {
	_, err := resolvePair(from, to, allowed)
	return err == nil
}

func resolvePair(from, to reflect.Type, allowed CategoryEnum) (ConversionPair, error) {
	pair := ConversionPair{FromReflectType(from), FromReflectType(to)}
	if pair.From == 0 || pair.To == 0 {
		return ConversionPair{}, fmt.Errorf("%w: %s -> %s", ErrNotPrimitive, from, to)
	}

	if _, ok := changers[pair]; ok && Allowed(pair, allowed) {
		return pair, nil
	}

	basic := ConversionPair{FromReflectType(basicOf(from)), FromReflectType(basicOf(to))}
	if _, ok := changers[basic]; ok && basic != pair && Allowed(basic, allowed) {
		return basic, nil
	}

	return ConversionPair{}, fmt.Errorf("%w: %s -> %s", ErrNotAllowed, pair.From, pair.To)
}

func checkValid(out reflect.Value) error {
	validator, ok := out.Interface().(interface{ IsValid() bool })
	if ok && !validator.IsValid() {
		return fmt.Errorf("%w: %v is not a valid %s", ErrInvalidValue, out.Interface(), out.Type())
	}

	return nil
}

func changeNumber(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	out := reflect.New(to).Elem()

	switch {
	case v.CanInt():
		return setInt64(out, v.Int())
	case v.CanUint():
		return setUint64(out, v.Uint())
	default:
		return setFloat64(out, v.Float())
	}
}

func setInt64(out reflect.Value, x int64) (reflect.Value, error) {
	switch {
	case out.CanInt():
		if out.OverflowInt(x) {
			return reflect.Value{}, ErrOverflow
		}
		out.SetInt(x)
	case out.CanUint():
		if x < 0 || out.OverflowUint(uint64(x)) {
			return reflect.Value{}, ErrOverflow
		}
		out.SetUint(uint64(x))
	default:
		out.SetFloat(float64(x))
	}

	return out, nil
}

func setUint64(out reflect.Value, x uint64) (reflect.Value, error) {
	switch {
	case out.CanInt():
		if x > math.MaxInt64 || out.OverflowInt(int64(x)) {
			return reflect.Value{}, ErrOverflow
		}
		out.SetInt(int64(x))
	case out.CanUint():
		if out.OverflowUint(x) {
			return reflect.Value{}, ErrOverflow
		}
		out.SetUint(x)
	default:
		out.SetFloat(float64(x))
	}

	return out, nil
}

func setFloat64(out reflect.Value, f float64) (reflect.Value, error) {
	switch {
	case out.CanInt():
		if !utils.IsInRange(math.MinInt64, f, 1<<63) {
			return reflect.Value{}, ErrOverflow
		}
		return setInt64(out, int64(f))
	case out.CanUint():
		if !utils.IsInRange(0, f, 1<<64) {
			return reflect.Value{}, ErrOverflow
		}
		return setUint64(out, uint64(f))
	default:
		if out.OverflowFloat(f) {
			return reflect.Value{}, ErrOverflow
		}
		out.SetFloat(f)
		return out, nil
	}
}

func setString(to reflect.Type, s string) reflect.Value {
	out := reflect.New(to).Elem()
	out.SetString(s)

	return out
}

func formatNumber(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	var s string

	switch {
	case v.CanInt():
		s = strconv.FormatInt(v.Int(), 10)
	case v.CanUint():
		s = strconv.FormatUint(v.Uint(), 10)
	default:
		s = strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits())
	}

	return setString(to, s), nil
}

func parseNumber(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	s := strings.TrimSpace(v.String())
	out := reflect.New(to).Elem()
	kind := FromReflectType(basicOf(to))

	switch {
	case kind.IsSigned():
		x, err := strconv.ParseInt(s, 10, kind.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return setInt64(out, x)
	case kind.IsUnsigned():
		x, err := strconv.ParseUint(s, 10, kind.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		return setUint64(out, x)
	default:
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return reflect.Value{}, err
		}
		return setFloat64(out, f)
	}
}

// integerToBool accepts only 0 and 1.
func integerToBool(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	var x int64

	if v.CanInt() {
		x = v.Int()
	} else if v.Uint() <= 1 {
		x = int64(v.Uint())
	} else {
		x = -1
	}

	out := reflect.New(to).Elem()
	switch x {
	default:
		return reflect.Value{}, fmt.Errorf("%w: only numbers 0 and 1 are allowed for bool, got: %v", ErrInvalidValue, v.Interface())
	case 0:
		out.SetBool(false)
	case 1:
		out.SetBool(true)
	}

	return out, nil
}

func boolToInteger(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	var x int64
	if v.Bool() {
		x = 1
	}

	return setInt64(reflect.New(to).Elem(), x)
}

func textToBool(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	out := reflect.New(to).Elem()

	switch strings.ToLower(strings.TrimSpace(v.String())) {
	default:
		return reflect.Value{}, fmt.Errorf("%w: only strings true/false, yes/no, on/off are allowed for bool, got: %s", ErrInvalidValue, v.String())
	case "true", "yes", "on":
		out.SetBool(true)
	case "false", "no", "off":
		out.SetBool(false)
	}

	return out, nil
}

func boolToText(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	return setString(to, strconv.FormatBool(v.Bool())), nil
}

func textToTime(v reflect.Value, _ reflect.Type) (reflect.Value, error) {
	t, err := cast.ToTimeE(strings.TrimSpace(v.String()))
	if err != nil {
		return reflect.Value{}, err
	}

	return reflect.ValueOf(t), nil
}

func timeToText(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	return setString(to, v.Interface().(time.Time).Format(time.RFC3339Nano)), nil
}

func unixToTime(v reflect.Value, _ reflect.Type) (reflect.Value, error) {
	var sec int64

	if v.CanInt() {
		sec = v.Int()
	} else {
		if v.Uint() > math.MaxInt64 {
			return reflect.Value{}, ErrOverflow
		}
		sec = int64(v.Uint())
	}

	return reflect.ValueOf(time.Unix(sec, 0).UTC()), nil
}

func timeToUnix(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	return setInt64(reflect.New(to).Elem(), v.Interface().(time.Time).Unix())
}

func nanosToDuration(v reflect.Value, _ reflect.Type) (reflect.Value, error) {
	return setInt64OrUint(reflect.New(reflect.TypeFor[time.Duration]()).Elem(), v)
}

func setInt64OrUint(out, v reflect.Value) (reflect.Value, error) {
	if v.CanInt() {
		return setInt64(out, v.Int())
	}

	return setUint64(out, v.Uint())
}

func durationToNanos(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	return setInt64(reflect.New(to).Elem(), v.Int())
}

func secondsToDuration(v reflect.Value, _ reflect.Type) (reflect.Value, error) {
	ns := v.Float() * float64(time.Second)
	if !utils.IsInRange(math.MinInt64, ns, 1<<63) {
		return reflect.Value{}, ErrOverflow
	}

	return reflect.ValueOf(time.Duration(ns)), nil
}

func durationToSeconds(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	return setFloat64(reflect.New(to).Elem(), time.Duration(v.Int()).Seconds())
}

func textToDuration(v reflect.Value, _ reflect.Type) (reflect.Value, error) {
	d, err := cast.ToDurationE(strings.TrimSpace(v.String()))
	if err != nil {
		return reflect.Value{}, err
	}

	return reflect.ValueOf(d), nil
}

func durationToText(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	return setString(to, time.Duration(v.Int()).String()), nil
}

func textToEnum(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	if to.Kind() == reflect.String {
		return setString(to, v.String()), nil
	}

	return parseNumber(v, to)
}

func enumToText(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	if stringer, ok := v.Interface().(fmt.Stringer); ok {
		return setString(to, stringer.String()), nil
	}

	if v.Kind() == reflect.String {
		return setString(to, v.String()), nil
	}

	return formatNumber(v, to)
}

func enumToEnum(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	if v.Kind() == to.Kind() {
		return v.Convert(to), nil
	}

	text, err := enumToText(v, reflect.TypeFor[string]())
	if err != nil {
		return reflect.Value{}, err
	}

	return textToEnum(text, to)
}

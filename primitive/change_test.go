package primitive_test

import (
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expression-mapper/primitive"
)

type level int

func (l level) IsValid() bool { return l >= 0 && l <= 3 }

type colour string

func (c colour) String() string { return "colour:" + string(c) }

type status string

func ExampleChange() {
	out, err := primitive.Change(reflect.ValueOf("42"), reflect.TypeFor[int](), primitive.CategoryAll)
	fmt.Println(out.Interface(), err)

	out, err = primitive.Change(reflect.ValueOf(int8(-3)), reflect.TypeFor[float64](), primitive.CategorySafeNumber)
	fmt.Println(out.Interface(), err)

	_, err = primitive.Change(reflect.ValueOf(int64(1)), reflect.TypeFor[int8](), primitive.CategorySafeNumber)
	fmt.Println(err)

	// Output:
	// 42 <nil>
	// -3 <nil>
	// conversion is not allowed by the selected categories: KindInt64 -> KindInt8
}

func TestChange(t *testing.T) {
	t.Parallel()

	moment := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		to   reflect.Type
		want any
	}{
		{"widen int", int32(7), reflect.TypeFor[int64](), int64(7)},
		{"narrow int", int64(100), reflect.TypeFor[int8](), int8(100)},
		{"float to int truncates", 3.9, reflect.TypeFor[int](), 3},
		{"float min int64", float64(math.MinInt64), reflect.TypeFor[int64](), int64(math.MinInt64)},
		{"float below int64 bound", float64(1 << 62), reflect.TypeFor[int64](), int64(1 << 62)},
		{"float below uint64 bound", float64(1 << 63), reflect.TypeFor[uint64](), uint64(1 << 63)},
		{"uint to int", uint(12), reflect.TypeFor[int](), 12},
		{"int to text", -15, reflect.TypeFor[string](), "-15"},
		{"float to text", 2.5, reflect.TypeFor[string](), "2.5"},
		{"float32 to text", float32(0.1), reflect.TypeFor[string](), "0.1"},
		{"text to uint", " 17 ", reflect.TypeFor[uint16](), uint16(17)},
		{"text to float", "1e3", reflect.TypeFor[float64](), 1000.0},
		{"one to bool", 1, reflect.TypeFor[bool](), true},
		{"bool to int", true, reflect.TypeFor[uint8](), uint8(1)},
		{"yes to bool", "Yes", reflect.TypeFor[bool](), true},
		{"off to bool", "off", reflect.TypeFor[bool](), false},
		{"bool to text", false, reflect.TypeFor[string](), "false"},
		{"text to time", "2024-03-01T12:30:00Z", reflect.TypeFor[time.Time](), moment},
		{"time to text", moment, reflect.TypeFor[string](), "2024-03-01T12:30:00Z"},
		{"unix to time", moment.Unix(), reflect.TypeFor[time.Time](), moment},
		{"time to unix", moment, reflect.TypeFor[int64](), moment.Unix()},
		{"text to duration", "2h45m", reflect.TypeFor[time.Duration](), 2*time.Hour + 45*time.Minute},
		{"duration to text", 90 * time.Second, reflect.TypeFor[string](), "1m30s"},
		{"nanos to duration", int64(1500), reflect.TypeFor[time.Duration](), 1500 * time.Nanosecond},
		{"duration to nanos", time.Microsecond, reflect.TypeFor[int](), 1000},
		{"seconds to duration", 1.5, reflect.TypeFor[time.Duration](), 1500 * time.Millisecond},
		{"duration to seconds", 2 * time.Second, reflect.TypeFor[float64](), 2.0},
		{"text to enum", "ok", reflect.TypeFor[status](), status("ok")},
		{"enum to text", status("ok"), reflect.TypeFor[string](), "ok"},
		{"stringer enum to text", colour("red"), reflect.TypeFor[string](), "colour:red"},
		{"text to int enum", "2", reflect.TypeFor[level](), level(2)},
		{"int enum to int64", level(3), reflect.TypeFor[int64](), int64(3)},
		{"enum to enum", status("red"), reflect.TypeFor[colour](), colour("red")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := primitive.Change(reflect.ValueOf(tt.in), tt.to, primitive.CategoryAll)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Interface())
		})
	}
}

func TestChangeFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      any
		to      reflect.Type
		allowed primitive.CategoryEnum
		err     error
	}{
		{"overflow", 300, reflect.TypeFor[int8](), primitive.CategoryAll, primitive.ErrOverflow},
		{"negative to unsigned", -1, reflect.TypeFor[uint](), primitive.CategoryAll, primitive.ErrOverflow},
		{"float overflow", math.MaxFloat64, reflect.TypeFor[int64](), primitive.CategoryAll, primitive.ErrOverflow},
		{"float at int64 bound", float64(math.MaxInt64), reflect.TypeFor[int64](), primitive.CategoryAll, primitive.ErrOverflow},
		{"float at uint64 bound", float64(math.MaxUint64), reflect.TypeFor[uint64](), primitive.CategoryAll, primitive.ErrOverflow},
		{"float under int64 min", -float64(math.MaxInt64) * 2, reflect.TypeFor[int64](), primitive.CategoryAll, primitive.ErrOverflow},
		{"nan to int", math.NaN(), reflect.TypeFor[int64](), primitive.CategoryAll, primitive.ErrOverflow},
		{"seconds past duration bound", 1e10, reflect.TypeFor[time.Duration](), primitive.CategoryAll, primitive.ErrOverflow},
		{"two is not bool", 2, reflect.TypeFor[bool](), primitive.CategoryAll, primitive.ErrInvalidValue},
		{"maybe is not bool", "maybe", reflect.TypeFor[bool](), primitive.CategoryAll, primitive.ErrInvalidValue},
		{"invalid enum", "7", reflect.TypeFor[level](), primitive.CategoryAll, primitive.ErrInvalidValue},
		{"unsafe excluded", 1.5, reflect.TypeFor[int](), primitive.CategoryAll &^ primitive.CategoryUnsafeNumber, primitive.ErrNotAllowed},
		{"text excluded", "1", reflect.TypeFor[int](), primitive.CategorySafeNumber, primitive.ErrNotAllowed},
		{"not primitive", []int{1}, reflect.TypeFor[int](), primitive.CategoryAll, primitive.ErrNotPrimitive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := primitive.Change(reflect.ValueOf(tt.in), tt.to, tt.allowed)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := primitive.Change(reflect.ValueOf("ten"), reflect.TypeFor[int](), primitive.CategoryAll)
	assert.Error(t, err)
}

func TestCategoryNames(t *testing.T) {
	t.Parallel()

	category, ok := primitive.CategoryByName("text_number")
	require.True(t, ok)
	assert.Equal(t, primitive.CategoryTextNumber, category)
	assert.Equal(t, "text_number", category.Name())

	all, ok := primitive.CategoryByName("all")
	require.True(t, ok)
	assert.Len(t, all.Names(), 11)

	_, ok = primitive.CategoryByName("bogus")
	assert.False(t, ok)

	pair := primitive.ConversionPair{From: primitive.KindString, To: primitive.KindInt}
	assert.Equal(t, primitive.CategoryTextNumber, primitive.CategoryOf(pair))
	assert.True(t, primitive.CanChange(reflect.TypeFor[string](), reflect.TypeFor[int](), primitive.CategoryTextNumber))
	assert.False(t, primitive.CanChange(reflect.TypeFor[string](), reflect.TypeFor[int](), primitive.CategorySafeNumber))
}

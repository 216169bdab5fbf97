package convert_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expression-mapper/convert"
	"expression-mapper/primitive"
)

type label string

func Example() {
	n, err := convert.To[int]("42")
	fmt.Println(n, err)

	price, err := convert.To[decimal.Decimal]("3350.20")
	fmt.Println(price, err)

	fmt.Println(convert.ToOr("not a number", -1))

	_, err = convert.To[int](nil)
	fmt.Println(err)

	// Output:
	// 42 <nil>
	// 3350.2 <nil>
	// -1
	// value must not be nil
}

func TestTo(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
	seven := 7

	t.Run("assignable returned unchanged", func(t *testing.T) {
		t.Parallel()

		out, err := convert.To[any](seven)
		require.NoError(t, err)
		assert.Equal(t, 7, out)
	})

	t.Run("pointer source dereferenced", func(t *testing.T) {
		t.Parallel()

		out, err := convert.To[int64](&seven)
		require.NoError(t, err)
		assert.Equal(t, int64(7), out)
	})

	t.Run("nil pointer source", func(t *testing.T) {
		t.Parallel()

		_, err := convert.To[int]((*int)(nil))
		assert.ErrorIs(t, err, convert.ErrNilValue)
	})

	t.Run("nullable destination wrapped", func(t *testing.T) {
		t.Parallel()

		out, err := convert.To[*int]("12")
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, 12, *out)
	})

	t.Run("text unmarshaler destination", func(t *testing.T) {
		t.Parallel()

		out, err := convert.To[uuid.UUID](id.String())
		require.NoError(t, err)
		assert.Equal(t, id, out)

		_, err = convert.To[uuid.UUID]("not-a-uuid")
		assert.ErrorIs(t, err, convert.ErrNotConvertible)
	})

	t.Run("text marshaler origin", func(t *testing.T) {
		t.Parallel()

		out, err := convert.To[string](id)
		require.NoError(t, err)
		assert.Equal(t, id.String(), out)

		out, err = convert.To[string](decimal.RequireFromString("1.50"))
		require.NoError(t, err)
		assert.Equal(t, "1.5", out)
	})

	t.Run("named scalar", func(t *testing.T) {
		t.Parallel()

		out, err := convert.To[label]("name")
		require.NoError(t, err)
		assert.Equal(t, label("name"), out)
	})

	t.Run("not convertible", func(t *testing.T) {
		t.Parallel()

		_, err := convert.To[time.Time](struct{}{})
		assert.ErrorIs(t, err, convert.ErrNotConvertible)

		_, err = convert.To[bool](2)
		assert.ErrorIs(t, err, convert.ErrNotConvertible)
		assert.ErrorIs(t, err, primitive.ErrInvalidValue)
	})
}

func TestToOr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, convert.ToOr[int](nil, 5))
	assert.Equal(t, 5, convert.ToOr("five", 5))
	assert.Equal(t, 6, convert.ToOr("6", 5))
	assert.True(t, convert.ToOr("yes", false))
}

func TestConverterCategories(t *testing.T) {
	t.Parallel()

	safe := convert.Converter{Allowed: primitive.CategorySafeNumber}
	to := reflect.TypeFor[int]()

	_, err := safe.Value(reflect.ValueOf("1"), to)
	assert.ErrorIs(t, err, convert.ErrNotConvertible)

	out := safe.ValueOr(reflect.ValueOf("1"), to, reflect.Value{})
	assert.Equal(t, 0, out.Interface())

	out = safe.ValueOr(reflect.ValueOf(int8(3)), to, reflect.ValueOf(-1))
	assert.Equal(t, 3, out.Interface())
}

func TestCollection(t *testing.T) {
	t.Parallel()

	t.Run("strings to ints", func(t *testing.T) {
		t.Parallel()

		var ids []int
		require.NoError(t, convert.Collection([]string{"1", "2"}, &ids))
		assert.Equal(t, []int{1, 2}, ids)
	})

	t.Run("nil elements skipped", func(t *testing.T) {
		t.Parallel()

		one, three := "1", "3"
		var ids []int64
		require.NoError(t, convert.Collection([]*string{&one, nil, &three}, &ids))
		assert.Equal(t, []int64{1, 3}, ids)
	})

	t.Run("value kind elements skipped", func(t *testing.T) {
		t.Parallel()

		var out []string
		require.NoError(t, convert.Collection([]int{1, 2, 3}, &out))
		assert.Empty(t, out)
	})

	t.Run("empty source is a no-op", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, convert.Collection[string, int](nil, nil))
		assert.NoError(t, convert.Collection([]string{}, (*[]int)(nil)))
	})

	t.Run("nil target", func(t *testing.T) {
		t.Parallel()

		err := convert.Collection([]string{"1"}, (*[]int)(nil))
		assert.ErrorIs(t, err, convert.ErrNilCollection)
	})

	t.Run("element failure", func(t *testing.T) {
		t.Parallel()

		var ids []int
		err := convert.Collection([]string{"1", "x"}, &ids)
		assert.ErrorIs(t, err, convert.ErrNotConvertible)
	})
}

package introspect_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expression-mapper/internal/introspect"
)

type audit struct {
	Created time.Time
	Note    string
}

type Base struct {
	ID   int
	Note string
}

type Extra struct {
	Enabled bool
	flag    bool
}

func (e *Extra) Flag() bool     { return e.flag }
func (e *Extra) SetFlag(v bool) { e.flag = v }

type Labeler interface {
	Label() string
}

type record struct {
	audit
	Base
	*Extra
	Labeler

	Name    string
	Note    string // shadows audit.Note and Base.Note
	Tags    []string
	Scores  [3]int
	Ratio   *float64
	private int

	age   int
	email string
}

func (r *record) Age() int       { return r.age }
func (r *record) SetAge(age int) { r.age = age }

func (r *record) Email() string      { return r.email }
func (r *record) SetEmail(e []byte)  { r.email = string(e) }
func (r *record) SetSecret(_ string) {}
func (r *record) Validate() error    { return nil }
func (r *record) Setup()             {}
func (r *record) Settle(_ int)       {}

func names(members []introspect.Member) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.Name)
	}

	return out
}

func TestProperties(t *testing.T) {
	t.Parallel()

	props := introspect.Properties(reflect.TypeFor[record]())
	require.Equal(t, []string{"Age", "Email", "Secret"}, names(props))

	age, email, secret := props[0], props[1], props[2]

	assert.Equal(t, introspect.MemberKindProperty, age.Kind)
	assert.True(t, age.Readable)
	assert.True(t, age.Writable)
	assert.True(t, age.ValueKind)
	assert.Equal(t, "record.Age()", age.Path())

	assert.True(t, email.Readable)
	assert.False(t, email.Writable, "setter of a different type is dropped")
	assert.Nil(t, email.Setter())

	assert.False(t, secret.Readable)
	assert.True(t, secret.Writable)
	assert.Equal(t, reflect.TypeFor[string](), secret.Type)
	assert.Nil(t, secret.Getter())

	r := &record{}
	ptr := reflect.ValueOf(r)
	age.Setter()(ptr, reflect.ValueOf(42))
	assert.Equal(t, 42, r.age)
	assert.Equal(t, 42, age.Getter()(ptr).Interface())
}

type flagged struct {
	*Extra

	flag bool
}

func (f *flagged) Flag() bool     { return f.flag }
func (f *flagged) SetFlag(v bool) { f.flag = v }

type inlined struct {
	Extra
}

type nested struct {
	inlined
}

type nestedPointer struct {
	inner *inlined
	*nested
}

func TestPropertiesThroughEmbeddedPointer(t *testing.T) {
	t.Parallel()

	props := introspect.Properties(reflect.TypeFor[record]())
	assert.NotContains(t, names(props), "Flag", "promoted through *Extra")
	assert.NotContains(t, names(props), "Label", "promoted through an interface")

	assert.NotPanics(t, func() {
		r := &record{}
		for _, p := range props {
			if get := p.Getter(); get != nil {
				get(reflect.ValueOf(r))
			}
		}
	})

	assert.Equal(t, []string{"Flag"}, names(introspect.Properties(reflect.TypeFor[flagged]())),
		"declared on the outer type")
	assert.Equal(t, []string{"Flag"}, names(introspect.Properties(reflect.TypeFor[inlined]())),
		"promoted through a value embed")
	assert.Equal(t, []string{"Flag"}, names(introspect.Properties(reflect.TypeFor[nested]())))
	assert.Empty(t, introspect.Properties(reflect.TypeFor[nestedPointer]()))

	f := &flagged{}
	props = introspect.Properties(reflect.TypeFor[flagged]())
	props[0].Setter()(reflect.ValueOf(f), reflect.ValueOf(true))
	assert.True(t, f.flag)
	assert.Nil(t, f.Extra)
}

func TestFields(t *testing.T) {
	t.Parallel()

	fields := introspect.Fields(reflect.TypeFor[record]())
	require.Equal(t, []string{"Created", "ID", "Name", "Note", "Tags", "Scores", "Ratio"}, names(fields))

	byName := map[string]introspect.Member{}
	for _, f := range fields {
		byName[f.Name] = f
		assert.Equal(t, introspect.MemberKindField, f.Kind)
		assert.True(t, f.Readable && f.Writable)
	}

	assert.True(t, byName["Tags"].Enumerable)
	assert.True(t, byName["Tags"].CollectionOfScalar)
	assert.False(t, byName["Tags"].ValueKind)
	assert.True(t, byName["Scores"].Enumerable)
	assert.False(t, byName["Scores"].CollectionOfScalar)
	assert.True(t, byName["Ratio"].Nullable)
	assert.True(t, byName["Ratio"].ValueKind)
	assert.False(t, byName["Name"].ValueKind)

	moment := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	r := &record{}
	ptr := reflect.ValueOf(r)
	byName["Created"].Setter()(ptr, reflect.ValueOf(moment))
	byName["ID"].Setter()(ptr, reflect.ValueOf(9))
	byName["Note"].Setter()(ptr, reflect.ValueOf("outer"))

	assert.Equal(t, moment, r.Created)
	assert.Equal(t, 9, r.ID)
	assert.Equal(t, "outer", r.Note)
	assert.Empty(t, r.Base.Note)
	assert.Equal(t, 9, byName["ID"].Getter()(ptr).Interface())
}

func TestMembers(t *testing.T) {
	t.Parallel()

	_, _, err := introspect.Members(reflect.TypeFor[int]())
	assert.ErrorIs(t, err, introspect.ErrNotStruct)

	_, _, err = introspect.Members(reflect.TypeFor[*record]())
	assert.ErrorIs(t, err, introspect.ErrNotStruct)

	props, fields, err := introspect.Members(reflect.TypeFor[struct{ A, b int }]())
	require.NoError(t, err)
	assert.Empty(t, props)
	assert.Equal(t, []string{"A"}, names(fields))

	assert.Equal(t, "field", introspect.MemberKindField.String())
	assert.Equal(t, "unknown", introspect.MemberKindUnknown.String())
}

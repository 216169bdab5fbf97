package introspect

import (
	"reflect"

	"expression-mapper/internal/common"
	"expression-mapper/node"
)

// MemberKind tells how a member is accessed.
type MemberKind int

const (
	MemberKindUnknown  MemberKind = iota
	MemberKindProperty            // getter Name() X and/or setter SetName(X) on *T
	MemberKindField               // exported struct field, promoted fields included
)

// String returns a human-readable representation of the MemberKind.
func (k MemberKind) String() string {
	switch k {
	case MemberKindProperty:
		return "property"
	case MemberKindField:
		return "field"
	default:
		return common.UnknownStr
	}
}

// Member describes one public member of a struct type.
type Member struct {
	Name  string       // Go name of the field, or the getter name of a property
	Type  reflect.Type // Declared type
	Kind  MemberKind   // Property or field
	Owner reflect.Type // Struct type the member belongs to

	ValueKind          bool // Copied by value, nullable wrappers included
	Nullable           bool // Pointer to a plain value kind
	Enumerable         bool // Slice, array or map
	CollectionOfScalar bool // Slice of primitive kinds
	Readable           bool
	Writable           bool

	index  []int // Field index path
	getter reflect.Method
	setter reflect.Method
}

func newMember(owner reflect.Type, name string, t reflect.Type, kind MemberKind) Member {
	return Member{
		Name:               name,
		Type:               t,
		Kind:               kind,
		Owner:              owner,
		ValueKind:          node.IsValueKind(t),
		Nullable:           node.IsNullable(t),
		Enumerable:         node.IsEnumerable(t),
		CollectionOfScalar: t.Kind() == reflect.Slice && node.IsScalar(t.Elem()),
	}
}

// Path returns the access path of the member, e.g. "Animal.Name" or "Animal.Age()".
func (m Member) Path() string {
	path := m.Owner.Name() + "." + m.Name
	if m.Kind == MemberKindProperty {
		path += "()"
	}

	return path
}

// Getter returns the read accessor taking a non-nil pointer to the owner struct.
// It returns nil for members that are not readable.
func (m Member) Getter() func(ptr reflect.Value) reflect.Value {
	if !m.Readable {
		return nil
	}

	if m.Kind == MemberKindField {
		index := m.index
		return func(ptr reflect.Value) reflect.Value {
			return ptr.Elem().FieldByIndex(index)
		}
	}

	fn := m.getter.Func
	return func(ptr reflect.Value) reflect.Value {
		return fn.Call([]reflect.Value{ptr})[0]
	}
}

// Setter returns the write accessor taking a non-nil pointer to the owner struct.
// It returns nil for members that are not writable.
func (m Member) Setter() func(ptr, v reflect.Value) {
	if !m.Writable {
		return nil
	}

	if m.Kind == MemberKindField {
		index := m.index
		return func(ptr, v reflect.Value) {
			ptr.Elem().FieldByIndex(index).Set(v)
		}
	}

	fn := m.setter.Func
	return func(ptr, v reflect.Value) {
		fn.Call([]reflect.Value{ptr, v})
	}
}

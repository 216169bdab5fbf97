// Package introspect builds the flattened member view of struct types.
//
// Two member families are recognised. Properties are accessor pairs declared
// on the pointer type: a getter Name() X and a setter SetName(X). Fields are
// the exported struct fields, with promoted fields of embedded structs
// flattened into the outer type. Results depend on the type only.
package introspect

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"slices"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var ErrNotStruct = errors.New("type is not a struct")

// Members returns the properties and fields of the struct type t.
func Members(t reflect.Type) (props, fields []Member, err error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("%w: %v", ErrNotStruct, t)
	}

	return Properties(t), Fields(t), nil
}

// Properties returns the accessor-pair members of t, sorted by name.
// A getter and a setter of different types make a read-only property.
// Methods promoted through an embedded pointer or interface are left out,
// as they panic when the embedded value is nil.
func Properties(t reflect.Type) []Member {
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	ptr := reflect.PointerTo(t)
	getters := map[string]reflect.Method{}
	setters := map[string]reflect.Method{}

	for i := range ptr.NumMethod() {
		method := ptr.Method(i)
		fn := method.Type // receiver is the first argument

		if promotedThroughPointer(t, method.Name) {
			continue
		}

		switch {
		case isSetter(method):
			setters[method.Name[len("Set"):]] = method
		case fn.NumIn() == 1 && fn.NumOut() == 1 && !fn.Out(0).Implements(errorType):
			getters[method.Name] = method
		}
	}

	names := make([]string, 0, len(getters)+len(setters))
	for name := range getters {
		names = append(names, name)
	}
	for name := range setters {
		if _, ok := getters[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	props := make([]Member, 0, len(names))
	for _, name := range names {
		getter, readable := getters[name]
		setter, writable := setters[name]

		var typ reflect.Type
		if readable {
			typ = getter.Type.Out(0)
		} else {
			typ = setter.Type.In(1)
		}

		if readable && writable && setter.Type.In(1) != typ {
			writable = false
		}

		m := newMember(t, name, typ, MemberKindProperty)
		m.Readable, m.Writable = readable, writable
		m.getter, m.setter = getter, setter
		props = append(props, m)
	}

	return props
}

// Fields returns the exported fields of t in declaration order; promoted fields
// follow their embedded struct. Shadowed or ambiguous promoted fields, fields
// reached through an embedded pointer, and the embedded fields themselves are left out.
func Fields(t reflect.Type) []Member {
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var fields []Member

	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous {
			continue
		}

		if visible, ok := t.FieldByName(f.Name); !ok || !slices.Equal(visible.Index, f.Index) {
			continue
		}

		if throughPointer(t, f.Index) {
			continue
		}

		m := newMember(t, f.Name, f.Type, MemberKindField)
		m.Readable, m.Writable = true, true
		m.index = f.Index
		fields = append(fields, m)
	}

	return fields
}

var errorType = reflect.TypeFor[error]()

func isSetter(method reflect.Method) bool {
	name, fn := method.Name, method.Type
	if !strings.HasPrefix(name, "Set") || fn.NumIn() != 2 || fn.NumOut() != 0 || fn.IsVariadic() {
		return false
	}

	r, _ := utf8.DecodeRuneInString(name[len("Set"):])
	return unicode.IsUpper(r)
}

func throughPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Ptr {
			return true
		}

		t = f.Type
	}

	return false
}

// promotedThroughPointer reports whether the method name of *t resolves to a
// method reached through an embedded pointer or interface. The lookup follows
// the selector rules: the shallowest embedding depth declaring name wins.
func promotedThroughPointer(t reflect.Type, name string) bool {
	if declares(t, name) {
		return false
	}

	type embed struct {
		typ      reflect.Type
		indirect bool
	}

	level := []embed{{typ: t}}
	seen := map[reflect.Type]bool{t: true}

	for len(level) > 0 {
		var next []embed

		for _, e := range level {
			for i := range e.typ.NumField() {
				f := e.typ.Field(i)
				if !f.Anonymous {
					continue
				}

				ft, indirect := f.Type, e.indirect
				switch ft.Kind() {
				case reflect.Ptr:
					ft, indirect = ft.Elem(), true
				case reflect.Interface:
					indirect = true
				}

				if declares(ft, name) {
					return indirect
				}

				if ft.Kind() == reflect.Struct && !seen[ft] {
					seen[ft] = true
					next = append(next, embed{typ: ft, indirect: indirect})
				}
			}
		}

		level = next
	}

	return false
}

// declares reports whether t itself, not one of its embedded fields, has the method name.
func declares(t reflect.Type, name string) bool {
	if t.Kind() == reflect.Interface {
		_, ok := t.MethodByName(name)
		return ok
	}

	if m, ok := reflect.PointerTo(t).MethodByName(name); ok && !autogenerated(m.Func) {
		return true
	}

	m, ok := t.MethodByName(name)
	return ok && !autogenerated(m.Func)
}

// autogenerated reports whether fn is a compiler generated wrapper, which is
// what promoted methods and value methods in a pointer method set are.
func autogenerated(fn reflect.Value) bool {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return false
	}

	file, _ := f.FileLine(f.Entry())
	return file == "<autogenerated>"
}

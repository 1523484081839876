// Package reflectfields derives tmpl.Params for arbitrary structs and
// arrays at run time.
//
// It is the reflection counterpart of the code generated by tmplgen and
// follows the same naming rules:
//   - exported struct fields, in declaration order
//   - a `tmpl:"name"` tag renames a field, `tmpl:"-"` skips it
//   - array elements are named by their position: "0", "1", ...
//
// Values are rendered with fmt.Sprint, so fmt.Stringer and error are
// honored.
package reflectfields

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"fieldtmpl/tmpl"
)

// TagKey is the struct tag consulted for field names.
const TagKey = "tmpl"

var _ tmpl.Params = Record[struct{}]{}

// Record adapts a value of any supported type to tmpl.Params.
//
//	t := tmpl.MustParse[reflectfields.Record[User]]("Hi {Name}")
//	t.Format(reflectfields.Of(user))
type Record[T any] struct {
	Value T
}

// Of wraps v in a Record.
func Of[T any](v T) Record[T] {
	return Record[T]{Value: v}
}

// TemplateFields returns the field names of T. It panics if T is not a
// struct, an array, or a pointer to one of those.
func (Record[T]) TemplateFields() []string {
	return mustLayout(reflect.TypeFor[T]()).names
}

// TemplateField renders the field at index. Every field of a nil pointer
// renders as the empty string.
func (r Record[T]) TemplateField(index int) string {
	l := mustLayout(reflect.TypeFor[T]())
	if index < 0 || index >= len(l.names) {
		panic(fmt.Sprintf("reflectfields: %s: template field index %d out of range", l.typ, index))
	}

	v := reflect.ValueOf(&r.Value).Elem()
	if l.pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	if l.array {
		return fmt.Sprint(v.Index(index).Interface())
	}

	return fmt.Sprint(v.FieldByIndex(l.paths[index]).Interface())
}

// Fields returns the template field names for t, or an error if t is not
// supported.
func Fields(t reflect.Type) ([]string, error) {
	l, err := layoutOf(t)
	if err != nil {
		return nil, err
	}

	return append([]string(nil), l.names...), nil
}

// layout is the cached field description of one type.
type layout struct {
	typ     reflect.Type
	names   []string
	paths   [][]int // struct field index paths, parallel to names
	pointer bool
	array   bool
}

var layouts sync.Map // reflect.Type -> *layout

func mustLayout(t reflect.Type) *layout {
	l, err := layoutOf(t)
	if err != nil {
		panic("reflectfields: " + err.Error())
	}

	return l
}

func layoutOf(t reflect.Type) (*layout, error) {
	if cached, ok := layouts.Load(t); ok {
		return cached.(*layout), nil
	}

	l, err := buildLayout(t)
	if err != nil {
		return nil, err
	}

	actual, _ := layouts.LoadOrStore(t, l)

	return actual.(*layout), nil
}

func buildLayout(t reflect.Type) (*layout, error) {
	l := &layout{typ: t}

	base := t
	if base.Kind() == reflect.Pointer {
		l.pointer = true
		base = base.Elem()
	}

	switch base.Kind() {
	case reflect.Array:
		l.array = true
		l.names = make([]string, base.Len())
		for i := range l.names {
			l.names[i] = strconv.Itoa(i)
		}

	case reflect.Struct:
		for i := range base.NumField() {
			field := base.Field(i)
			if !field.IsExported() {
				continue
			}

			name, ok := FieldName(field.Name, field.Tag.Get(TagKey))
			if !ok {
				continue
			}

			l.names = append(l.names, name)
			l.paths = append(l.paths, field.Index)
		}

	default:
		return nil, fmt.Errorf("unsupported type %s: want a struct or an array", t)
	}

	return l, nil
}

// FieldName applies the tag rules to a Go field name. It returns false if
// the tag excludes the field.
func FieldName(goName, tag string) (string, bool) {
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return "", false
	case "":
		return goName, true
	default:
		return name, true
	}
}

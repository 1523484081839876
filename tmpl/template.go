package tmpl

import (
	"fmt"
	"io"
	"strings"
)

// Params is implemented by types whose fields can be referenced from a
// template.
type Params interface {
	// TemplateFields returns the ordered field names. It is called on the
	// zero value, must not depend on receiver state and must return the
	// same names every time. Callers must not modify the returned slice.
	TemplateFields() []string

	// TemplateField renders the field at index as text. index is always in
	// [0, len(TemplateFields())); implementations may panic otherwise.
	TemplateField(index int) string
}

// FieldsOf returns the field names of T.
func FieldsOf[T Params]() []string {
	var zero T
	return zero.TemplateFields()
}

// Template is a compiled template whose placeholders have been validated
// against the fields of T.
//
// A Template is immutable and safe for concurrent use. The zero value is
// the empty template.
type Template[T Params] struct {
	elems Elements
}

// Parse compiles source against the fields of T.
func Parse[T Params](source string) (Template[T], error) {
	elems, err := Compile(source, FieldsOf[T]())
	if err != nil {
		return Template[T]{}, err
	}

	return Template[T]{elems: elems}, nil
}

// MustParse is like Parse but panics if source does not compile. It is
// meant for package-level template variables.
func MustParse[T Params](source string) Template[T] {
	t, err := Parse[T](source)
	if err != nil {
		panic(fmt.Sprintf("tmpl: MustParse(%q): %v", source, err))
	}

	return t
}

// Format renders the template with the field values of params.
func (t Template[T]) Format(params T) string {
	return t.elems.Render(params.TemplateField)
}

// Execute renders the template with params and writes it to w. The only
// errors it returns come from w.
func (t Template[T]) Execute(w io.Writer, params T) error {
	var sb strings.Builder
	t.elems.render(&sb, params.TemplateField)

	_, err := io.WriteString(w, sb.String())
	return err
}

// String returns the canonical source form of the template. Parsing it
// again yields an equal Template, although it may differ from the text
// that was originally parsed.
func (t Template[T]) String() string {
	return t.elems.Escape(FieldsOf[T]())
}

// GoString implements fmt.GoStringer for %#v.
func (t Template[T]) GoString() string {
	var zero T
	return fmt.Sprintf("tmpl.Template[%T](%q)", zero, t.String())
}

// Elements returns a copy of the compiled element sequence.
func (t Template[T]) Elements() Elements {
	return t.elems.Clone()
}

// Len returns the number of elements.
func (t Template[T]) Len() int {
	return len(t.elems)
}

// IsEmpty reports whether the template renders to the empty string for
// every value, i.e. it was parsed from "".
func (t Template[T]) IsEmpty() bool {
	return len(t.elems) == 0
}

// Clone returns an equal Template that shares no memory with t.
func (t Template[T]) Clone() Template[T] {
	return Template[T]{elems: t.elems.Clone()}
}

// Equal reports whether t and other have the same element sequence.
//
// Only field indices are compared, not names, so templates over two
// different Params types are structurally equal when they use the same
// indices in the same places.
func (t Template[T]) Equal(other Template[T]) bool {
	return t.elems.Equal(other.elems)
}

// Compare orders templates lexicographically by their elements.
func (t Template[T]) Compare(other Template[T]) int {
	return t.elems.Compare(other.elems)
}

// Hash returns a hash of the element sequence consistent with Equal.
func (t Template[T]) Hash() uint64 {
	return t.elems.Hash()
}

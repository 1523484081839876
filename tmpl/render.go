package tmpl

import (
	"strings"
)

// Render substitutes every field reference with lookup(index) and returns
// the result. Text elements are copied verbatim and looked-up values are
// never escaped.
//
// lookup is only called with indices that were validated by Compile, so it
// has no way to report a missing field.
func (es Elements) Render(lookup func(index int) string) string {
	var sb strings.Builder
	es.render(&sb, lookup)

	return sb.String()
}

func (es Elements) render(sb *strings.Builder, lookup func(index int) string) {
	for _, e := range es {
		switch e.Kind {
		case KindText:
			sb.WriteString(e.Text)
		case KindField:
			sb.WriteString(lookup(e.Index))
		}
	}
}

// Escape returns the canonical source form of es: literal braces are
// doubled and field references are written as {name} using fields.
//
// Compiling the result against the same fields reproduces es exactly.
// Escape panics if es references an index outside fields.
func (es Elements) Escape(fields []string) string {
	var sb strings.Builder
	for _, e := range es {
		switch e.Kind {
		case KindText:
			writeEscaped(&sb, e.Text)
		case KindField:
			sb.WriteByte('{')
			sb.WriteString(fields[e.Index])
			sb.WriteByte('}')
		}
	}

	return sb.String()
}

func writeEscaped(sb *strings.Builder, text string) {
	for {
		i := strings.IndexAny(text, "{}")
		if i < 0 {
			sb.WriteString(text)
			return
		}

		sb.WriteString(text[:i+1])
		sb.WriteByte(text[i])
		text = text[i+1:]
	}
}


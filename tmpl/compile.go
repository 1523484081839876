package tmpl

import (
	"slices"
	"strings"
)

// Compile parses source into an element sequence, resolving every
// placeholder against fields.
//
// Names are matched verbatim against fields and the first match wins.
// Contiguous literal text, including unescaped {{ and }}, is coalesced
// into a single text element. On error no elements are returned.
func Compile(source string, fields []string) (Elements, error) {
	c := compiler{source: source, fields: fields}
	return c.run()
}

// compiler holds the state of a single scan.
type compiler struct {
	source string
	fields []string

	out  Elements
	text strings.Builder
}

func (c *compiler) run() (Elements, error) {
	src := c.source

	// { and } are ASCII, so they never occur inside a multi-byte UTF-8
	// sequence and a byte scan is safe.
	for i := 0; i < len(src); i++ {
		switch ch := src[i]; ch {
		case '{':
			if i+1 < len(src) && src[i+1] == '{' {
				c.text.WriteByte('{')
				i++

				continue
			}

			c.flush()

			end := strings.IndexByte(src[i+1:], '}')
			if end < 0 {
				return nil, &CompileError{Err: ErrUnclosedPlaceholder, Offset: i}
			}

			name := src[i+1 : i+1+end]

			index := slices.Index(c.fields, name)
			if index < 0 {
				return nil, &CompileError{Err: ErrUnknownField, Field: name, Offset: i}
			}

			c.out = append(c.out, FieldElement(index))
			i += end + 1

		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				c.text.WriteByte('}')
				i++

				continue
			}

			return nil, &CompileError{Err: ErrUnmatchedClosingBracket, Offset: i}

		default:
			c.text.WriteByte(ch)
		}
	}

	c.flush()

	return c.out, nil
}

// flush moves buffered literal text into a text element.
func (c *compiler) flush() {
	if c.text.Len() == 0 {
		return
	}

	c.out = append(c.out, TextElement(c.text.String()))
	c.text.Reset()
}

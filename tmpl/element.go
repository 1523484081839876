package tmpl

import (
	"cmp"
	"encoding/binary"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Element is one piece of a compiled template.
type Element struct {
	Kind  Kind   // KindText or KindField
	Text  string // literal text, for KindText
	Index int    // field index, for KindField
}

// TextElement returns a literal text element.
func TextElement(s string) Element {
	return Element{Kind: KindText, Text: s}
}

// FieldElement returns a reference to the field at index.
func FieldElement(index int) Element {
	return Element{Kind: KindField, Index: index}
}

// Compare orders elements by kind first (text before fields), then by text
// or index.
func (e Element) Compare(other Element) int {
	if c := cmp.Compare(e.Kind, other.Kind); c != 0 {
		return c
	}

	if e.Kind == KindText {
		return strings.Compare(e.Text, other.Text)
	}

	return cmp.Compare(e.Index, other.Index)
}

// Elements is an ordered element sequence produced by Compile.
//
// Comparison and hashing only look at kinds, text and indices. The field
// names an index came from play no part.
type Elements []Element

// Equal reports whether both sequences hold the same elements in the same
// order.
func (es Elements) Equal(other Elements) bool {
	return slices.EqualFunc(es, other, func(a, b Element) bool {
		return a.Compare(b) == 0
	})
}

// Compare orders sequences lexicographically using Element.Compare. A
// sequence that is a prefix of the other sorts first.
func (es Elements) Compare(other Elements) int {
	return slices.CompareFunc(es, other, Element.Compare)
}

// Clone returns a copy that shares no backing array with es.
func (es Elements) Clone() Elements {
	if es == nil {
		return nil
	}

	return slices.Clone(es)
}

// Hash returns a 64-bit xxhash of the sequence. Equal sequences hash
// equally.
func (es Elements) Hash() uint64 {
	d := xxhash.New()

	var buf [binary.MaxVarintLen64 + 1]byte
	for _, e := range es {
		b := append(buf[:0], byte(e.Kind))
		if e.Kind == KindText {
			b = binary.AppendUvarint(b, uint64(len(e.Text)))
			_, _ = d.Write(b)
			_, _ = d.WriteString(e.Text)

			continue
		}

		b = binary.AppendUvarint(b, uint64(e.Index))
		_, _ = d.Write(b)
	}

	return d.Sum64()
}

// Fields returns the distinct field indices referenced by es, in order of
// first use.
func (es Elements) Fields() []int {
	var out []int
	for _, e := range es {
		if e.Kind == KindField && !slices.Contains(out, e.Index) {
			out = append(out, e.Index)
		}
	}

	return out
}

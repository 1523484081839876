package tmpl

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind tags an Element as literal text or a field reference.
//
// The declaration order is also the sort order used by Element.Compare.
type Kind int

const (
	KindText  Kind = iota // literal text, emitted verbatim
	KindField             // reference to a field index
)

package tmpl

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned when a placeholder names a field the
	// Params type does not have.
	ErrUnknownField = errors.New("unknown field name")

	// ErrUnclosedPlaceholder is returned when the input ends inside an open
	// {...} placeholder.
	ErrUnclosedPlaceholder = errors.New("unclosed placeholder")

	// ErrUnmatchedClosingBracket is returned for a } that is neither the end
	// of a placeholder nor half of an escaped }}.
	ErrUnmatchedClosingBracket = errors.New("unmatched closing bracket")
)

// CompileError describes why a template source was rejected. Err is one of
// the sentinel errors above, so callers can use errors.Is.
type CompileError struct {
	Err    error
	Field  string // offending name, for ErrUnknownField
	Offset int    // byte offset of the offending brace
}

func (e *CompileError) Error() string {
	if errors.Is(e.Err, ErrUnknownField) {
		return fmt.Sprintf("%v: %s (offset %d)", e.Err, e.Field, e.Offset)
	}

	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

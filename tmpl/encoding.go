package tmpl

import (
	"encoding"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// A Template is encoded as its canonical source string in every format.
// Decoding compiles the string and fails with the compile error if it is
// not valid for T.
var (
	_ encoding.TextMarshaler   = Template[nopParams]{}
	_ encoding.TextUnmarshaler = (*Template[nopParams])(nil)
	_ yaml.Marshaler           = Template[nopParams]{}
	_ yaml.Unmarshaler         = (*Template[nopParams])(nil)
	_ cbor.Marshaler           = Template[nopParams]{}
	_ cbor.Unmarshaler         = (*Template[nopParams])(nil)
)

// MarshalText implements encoding.TextMarshaler. encoding/json uses it to
// encode a Template as a JSON string.
func (t Template[T]) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Template[T]) UnmarshalText(text []byte) error {
	parsed, err := Parse[T](string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (t Template[T]) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Only scalar nodes are
// accepted.
func (t *Template[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: template must be a string", node.Line)
	}

	var source string
	if err := node.Decode(&source); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	parsed, err := Parse[T](source)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*t = parsed

	return nil
}

// MarshalCBOR implements cbor.Marshaler, encoding the template as a CBOR
// text string.
func (t Template[T]) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(t.String())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (t *Template[T]) UnmarshalCBOR(data []byte) error {
	var source string
	if err := cbor.Unmarshal(data, &source); err != nil {
		return fmt.Errorf("decoding template: %w", err)
	}

	parsed, err := Parse[T](source)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// nopParams has no fields. It only exists for the interface assertions.
type nopParams struct{}

func (nopParams) TemplateFields() []string { return nil }

func (nopParams) TemplateField(index int) string {
	panic(fmt.Sprintf("tmpl: field index %d out of range", index))
}

package tmpl_test

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"fieldtmpl/tmpl"
)

type messages struct {
	Foo tmpl.Template[foo] `json:"foo" yaml:"foo" cbor:"foo"`
}

func TestTemplate_JSON(t *testing.T) {
	t.Parallel()

	t.Run("decode", func(t *testing.T) {
		t.Parallel()

		var msgs messages
		err := json.Unmarshal([]byte(`{"foo": "Value is {bar}"}`), &msgs)
		require.NoError(t, err)

		assert.Equal(t, "Value is 100", msgs.Foo.Format(foo{bar: 100, qux: "Alice"}))
	})

	t.Run("invalid field fails decoding", func(t *testing.T) {
		t.Parallel()

		var msgs messages
		err := json.Unmarshal([]byte(`{"foo": "Value is {invalid_field}"}`), &msgs)
		require.Error(t, err)
		assert.ErrorIs(t, err, tmpl.ErrUnknownField)
	})

	t.Run("encode uses canonical form", func(t *testing.T) {
		t.Parallel()

		msgs := messages{Foo: tmpl.MustParse[foo]("{{{bar}}}")}
		data, err := json.Marshal(msgs)
		require.NoError(t, err)
		assert.JSONEq(t, `{"foo": "{{{bar}}}"}`, string(data))

		var decoded messages
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, msgs.Foo.Equal(decoded.Foo))
	})
}

func TestTemplate_YAML(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		var msgs messages
		err := yaml.Unmarshal([]byte("foo: 'Hi {qux}, {{literal}}'\n"), &msgs)
		require.NoError(t, err)
		assert.Equal(t, "Hi Bob, {literal}", msgs.Foo.Format(foo{qux: "Bob"}))

		data, err := yaml.Marshal(msgs)
		require.NoError(t, err)

		var decoded messages
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.True(t, msgs.Foo.Equal(decoded.Foo), "encoded as:\n%s", data)
	})

	t.Run("non scalar", func(t *testing.T) {
		t.Parallel()

		var msgs messages
		err := yaml.Unmarshal([]byte("foo:\n  - a\n  - b\n"), &msgs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2: template must be a string")
	})

	t.Run("compile error", func(t *testing.T) {
		t.Parallel()

		var msgs messages
		err := yaml.Unmarshal([]byte("foo: 'a } b'\n"), &msgs)
		require.Error(t, err)
		assert.ErrorIs(t, err, tmpl.ErrUnmatchedClosingBracket)
		assert.Contains(t, err.Error(), "line 1")
	})
}

func TestTemplate_CBOR(t *testing.T) {
	t.Parallel()

	t.Run("text string encoding", func(t *testing.T) {
		t.Parallel()

		template := tmpl.MustParse[foo]("{bar}}}")

		got, err := cbor.Marshal(template)
		require.NoError(t, err)

		want, err := cbor.Marshal("{bar}}}")
		require.NoError(t, err)

		assert.Equal(t, want, got)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		msgs := messages{Foo: tmpl.MustParse[foo]("{qux} owes {bar}")}
		data, err := cbor.Marshal(msgs)
		require.NoError(t, err)

		var decoded messages
		require.NoError(t, cbor.Unmarshal(data, &decoded))
		assert.True(t, msgs.Foo.Equal(decoded.Foo))
		assert.Equal(t, "ann owes 3", decoded.Foo.Format(foo{bar: 3, qux: "ann"}))
	})

	t.Run("compile error", func(t *testing.T) {
		t.Parallel()

		data, err := cbor.Marshal("{missing")
		require.NoError(t, err)

		var template tmpl.Template[foo]
		err = cbor.Unmarshal(data, &template)
		assert.ErrorIs(t, err, tmpl.ErrUnclosedPlaceholder)
	})

	t.Run("wrong major type", func(t *testing.T) {
		t.Parallel()

		data, err := cbor.Marshal(42)
		require.NoError(t, err)

		var template tmpl.Template[foo]
		err = cbor.Unmarshal(data, &template)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding template")
	})
}

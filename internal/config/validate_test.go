package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldtmpl/internal/diagnostic"
)

func validConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Tag:     DefaultTag,
		Targets: []Target{
			{Package: "./examples/greeting", Types: []string{"Greeting", "Invoice"}},
		},
	}
}

func codes(ds []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code)
	}

	return out
}

func TestValidate_Valid(t *testing.T) {
	res := Validate(validConfig())

	assert.False(t, res.HasErrors())
	assert.Empty(t, res.Warnings)
}

func TestValidate_Nil(t *testing.T) {
	res := Validate(nil)
	require.True(t, res.HasErrors())
	assert.Equal(t, "config-is-nil", res.Errors[0].Code)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   []string
	}{
		{
			name:   "version",
			modify: func(c *Config) { c.Version = "2" },
			want:   []string{CodeUnsupportedVersion},
		},
		{
			name:   "tag",
			modify: func(c *Config) { c.Tag = "bad tag" },
			want:   []string{CodeInvalidTag},
		},
		{
			name:   "no targets",
			modify: func(c *Config) { c.Targets = nil },
			want:   []string{CodeNoTargets},
		},
		{
			name:   "missing package",
			modify: func(c *Config) { c.Targets[0].Package = "" },
			want:   []string{CodeMissingPackage},
		},
		{
			name:   "missing types",
			modify: func(c *Config) { c.Targets[0].Types = nil },
			want:   []string{CodeMissingTypes},
		},
		{
			name:   "invalid type name",
			modify: func(c *Config) { c.Targets[0].Types = []string{"Greeting", "greeting.Invoice", ""} },
			want:   []string{CodeInvalidTypeName, CodeInvalidTypeName},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.modify(cfg)

			res := Validate(cfg)
			assert.Equal(t, tc.want, codes(res.Errors))
		})
	}
}

func TestValidate_DuplicateType(t *testing.T) {
	cfg := validConfig()
	cfg.Targets = append(cfg.Targets, Target{Package: "./examples/greeting", Types: []string{"Invoice"}})

	res := Validate(cfg)
	assert.False(t, res.HasErrors())
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, CodeDuplicateType, res.Warnings[0].Code)
	assert.Equal(t, "[targets[1]] Invoice: [duplicate-type] type ./examples/greeting.Invoice listed more than once",
		res.Warnings[0].String())
}

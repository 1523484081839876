package config

// CurrentVersion is the only config version understood by this package.
const CurrentVersion = "1"

// DefaultTag is the struct tag consulted when a config does not set one.
const DefaultTag = "tmpl"

// Config is the top-level structure of a tmplgen config file.
type Config struct {
	// Version is the config schema version.
	Version string `yaml:"version" json:"version"`
	// Tag is the struct tag used to rename or skip fields.
	Tag string `yaml:"tag,omitempty" json:"tag,omitempty"`
	// Comments labels generated switch cases with Go field names. Nil
	// means true.
	Comments *bool `yaml:"comments,omitempty" json:"comments,omitempty"`
	// Targets lists what to generate.
	Targets []Target `yaml:"targets" json:"targets"`

	// Dir is the directory relative paths are resolved against. It is set
	// by LoadFile and never read from the file itself.
	Dir string `yaml:"-" json:"-"`
}

// Target selects types of one package.
type Target struct {
	// Package is a Go package pattern, e.g. "./examples/greeting".
	Package string `yaml:"package" json:"package"`
	// Types are the struct type names to generate for.
	Types []string `yaml:"types" json:"types"`
	// Output overrides the directory generated files are written to.
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
}

// GenerateComments reports whether generated code should carry field
// comments.
func (c *Config) GenerateComments() bool {
	return c.Comments == nil || *c.Comments
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format is a config file syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatJSONC
)

// String returns the conventional name of the format.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSONC:
		return "jsonc"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ErrUnknownFormat is returned for config files with an unrecognized
// extension.
var ErrUnknownFormat = errors.New("unknown config format")

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSONC, nil
	default:
		return 0, fmt.Errorf("%s: %w (want .yaml, .yml, .json or .jsonc)", path, ErrUnknownFormat)
	}
}

// LoadFile reads and parses a config file. Relative paths inside it are
// resolved against the file's directory.
func LoadFile(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.Dir = filepath.Dir(path)

	return cfg, nil
}

// Parse decodes data in the given format and applies defaults.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}

	case FormatJSONC:
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}

	default:
		return nil, fmt.Errorf("%s: %w", format, ErrUnknownFormat)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}

	if cfg.Tag == "" {
		cfg.Tag = DefaultTag
	}
}

// Marshal serializes a Config in the given format. JSONC output is plain
// indented JSON.
func Marshal(cfg *Config, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatJSONC:
		return json.MarshalIndent(cfg, "", "  ")
	default:
		return nil, fmt.Errorf("%s: %w", format, ErrUnknownFormat)
	}
}

// OutputDir returns where files for t are written. Empty means the
// package's own directory; relative paths are taken from the config
// directory.
func (c *Config) OutputDir(t Target) string {
	if t.Output == "" || filepath.IsAbs(t.Output) {
		return t.Output
	}

	return filepath.Join(c.Dir, t.Output)
}

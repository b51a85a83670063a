// Package config loads the optional `.opusrc.yaml` file that holds
// non-semantic CLI knobs: diagnostic colorization, dump format, and a
// tracing target. Of these, only colorization is consulted by the driver;
// dump format and tracing target are loaded but not read by any command.
// It never touches language semantics, so it cannot violate the front
// end's scope.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/juju/errors"
)

// DumpFormat selects how the `parse`/`analyze` debug subcommands render
// their tree dumps.
type DumpFormat string

const (
	// DumpBoxDrawing renders the AST/symbol-table dump with "├──"/"└──"
	// prefixes, matching §6's specified format.
	DumpBoxDrawing DumpFormat = "box"
	// DumpPlain renders the same tree with plain ASCII indentation, for
	// terminals or CI logs that mangle box-drawing glyphs.
	DumpPlain DumpFormat = "plain"
)

// Config holds the driver-level knobs. Zero value is the default
// configuration: color on, box-drawing dumps, tracing off.
type Config struct {
	Color       *bool      `yaml:"color"`
	DumpFormat  DumpFormat `yaml:"dump_format"`
	TraceTarget string     `yaml:"trace_target"`
}

// Default returns the configuration used when no `.opusrc.yaml` is found.
func Default() *Config {
	on := true
	return &Config{Color: &on, DumpFormat: DumpBoxDrawing}
}

// ColorEnabled reports whether diagnostics should be colorized.
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// Format returns the configured dump format, falling back to box-drawing
// if the file left it unset or set to an unrecognized value.
func (c *Config) Format() DumpFormat {
	switch c.DumpFormat {
	case DumpPlain:
		return DumpPlain
	default:
		return DumpBoxDrawing
	}
}

// Load reads `.opusrc.yaml` from dir, merging it over the defaults. A
// missing file is not an error: Load returns Default() unchanged. Any
// other I/O or parse failure is wrapped with errors.Annotate so the
// caller can tell "no config" from "broken config" apart.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, ".opusrc.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Annotatef(err, "reading %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Annotatef(err, "parsing %s", path)
	}
	if cfg.Color == nil {
		on := true
		cfg.Color = &on
	}
	return cfg, nil
}

// LoadFrom reads a config file at an explicit path (the `--config` flag),
// rather than discovering `.opusrc.yaml` relative to a directory.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "reading %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Annotatef(err, "parsing %s", path)
	}
	if cfg.Color == nil {
		on := true
		cfg.Color = &on
	}
	return cfg, nil
}

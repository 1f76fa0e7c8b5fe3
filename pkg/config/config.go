// Package config handles configuration management for envtmpl.
// It supports loading configuration from multiple sources including
// TOML and YAML files, environment variables, and command-line flags.
package config

import (
	"github.com/talss89/envtmpl/pkg/errors"
)

// Config is the complete envtmpl configuration
type Config struct {
	Render  Render  `koanf:"render"`
	Logging Logging `koanf:"logging"`
	Output  Output  `koanf:"output"`
}

// Render controls how targets are processed
type Render struct {
	Overwrite  bool     `koanf:"overwrite"`
	DryRun     bool     `koanf:"dry_run"`
	Targets    []string `koanf:"targets"`
	LeftDelim  string   `koanf:"left_delim"`
	RightDelim string   `koanf:"right_delim"`
	MissingKey string   `koanf:"missing_key"`
}

// Logging controls log verbosity and destination
type Logging struct {
	Verbosity int    `koanf:"verbosity"`
	File      string `koanf:"file"`
}

// Output controls terminal output
type Output struct {
	Format string `koanf:"format"`
}

var (
	validFormats     = map[string]bool{"auto": true, "term": true, "text": true, "json": true}
	validMissingKeys = map[string]bool{"": true, "default": true, "zero": true, "error": true}
)

// Validate checks values that cannot be expressed by types alone
func (c *Config) Validate() error {
	if !validFormats[c.Output.Format] {
		return errors.Newf(errors.ErrConfigValid, "output.format must be one of auto, term, text, json; got %q", c.Output.Format).
			WithDetail("key", "output.format")
	}
	if !validMissingKeys[c.Render.MissingKey] {
		return errors.Newf(errors.ErrConfigValid, "render.missing_key must be default, zero or error; got %q", c.Render.MissingKey).
			WithDetail("key", "render.missing_key")
	}
	if (c.Render.LeftDelim == "") != (c.Render.RightDelim == "") {
		return errors.New(errors.ErrConfigValid, "render.left_delim and render.right_delim must be set together").
			WithDetail("key", "render.left_delim")
	}
	if c.Logging.Verbosity < 0 {
		return errors.Newf(errors.ErrConfigValid, "logging.verbosity must not be negative; got %d", c.Logging.Verbosity).
			WithDetail("key", "logging.verbosity")
	}
	return nil
}

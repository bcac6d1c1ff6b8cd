// Package config provides configuration loading and structs for the kensaku server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application. The root directory is not
// part of the file config: it is mandatory and comes from the command line or
// the SEARCH_PATH environment variable.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Display DisplayConfig `yaml:"display"`
	Search  SearchConfig  `yaml:"search"`
	Read    ReadConfig    `yaml:"read"`
}

// DisplayConfig holds display-path settings.
type DisplayConfig struct {
	// AbsolutePaths renders all result paths as full filesystem paths instead
	// of root-relative ones. Tool calls may override it per call.
	AbsolutePaths bool `yaml:"absolute_paths"`
}

// SearchConfig holds chunking and pagination settings.
type SearchConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// ReadConfig holds the context window for direct file reads.
type ReadConfig struct {
	CharsBefore int `yaml:"chars_before"`
	CharsAfter  int `yaml:"chars_after"`
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a config with all defaults applied, for running without a
// config file.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ResolveBool implements the two-level configuration chain for per-call
// overrides: a non-nil override wins, otherwise the server-wide default applies.
func ResolveBool(override *bool, serverDefault bool) bool {
	if override != nil {
		return *override
	}
	return serverDefault
}

// ResolveLimit clamps a per-call limit against the configured defaults: zero or
// negative falls back to the default, anything above the maximum is capped.
func (s *SearchConfig) ResolveLimit(limit int) int {
	if limit <= 0 {
		return s.DefaultLimit
	}
	if limit > s.MaxLimit {
		return s.MaxLimit
	}
	return limit
}

// Package config defines analyzer configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers an optional YAML file and HOLDEMDNA_* env vars on top.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"fmt"
	"time"
)

// Output formats understood by the analyzer.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Format selects the report presenter: text, json or pretty.
	Format string `koanf:"format"`

	// JSONIndent is the number of spaces used when Format is json.
	JSONIndent int `koanf:"json_indent"`

	// MetricsFile, when set, receives a Prometheus textfile after every analysis.
	MetricsFile string `koanf:"metrics_file"`

	// WatchDebounceMS coalesces bursts of file events in watch mode.
	WatchDebounceMS int `koanf:"watch_debounce_ms"`

	// RankWorkers is the number of concurrent analyses in rank mode. 0 uses the CPU count.
	RankWorkers int `koanf:"rank_workers"`

	// RankTop is how many leaderboard rows rank mode prints.
	RankTop int `koanf:"rank_top"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "warn",
		Format:          FormatText,
		JSONIndent:      2,
		MetricsFile:     "",
		WatchDebounceMS: 250,
		RankWorkers:     0,
		RankTop:         10,
	}
}

// WatchDebounce returns WatchDebounceMS as a duration.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMS) * time.Millisecond
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatPretty:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}
	if c.JSONIndent < 0 {
		return fmt.Errorf("%w: json_indent must be >= 0", ErrInvalidConfig)
	}
	if c.WatchDebounceMS < 0 {
		return fmt.Errorf("%w: watch_debounce_ms must be >= 0", ErrInvalidConfig)
	}
	if c.RankWorkers < 0 {
		return fmt.Errorf("%w: rank_workers must be >= 0", ErrInvalidConfig)
	}
	if c.RankTop < 1 {
		return fmt.Errorf("%w: rank_top must be >= 1", ErrInvalidConfig)
	}
	return nil
}

// Package config provides configuration management for the polyregex CLI.
//
// Values are layered: built-in defaults, then polyregex.yaml, then
// POLYREGEX_ environment variables, then explicitly set command line flags.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/coregx/polyregex/flavor"
	"github.com/coregx/polyregex/meta"
	"github.com/coregx/polyregex/validate"
)

// Defaults for the CLI configuration.
const (
	DefaultFlavor          = "ecmascript"
	DefaultFeatures        = "all"
	DefaultInlineCacheSize = 4
	DefaultMaxIndex        = 1<<31 - 1
	DefaultMatchTimeout    = "0s"
	DefaultLogLevel        = "warn"
	DefaultOutput          = "text"
)

// Config holds all CLI configuration options.
type Config struct {
	Flavor          string `koanf:"flavor"`
	Features        string `koanf:"features"`
	Eager           bool   `koanf:"eager"`
	InlineCacheSize int    `koanf:"inline_cache_size"`
	MaxIndex        int64  `koanf:"max_index"`
	MatchTimeout    string `koanf:"match_timeout"`
	LogLevel        string `koanf:"log_level"`
	OutputFormat    string `koanf:"output"`
}

// EngineConfig converts the CLI options into an engine configuration.
// The result is validated.
func (c *Config) EngineConfig(logger *slog.Logger) (meta.Config, error) {
	f, err := flavor.Parse(c.Flavor)
	if err != nil {
		return meta.Config{}, err
	}
	features, err := validate.ParseFeatureSet(c.Features)
	if err != nil {
		return meta.Config{}, err
	}
	timeout, err := time.ParseDuration(c.MatchTimeout)
	if err != nil {
		return meta.Config{}, fmt.Errorf("invalid match_timeout: %w", err)
	}

	ec := meta.DefaultConfig()
	ec.Flavor = f
	ec.Features = features
	ec.RegressionTestMode = c.Eager
	ec.InlineCacheSize = c.InlineCacheSize
	ec.MaxIndex = c.MaxIndex
	ec.MatchTimeout = timeout
	ec.Logger = logger
	if err := ec.Validate(); err != nil {
		return meta.Config{}, err
	}
	return ec, nil
}

// Validate checks the options that are not covered by the engine
// configuration.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", c.OutputFormat)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

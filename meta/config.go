// Package meta implements the regex engine front-end: compilation into
// lazily compiled objects and dispatch of exec calls to their matchers.
//
// The pieces are:
//   - Engine: validates patterns through the configured flavor and creates
//     Objects
//   - Object: a validated pattern with a write-once matcher slot, compiled on
//     first use
//   - Dispatcher: an exec call site with a small inline cache of matchers
//
// All three are safe for concurrent use without external locking.
package meta

import (
	"log/slog"
	"math"
	"time"

	"github.com/coregx/polyregex/flavor"
	"github.com/coregx/polyregex/validate"
)

// MaxInlineCacheSize is the largest accepted Config.InlineCacheSize.
const MaxInlineCacheSize = 16

// Config controls engine and dispatcher behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.Flavor = flavor.Python
//	engine, err := meta.NewEngine(nil, config)
type Config struct {
	// Flavor selects the dialect. None uses the default grammar.
	// Default: flavor.None
	Flavor flavor.Flavor

	// Features is the set of constructs patterns may use. It applies to the
	// default grammar only; a configured Flavor validates on its own terms.
	// Default: validate.AllFeatures
	Features validate.FeatureSet

	// RegressionTestMode compiles every object eagerly, so backend failures
	// surface from Compile instead of the first exec.
	// Default: false
	RegressionTestMode bool

	// InlineCacheSize is the number of objects a dispatcher remembers before
	// it turns generic. Zero disables the cache.
	// Default: 4
	InlineCacheSize int

	// MaxIndex is the largest fromIndex that is executed; larger values
	// yield no match without compiling.
	// Default: math.MaxInt32
	MaxIndex int64

	// MatchTimeout bounds a single backtracking search of the native
	// backend. Zero means no limit.
	// Default: 0
	MatchTimeout time.Duration

	// Logger receives debug events. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Flavor:          flavor.None,
		Features:        validate.AllFeatures,
		InlineCacheSize: 4,
		MaxIndex:        math.MaxInt32,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - InlineCacheSize: 0 to 16
//   - MaxIndex: 0 to math.MaxInt32
//   - MatchTimeout: not negative
//   - Flavor: None or a registered flavor
func (c Config) Validate() error {
	if c.InlineCacheSize < 0 || c.InlineCacheSize > MaxInlineCacheSize {
		return &ConfigError{
			Field:   "InlineCacheSize",
			Message: "must be between 0 and 16",
		}
	}
	if c.MaxIndex < 0 || c.MaxIndex > math.MaxInt32 {
		return &ConfigError{
			Field:   "MaxIndex",
			Message: "must be between 0 and 2147483647",
		}
	}
	if c.MatchTimeout < 0 {
		return &ConfigError{
			Field:   "MatchTimeout",
			Message: "must not be negative",
		}
	}
	if _, err := flavor.Resolve(c.Flavor); err != nil {
		return &ConfigError{
			Field:   "Flavor",
			Message: "unknown flavor " + c.Flavor.String(),
		}
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "regexp: invalid config: " + e.Field + ": " + e.Message
}

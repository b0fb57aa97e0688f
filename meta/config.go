// Package meta implements the engine orchestrator that picks how a compiled
// pattern answers full-string match queries.
//
// Every engine is built on the same Thompson NFA. Depending on what literal
// analysis proves about the pattern's language, the engine may answer without
// running the NFA at all:
//   - ExactSet: the language is a small finite set; matching is a set lookup
//   - Prefilter: every member contains one of a few factors; haystacks that
//     contain none are rejected by a substring or Aho-Corasick scan
//   - NFA: Pike VM simulation for everything else
//
// All strategies return exactly what the Pike VM would return.
package meta

import (
	"io"
	"log/slog"
)

// Config controls engine behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // Force NFA-only execution for non-finite languages
//	engine, err := meta.Compile("(a|b)*abb", config)
type Config struct {
	// EnableExactSet enables the finite-language fast path.
	// Default: true
	EnableExactSet bool

	// EnablePrefilter enables rejection of haystacks lacking every required factor.
	// Default: true
	EnablePrefilter bool

	// MaxLiterals caps the size of exact sets and factor sets collected
	// during literal analysis.
	// Default: 64
	MaxLiterals int

	// MinFactorLen is the shortest factor worth a prefilter. Single-byte
	// factors reject too little to pay for the scan.
	// Default: 2
	MinFactorLen int

	// Logger receives strategy selection at debug level.
	// Default: a logger that discards everything
	Logger *slog.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableExactSet:  true,
		EnablePrefilter: true,
		MaxLiterals:     64,
		MinFactorLen:    2,
		Logger:          discardLogger(),
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MaxLiterals: 1 to 4,096
//   - MinFactorLen: 1 to 64
func (c Config) Validate() error {
	if c.MaxLiterals < 1 || c.MaxLiterals > 4096 {
		return &ConfigError{
			Field:   "MaxLiterals",
			Message: "must be between 1 and 4,096",
		}
	}
	if c.EnablePrefilter && (c.MinFactorLen < 1 || c.MinFactorLen > 64) {
		return &ConfigError{
			Field:   "MinFactorLen",
			Message: "must be between 1 and 64",
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "thompson: invalid config: " + e.Field + ": " + e.Message
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Package config provides configuration management for QualCode.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Generate: responses, waves
//   - Reliability: base_flip, ambiguous_flip
//   - Log: level, format, destination
//   - General: seed, jobs_number
//
// Runtime-only fields (CLI flags only):
//   - OutDir (per-command)
//   - Reliability.FlipRates (per-theme overrides)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use QUALCODE_ prefix with underscores for nesting:
//
//	QUALCODE_GENERATE_RESPONSES=2000
//	QUALCODE_RELIABILITY_BASE_FLIP=0.05
//	QUALCODE_LOG_LEVEL=info
//	QUALCODE_SEED=42
package config

import (
	"runtime"
)

// Config represents the complete QualCode configuration.
type Config struct {
	// Generate contains settings for the synthetic response generator.
	Generate GenerateConfig `mapstructure:"generate" yaml:"generate"`

	// Reliability contains settings for second-coder simulation.
	Reliability ReliabilityConfig `mapstructure:"reliability" yaml:"reliability"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Seed is the run-wide random seed. Every seeded procedure (response
	// generation, indicator simulation, exemplar shuffling, second-coder
	// flips) derives its stream from this value, so a run is reproducible
	// bit-for-bit.
	Seed int64 `mapstructure:"seed" yaml:"seed"`

	// JobsNumber is the number of concurrent workers for the per-response
	// coding pass. Default value is set according to the number of
	// available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// OutDir is the directory where run artifacts (CSV tables, the brief,
	// the SQLite export) are written. Runtime-only, set by CLI flag.
	OutDir string

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// GenerateConfig contains settings for the synthetic response generator.
type GenerateConfig struct {
	// Responses is the total number of synthetic responses to create.
	Responses int `mapstructure:"responses" yaml:"responses"`

	// Waves is the number of survey waves, 1 to 3 (Jan-Mar 2024 months).
	Waves int `mapstructure:"waves" yaml:"waves"`
}

// ReliabilityConfig contains settings for the simulated second coder.
type ReliabilityConfig struct {
	// BaseFlip is the label flip probability for ordinary themes.
	BaseFlip float64 `mapstructure:"base_flip" yaml:"base_flip"`

	// AmbiguousFlip is the flip probability for themes the codebook marks
	// as ambiguous. Ambiguous themes drift more between human coders, so
	// the simulation flips their labels more often.
	AmbiguousFlip float64 `mapstructure:"ambiguous_flip" yaml:"ambiguous_flip"`

	// FlipRates holds per-theme overrides of the flip probability,
	// keyed by theme ID. Themes absent from the map fall back to
	// BaseFlip or AmbiguousFlip. Runtime-only field.
	FlipRates map[string]float64 `mapstructure:"-" yaml:"-"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Generate: GenerateConfig{
			Responses: 2000,
			Waves:     3,
		},
		Reliability: ReliabilityConfig{
			BaseFlip:      0.05,
			AmbiguousFlip: 0.08,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		Seed:       42,
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptGenerateResponses sets the total number of synthetic responses.
func OptGenerateResponses(i int) Option {
	return func(c *Config) {
		if isValidInt("Generate Responses", i) {
			c.Generate.Responses = i
		}
	}
}

// OptGenerateWaves sets the number of survey waves (1-3).
func OptGenerateWaves(i int) Option {
	return func(c *Config) {
		if isValidWaves("Generate Waves", i) {
			c.Generate.Waves = i
		}
	}
}

// OptSeed sets the run-wide random seed.
// Any value is valid, including zero and negative numbers.
func OptSeed(i int64) Option {
	return func(c *Config) {
		c.Seed = i
	}
}

// OptReliabilityBaseFlip sets the flip probability for ordinary themes.
// Valid range is [0, 1].
func OptReliabilityBaseFlip(f float64) Option {
	return func(c *Config) {
		if isValidProb("Reliability Base Flip", f) {
			c.Reliability.BaseFlip = f
		}
	}
}

// OptReliabilityAmbiguousFlip sets the flip probability for themes marked
// ambiguous in the codebook. Valid range is [0, 1].
func OptReliabilityAmbiguousFlip(f float64) Option {
	return func(c *Config) {
		if isValidProb("Reliability Ambiguous Flip", f) {
			c.Reliability.AmbiguousFlip = f
		}
	}
}

// OptReliabilityFlipRates sets per-theme flip probability overrides.
// Entries with probabilities outside [0, 1] are rejected.
// Runtime-only field - not in ToOptions().
func OptReliabilityFlipRates(rates map[string]float64) Option {
	return func(c *Config) {
		if len(rates) == 0 {
			return
		}
		if c.Reliability.FlipRates == nil {
			c.Reliability.FlipRates = make(map[string]float64, len(rates))
		}
		for theme, rate := range rates {
			if isValidProb("Flip Rate "+theme, rate) {
				c.Reliability.FlipRates[theme] = rate
			}
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for the coding pass.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptOutDir sets the directory for run artifacts.
// Runtime-only field - not in ToOptions().
func OptOutDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.OutDir = s
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

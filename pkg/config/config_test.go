package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/qualverse/qualcode/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "qualcode"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "qualcode", "logs"),
		},
		{
			msg: "data dir",
			fn:  config.DataDir,
			res: filepath.Join(tempHome, ".local", "share", "qualcode", "data"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Generator defaults
		assert.Equal(t, 2000, cfg.Generate.Responses)
		assert.Equal(t, 3, cfg.Generate.Waves)

		// Reliability defaults
		assert.Equal(t, 0.05, cfg.Reliability.BaseFlip)
		assert.Equal(t, 0.08, cfg.Reliability.AmbiguousFlip)
		assert.Nil(t, cfg.Reliability.FlipRates)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.Equal(t, int64(42), cfg.Seed)

		// JobsNumber defaults to CPU count
		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestOptionGenerateResponses(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets valid count",
			input:    500,
			expected: 500,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: 2000, // Should keep default
		},
		{
			name:     "ignores negative",
			input:    -10,
			expected: 2000, // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptGenerateResponses(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Generate.Responses)
		})
	}
}

func TestOptionGenerateWaves(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets one wave",
			input:    1,
			expected: 1,
		},
		{
			name:     "sets two waves",
			input:    2,
			expected: 2,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: 3, // Should keep default
		},
		{
			name:     "ignores too many waves",
			input:    4,
			expected: 3, // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptGenerateWaves(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Generate.Waves)
		})
	}
}

func TestOptionSeed(t *testing.T) {
	tests := []struct {
		name  string
		input int64
	}{
		{
			name:  "sets positive seed",
			input: 7,
		},
		{
			name:  "accepts zero",
			input: 0,
		},
		{
			name:  "accepts negative",
			input: -13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptSeed(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.input, cfg.Seed)
		})
	}
}

func TestOptionReliabilityFlips(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{
			name:     "sets valid probability",
			input:    0.2,
			expected: 0.2,
		},
		{
			name:     "accepts zero",
			input:    0,
			expected: 0,
		},
		{
			name:     "accepts one",
			input:    1,
			expected: 1,
		},
		{
			name:     "ignores negative",
			input:    -0.1,
			expected: 0.05, // Should keep default
		},
		{
			name:     "ignores above one",
			input:    1.5,
			expected: 0.05, // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptReliabilityBaseFlip(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Reliability.BaseFlip)
		})
	}
}

func TestOptionReliabilityFlipRates(t *testing.T) {
	t.Run("sets valid overrides", func(t *testing.T) {
		cfg := config.New()
		opt := config.OptReliabilityFlipRates(map[string]float64{
			"AFFORDABILITY": 0.2,
		})
		cfg.Update([]config.Option{opt})
		assert.Equal(t, 0.2, cfg.Reliability.FlipRates["AFFORDABILITY"])
	})

	t.Run("rejects out-of-range entries", func(t *testing.T) {
		cfg := config.New()
		opt := config.OptReliabilityFlipRates(map[string]float64{
			"AFFORDABILITY":  0.2,
			"STRESS_BURNOUT": 1.5,
		})
		cfg.Update([]config.Option{opt})
		assert.Equal(t, 0.2, cfg.Reliability.FlipRates["AFFORDABILITY"])
		_, ok := cfg.Reliability.FlipRates["STRESS_BURNOUT"]
		assert.False(t, ok)
	})

	t.Run("ignores empty map", func(t *testing.T) {
		cfg := config.New()
		opt := config.OptReliabilityFlipRates(nil)
		cfg.Update([]config.Option{opt})
		assert.Nil(t, cfg.Reliability.FlipRates)
	})
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid log level - debug",
			input:    "debug",
			expected: "debug",
		},
		{
			name:     "sets valid log level - error",
			input:    "error",
			expected: "error",
		},
		{
			name:     "normalizes to lowercase",
			input:    "DEBUG",
			expected: "debug",
		},
		{
			name:     "ignores invalid value",
			input:    "trace",
			expected: "info", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptLogLevel(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionLogFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid format - json",
			input:    "json",
			expected: "json",
		},
		{
			name:     "sets valid format - text",
			input:    "text",
			expected: "text",
		},
		{
			name:     "ignores invalid value",
			input:    "xml",
			expected: "json", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptLogFormat(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Log.Format)
		})
	}
}

func TestOptionJobsNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets valid jobs number",
			input:    8,
			expected: 8,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: runtime.NumCPU(), // Should keep default
		},
		{
			name:     "ignores negative",
			input:    -5,
			expected: runtime.NumCPU(), // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptJobsNumber(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.JobsNumber)
		})
	}
}

func TestMultipleOptions(t *testing.T) {
	t.Run("applies multiple options in order", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptGenerateResponses(1000),
			config.OptGenerateWaves(2),
			config.OptSeed(7),
			config.OptLogLevel("debug"),
			config.OptJobsNumber(16),
		}

		cfg.Update(opts)

		assert.Equal(t, 1000, cfg.Generate.Responses)
		assert.Equal(t, 2, cfg.Generate.Waves)
		assert.Equal(t, int64(7), cfg.Seed)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, 16, cfg.JobsNumber)

		// Unchanged fields keep defaults
		assert.Equal(t, 0.05, cfg.Reliability.BaseFlip)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptSeed(1),
			config.OptSeed(2),
		}

		cfg.Update(opts)

		assert.Equal(t, int64(2), cfg.Seed)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		opts := []config.Option{
			config.OptGenerateResponses(500),
			config.OptGenerateWaves(2),
			config.OptReliabilityBaseFlip(0.1),
			config.OptReliabilityAmbiguousFlip(0.15),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptSeed(7),
			config.OptJobsNumber(8),
		}
		original.Update(opts)

		// Convert to options and apply to new config
		convertedOpts := original.ToOptions()
		newCfg := config.New()
		newCfg.Update(convertedOpts)

		// Verify persistent fields match
		assert.Equal(t, original.Generate.Responses, newCfg.Generate.Responses)
		assert.Equal(t, original.Generate.Waves, newCfg.Generate.Waves)
		assert.Equal(t, original.Reliability.BaseFlip, newCfg.Reliability.BaseFlip)
		assert.Equal(t, original.Reliability.AmbiguousFlip, newCfg.Reliability.AmbiguousFlip)
		assert.Equal(t, original.Log.Level, newCfg.Log.Level)
		assert.Equal(t, original.Log.Format, newCfg.Log.Format)
		assert.Equal(t, original.Log.Destination, newCfg.Log.Destination)
		assert.Equal(t, original.Seed, newCfg.Seed)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptOutDir("/custom/out"),
			config.OptReliabilityFlipRates(map[string]float64{
				"AFFORDABILITY": 0.2,
			}),
		})

		// These fields should not be in ToOptions() output
		opts := cfg.ToOptions()
		newCfg := config.New()
		newCfg.Update(opts)

		// Runtime fields should remain at defaults in newCfg
		assert.Equal(t, "", newCfg.HomeDir)
		assert.Equal(t, "", newCfg.OutDir)
		assert.Nil(t, newCfg.Reliability.FlipRates)
	})
}

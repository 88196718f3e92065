package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, OutDir, FlipRates).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	i = c.Generate.Responses
	if i > 0 {
		res = append(res, OptGenerateResponses(i))
	}
	i = c.Generate.Waves
	if i > 0 {
		res = append(res, OptGenerateWaves(i))
	}

	f := c.Reliability.BaseFlip
	if f > 0 {
		res = append(res, OptReliabilityBaseFlip(f))
	}
	f = c.Reliability.AmbiguousFlip
	if f > 0 {
		res = append(res, OptReliabilityAmbiguousFlip(f))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	if c.Seed != 0 {
		res = append(res, OptSeed(c.Seed))
	}
	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidWaves(name string, i int) bool {
	res := i >= 1 && i <= 3
	if !res {
		gn.Warn("<em>%s</em> has to be between 1 and 3, ignoring %d", name, i)
	}
	return res
}

func isValidProb(name string, f float64) bool {
	res := f >= 0 && f <= 1
	if !res {
		gn.Warn("<em>%s</em> has to be within [0, 1], ignoring %v", name, f)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stdout": s, "stderr": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			[]string{name, val, strings.Join(lines, "\n")},
		)
		return false
	}
}

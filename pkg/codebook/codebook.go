// Package codebook defines the qualitative coding codebook schema.
//
// The codebook is the transparent registry of themes that drives
// multi-label coding: each theme carries a stable ID, a human-readable
// definition, and the keyword/phrase triggers that assign it. Users
// provide the codebook as codebook.yaml; this package handles schema
// definition, validation, and the immutable in-memory registry.
package codebook

import (
	"sort"
)

// Loader loads the codebook from its configured location.
type Loader interface {
	Load() (*Codebook, error)
}

// CodebookConfig represents the complete codebook.yaml configuration file.
type CodebookConfig struct {
	// Themes is the list of themes available for coding.
	Themes []ThemeConfig `yaml:"themes"`
}

// ThemeConfig represents configuration for a single theme.
type ThemeConfig struct {
	// ID is the stable identifier, by convention UPPER_SNAKE_CASE
	// (e.g. STRESS_BURNOUT).
	ID string `yaml:"id"`

	// Definition is the human-readable description of what the theme
	// captures.
	Definition string `yaml:"definition"`

	// Triggers is the list of keyword/phrase triggers. A response is
	// assigned the theme when at least one trigger occurs in its text.
	Triggers []string `yaml:"triggers"`

	// Exemplar is an optional canonical quote illustrating the theme.
	Exemplar string `yaml:"exemplar,omitempty"`

	// Ambiguous marks themes where human coders drift most; the
	// reliability simulator flips their labels at a higher rate.
	Ambiguous bool `yaml:"ambiguous,omitempty"`
}

// Theme is a single immutable theme of the codebook.
type Theme struct {
	ID         string
	Definition string
	Triggers   []string
	Exemplar   string
	Ambiguous  bool
}

// Codebook is the immutable theme registry for a run. Themes are held
// in sorted-ID order so every iteration over the codebook is
// deterministic.
type Codebook struct {
	themes []Theme
	byID   map[string]int
}

// New builds a Codebook from a validated configuration.
// Call CodebookConfig.Validate() first; New assumes well-formed input
// apart from ordering.
func New(cfg *CodebookConfig) *Codebook {
	themes := make([]Theme, len(cfg.Themes))
	for i, tc := range cfg.Themes {
		triggers := make([]string, len(tc.Triggers))
		copy(triggers, tc.Triggers)
		themes[i] = Theme{
			ID:         tc.ID,
			Definition: tc.Definition,
			Triggers:   triggers,
			Exemplar:   tc.Exemplar,
			Ambiguous:  tc.Ambiguous,
		}
	}
	sort.Slice(themes, func(i, j int) bool {
		return themes[i].ID < themes[j].ID
	})

	byID := make(map[string]int, len(themes))
	for i, th := range themes {
		byID[th.ID] = i
	}
	return &Codebook{themes: themes, byID: byID}
}

// Len returns the number of themes.
func (c *Codebook) Len() int {
	return len(c.themes)
}

// Themes returns all themes in sorted-ID order.
// The returned slice must not be modified.
func (c *Codebook) Themes() []Theme {
	return c.themes
}

// IDs returns all theme IDs in sorted order.
func (c *Codebook) IDs() []string {
	res := make([]string, len(c.themes))
	for i, th := range c.themes {
		res[i] = th.ID
	}
	return res
}

// Theme returns the theme with the given ID.
func (c *Codebook) Theme(id string) (Theme, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Theme{}, false
	}
	return c.themes[i], true
}

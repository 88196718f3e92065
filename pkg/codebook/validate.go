package codebook

import (
	"fmt"
	"strings"
)

// Validate checks the codebook configuration for errors.
// An empty codebook or a malformed theme is a configuration error,
// rejected here before any coding runs.
func (c *CodebookConfig) Validate() error {
	if len(c.Themes) == 0 {
		return fmt.Errorf("no themes specified in codebook")
	}

	seen := make(map[string]struct{}, len(c.Themes))
	for i := range c.Themes {
		if err := c.Themes[i].Validate(i + 1); err != nil {
			return fmt.Errorf("theme %d: %w", i+1, err)
		}
		id := c.Themes[i].ID
		if _, ok := seen[id]; ok {
			return fmt.Errorf("theme %d: duplicate id %q", i+1, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// Validate checks a single theme configuration.
// Trigger overlap across themes is expected and is not checked here:
// a span of text may legitimately satisfy several themes.
func (t *ThemeConfig) Validate(index int) error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("id is required")
	}

	var triggers int
	for _, trg := range t.Triggers {
		if strings.TrimSpace(trg) != "" {
			triggers++
		}
	}
	if triggers == 0 {
		return fmt.Errorf("at least one non-empty trigger is required")
	}

	return nil
}

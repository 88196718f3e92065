// Package lifecycle defines the contracts between the pure analytic
// engine and its impure collaborators (generation, export, reporting),
// plus the assembly of a full run's derived artifacts.
package lifecycle

import (
	"github.com/qualverse/qualcode/pkg/config"
	"github.com/qualverse/qualcode/pkg/survey"
)

// Generator produces the input response set for a run. The core treats
// generated responses as read-only input.
type Generator interface {
	// Generate creates cfg.Generate.Responses synthetic responses over
	// cfg.Generate.Waves waves, reproducibly from cfg.Seed.
	Generate(cfg *config.Config) ([]survey.Response, error)
}

// Exporter persists a run's artifacts to a directory. Implementations
// exist for CSV tables and for a single SQLite artifact database.
type Exporter interface {
	// Export writes all tables of the run under dir and returns the
	// written paths keyed by artifact name.
	Export(dir string, arts *Artifacts) (map[string]string, error)
}

// Reporter renders a narrative artifact (the markdown brief) from a
// run's tables.
type Reporter interface {
	// Report writes the brief under dir and returns its path.
	Report(dir string, arts *Artifacts) (string, error)
}

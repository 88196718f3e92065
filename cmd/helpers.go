package cmd

import (
	"path/filepath"

	"github.com/qualverse/qualcode/internal/iocodebook"
	"github.com/qualverse/qualcode/internal/ioresponses"
	"github.com/qualverse/qualcode/pkg/codebook"
	"github.com/qualverse/qualcode/pkg/lifecycle"
	"github.com/qualverse/qualcode/pkg/survey"
)

func loadCodebook() (*codebook.Codebook, error) {
	return iocodebook.New(cfg).Load()
}

func readResponses() ([]survey.Response, error) {
	path := filepath.Join(outDir(), ioresponses.FileName)
	return ioresponses.Read(path)
}

// buildArtifacts recomputes the full analytic chain from the raw
// responses table on disk. Derived commands never parse derived CSVs
// back; the raw table is the only persistent input.
func buildArtifacts() (*lifecycle.Artifacts, error) {
	cb, err := loadCodebook()
	if err != nil {
		return nil, err
	}
	responses, err := readResponses()
	if err != nil {
		return nil, err
	}
	return lifecycle.Build(cb, responses, cfg)
}

package ioexport

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	qualcode "github.com/qualverse/qualcode/pkg"
	"github.com/qualverse/qualcode/pkg/config"
)

// ManifestFile is the run manifest inside an output directory.
const ManifestFile = "run_manifest.json"

// Manifest records the provenance of one run: what produced the
// artifacts, from which settings, and when. It makes an output
// directory self-describing.
type Manifest struct {
	RunID     string    `json:"runId"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`

	Seed          int64   `json:"seed"`
	Responses     int     `json:"responses"`
	Waves         int     `json:"waves"`
	BaseFlip      float64 `json:"baseFlip"`
	AmbiguousFlip float64 `json:"ambiguousFlip"`

	// Artifacts maps artifact names to the files written for this run.
	Artifacts map[string]string `json:"artifacts"`
}

// WriteManifest saves the run manifest under dir and returns its path.
func WriteManifest(
	dir string,
	cfg *config.Config,
	artifacts map[string]string,
) (string, error) {
	m := Manifest{
		RunID:         uuid.NewString(),
		Version:       qualcode.Version,
		Timestamp:     time.Now(),
		Seed:          cfg.Seed,
		Responses:     cfg.Generate.Responses,
		Waves:         cfg.Generate.Waves,
		BaseFlip:      cfg.Reliability.BaseFlip,
		AmbiguousFlip: cfg.Reliability.AmbiguousFlip,
		Artifacts:     artifacts,
	}

	path := filepath.Join(dir, ManifestFile)
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(m)
	if err != nil {
		return "", manifestError(path, err)
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return "", manifestError(path, err)
	}
	return path, nil
}

// Package iocodebook loads the codebook.yaml configuration from disk
// and builds the immutable theme registry.
package iocodebook

import (
	"os"

	"github.com/qualverse/qualcode/pkg/codebook"
	"github.com/qualverse/qualcode/pkg/config"
	"gopkg.in/yaml.v3"
)

type iocodebook struct {
	cfg *config.Config
}

func New(cfg *config.Config) codebook.Loader {
	res := iocodebook{cfg: cfg}
	return &res
}

func (l *iocodebook) Load() (*codebook.Codebook, error) {
	codebookPath := config.CodebookFilePath(l.cfg.HomeDir)
	cbConfig, err := loadCodebookConfig(codebookPath)
	if err != nil {
		return nil, CodebookConfigError(codebookPath, err)
	}
	return codebook.New(cbConfig), nil
}

func loadCodebookConfig(path string) (*codebook.CodebookConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg codebook.CodebookConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

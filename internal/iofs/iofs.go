package iofs

import (
	_ "embed"
	"os"

	"github.com/qualverse/qualcode/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed codebook.yaml
var CodebookYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
		config.DataDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

func EnsureCodebookFile(homeDir string) error {
	codebookPath := config.CodebookFilePath(homeDir)

	// Check if codebook file already exists
	if _, err := os.Stat(codebookPath); err == nil {
		return nil
	}

	// Write embedded codebook.yaml to the config directory
	if err := os.WriteFile(codebookPath, []byte(CodebookYAML), 0644); err != nil {
		return CopyFileError(codebookPath, err)
	}

	return nil
}

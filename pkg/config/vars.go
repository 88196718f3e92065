package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "qualcode"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/qualcode by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/qualcode/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// DataDir returns the default directory for run artifacts.
// Returns ~/.local/share/qualcode/data by default. A CLI flag can point
// OutDir anywhere else.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "data")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/qualcode/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// CodebookFilePath returns the full path to the codebook.yaml file.
// Returns ~/.config/qualcode/codebook.yaml by default.
func CodebookFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "codebook.yaml")
}

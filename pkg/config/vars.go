package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "capsid"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/capsid by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/capsid by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/capsid/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/capsid/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DatasetsFilePath returns the full path to the datasets.yaml file.
// Returns ~/.config/capsid/datasets.yaml by default.
func DatasetsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "datasets.yaml")
}

// RecordCacheDir returns the directory of the downloaded-record cache.
func RecordCacheDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "records")
}

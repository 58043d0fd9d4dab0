package config

import (
	"path/filepath"
	"strings"
)

var (
	// AppName is used in generating file system paths.
	AppName = "evset"
	// DownloadsPrefix starts the name of every per-table download folder.
	DownloadsPrefix = "AudioSet_"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/evset by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/evset by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// FetchDir returns the directory for temporary fetched audio.
// Returns ~/.cache/evset/fetch by default.
func FetchDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "fetch")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/evset/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/evset/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// RecipeFilePath returns the full path to the recipe.yaml file.
// Returns ~/.config/evset/recipe.yaml by default.
func RecipeFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "recipe.yaml")
}

// DownloadDir returns the folder that receives the audio of a table:
// <outputDir>/AudioSet_<table stem>_downloads.
func DownloadDir(outputDir, tablePath string) string {
	base := filepath.Base(tablePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, DownloadsPrefix+stem+"_downloads")
}

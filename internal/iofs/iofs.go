// Package iofs prepares the directories and default files evset uses.
package iofs

import (
	_ "embed"
	"os"

	"github.com/evsiren/evset/pkg/config"
	"github.com/evsiren/evset/pkg/recipe"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, cache, fetch and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.FetchDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDir creates a directory if it does not exist.
func EnsureDir(dir string) error {
	return touchDir(dir)
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

// EnsureConfigFile writes the default config.yaml unless one exists.
func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), ConfigYAML)
}

// EnsureRecipeFile writes the default recipe.yaml unless one exists.
func EnsureRecipeFile(homeDir string) error {
	return ensureFile(config.RecipeFilePath(homeDir), recipe.DefaultYAML)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}

	return nil
}

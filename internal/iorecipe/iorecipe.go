// Package iorecipe loads curation recipes from YAML files.
package iorecipe

import (
	"os"

	"github.com/evsiren/evset/pkg/recipe"
)

// Load reads a recipe file. An empty path gives the built-in recipe.
func Load(path string) (*recipe.Recipe, error) {
	if path == "" {
		return recipe.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	res, err := recipe.Parse(data)
	if err != nil {
		return nil, RecipeConfigError(path, err)
	}
	return res, nil
}

package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evsiren/evset/pkg/config"
	"github.com/evsiren/evset/pkg/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEnsureDirs verifies all required directories are created
// and repeated calls succeed.
func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	for range 2 {
		require.NoError(t, EnsureDirs(tmpDir))
	}

	dirs := []string{
		filepath.Join(tmpDir, ".config", "evset"),
		filepath.Join(tmpDir, ".cache", "evset"),
		filepath.Join(tmpDir, ".cache", "evset", "fetch"),
		filepath.Join(tmpDir, ".local", "share", "evset", "logs"),
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), dir)
	}
}

// TestTouchDir_ExistingFile verifies a file in place of a
// directory is reported.
func TestTouchDir_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	err := EnsureDir(path)
	assert.Error(t, err)
}

// TestEnsureFiles verifies default files are written once and
// never overwritten.
func TestEnsureFiles(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		path    func(string) string
		content string
	}{
		{"config", EnsureConfigFile, config.ConfigFilePath, ConfigYAML},
		{"recipe", EnsureRecipeFile, config.RecipeFilePath, recipe.DefaultYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, EnsureDirs(tmpDir))
			require.NoError(t, tt.fn(tmpDir))

			path := tt.path(tmpDir)
			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(content))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

			custom := "# custom\n"
			require.NoError(t, os.WriteFile(path, []byte(custom), 0644))
			require.NoError(t, tt.fn(tmpDir))
			content, err = os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, custom, string(content),
				"Existing file should not be overwritten")
		})
	}
}

// TestEnsureFiles_NoDir verifies missing config directory
// is reported.
func TestEnsureFiles_NoDir(t *testing.T) {
	err := EnsureConfigFile(t.TempDir())
	assert.Error(t, err)
}

// TestConfigYAML_Embedded verifies embedded config covers all
// sections.
func TestConfigYAML_Embedded(t *testing.T) {
	for _, section := range []string{"rebalance:", "download:", "log:"} {
		assert.Contains(t, ConfigYAML, section)
	}
}

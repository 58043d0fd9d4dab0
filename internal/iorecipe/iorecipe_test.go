package iorecipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evsiren/evset/pkg/errcode"
	"github.com/evsiren/evset/pkg/recipe"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	def, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "EV_Positives", def.Positives.Name)

	path := filepath.Join(dir, "recipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(recipe.DefaultYAML), 0644))
	res, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, def, res)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("positives: {name: P}\n"), 0644))

	tests := []struct {
		msg  string
		path string
		code gn.ErrorCode
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), errcode.ReadFileError},
		{"invalid", bad, errcode.RecipeConfigError},
	}

	for _, v := range tests {
		_, err := Load(v.path)
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
	}
}

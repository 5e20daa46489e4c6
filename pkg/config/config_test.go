package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Analysis.Lines)
	assert.True(t, cfg.Analysis.Naming)
	assert.Equal(t, 0, cfg.Analysis.Concurrency)
	assert.NotEmpty(t, cfg.Keys.Functions)
	assert.True(t, cfg.Exclude.Gitignore)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "localens.toml")
	content := `
[analysis]
lines = true
naming = false
concurrency = 16

[keys]
locale_file = "i18n/de.json"
functions = ["t", "translate"]

[output]
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Analysis.Naming)
	assert.Equal(t, 16, cfg.Analysis.Concurrency)
	assert.Equal(t, "i18n/de.json", cfg.Keys.LocaleFile)
	assert.Equal(t, []string{"t", "translate"}, cfg.Keys.Functions)
	assert.Equal(t, "json", cfg.Output.Format)

	// Sections absent from the file keep their defaults.
	assert.True(t, cfg.Exclude.Gitignore)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "localens.yaml")
	content := "analysis:\n  concurrency: 4\nexclude:\n  gitignore: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Analysis.Concurrency)
	assert.False(t, cfg.Exclude.Gitignore)
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "localens.json")
	content := `{"keys": {"locale_file": "lang/fr.json"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lang/fr.json", cfg.Keys.LocaleFile)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/localens.toml")
	assert.Error(t, err)
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		{"src/app.ts", false},
		{"node_modules/lib/index.js", true},
		{filepath.Join("a", "vendor", "x.go"), true},
		{"app.min.js", true},
		{"go.sum", true},
		{"src/main.go", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.ShouldExclude(tt.path), tt.path)
	}
}

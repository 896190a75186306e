package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, 0, cfg.Ollama.TimeoutSeconds)
	assert.Equal(t, filepath.Join(home, ".tibr", "chat.db"), cfg.Store.Path)
	assert.Equal(t, filepath.Join(home, ".tibr", "state.db"), cfg.State.Path)
	assert.Equal(t, "output", cfg.Export.OutputDir)
	assert.Equal(t, "mmdc", cfg.Export.DiagramTool)
	assert.Equal(t, "pandoc", cfg.Export.Converter)
	assert.Equal(t, "xelatex", cfg.Export.PDFEngine)
	assert.Equal(t, []string{".rs", ".js", ".css", ".md", ".json"}, cfg.Source.Extensions)
	assert.Equal(t, "ollama", cfg.Describe.Provider)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TIBR_TEST_DATA", "/data")

	path := filepath.Join(home, "config.yaml")
	content := `
ollama:
  base_url: http://127.0.0.1:9999
  timeout_seconds: 30
store:
  path: $TIBR_TEST_DATA/chat.db
export:
  pdf_engine: lualatex
source:
  extensions: []
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.Ollama.BaseURL)
	assert.Equal(t, 30, cfg.Ollama.TimeoutSeconds)
	assert.Equal(t, "/data/chat.db", cfg.Store.Path)
	assert.Equal(t, "lualatex", cfg.Export.PDFEngine)
	assert.Equal(t, "mmdc", cfg.Export.DiagramTool)
	assert.Empty(t, cfg.Source.Extensions)
}

func TestLoadEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TIBR_OLLAMA_BASE_URL", "http://ollama.internal:11434")

	cfg, err := Load(filepath.Join(home, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://ollama.internal:11434", cfg.Ollama.BaseURL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"base url":   "ollama:\n  base_url: localhost\n",
		"timeout":    "ollama:\n  timeout_seconds: -1\n",
		"output dir": "export:\n  output_dir: a/b\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			home := t.TempDir()
			t.Setenv("HOME", home)
			path := filepath.Join(home, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestWriteThenLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := DefaultConfig()
	require.NoError(t, err)
	cfg.Describe.Provider = "deepseek"
	cfg.Describe.Model = "deepseek-chat"

	path := filepath.Join(home, "nested", "config.yaml")
	require.NoError(t, Write(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

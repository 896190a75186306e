package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultDir = ".tibr"

// Config is the top-level application configuration.
type Config struct {
	Ollama   OllamaConfig   `mapstructure:"ollama" yaml:"ollama"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store"`
	State    StateConfig    `mapstructure:"state" yaml:"state"`
	Export   ExportConfig   `mapstructure:"export" yaml:"export"`
	Source   SourceConfig   `mapstructure:"source" yaml:"source"`
	Describe DescribeConfig `mapstructure:"describe" yaml:"describe"`
}

// OllamaConfig points at the local LLM server. A zero timeout leaves the
// HTTP client unbounded.
type OllamaConfig struct {
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type StateConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// ExportConfig names the external tools used by the PDF export.
type ExportConfig struct {
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
	DiagramTool string `mapstructure:"diagram_tool" yaml:"diagram_tool"`
	Converter   string `mapstructure:"converter" yaml:"converter"`
	PDFEngine   string `mapstructure:"pdf_engine" yaml:"pdf_engine"`
}

// SourceConfig filters the recursive source listing. An empty extension
// list disables the filter.
type SourceConfig struct {
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
	Exclude    []string `mapstructure:"exclude" yaml:"exclude"`
}

// DescribeConfig selects the chat model used to describe dialogs.
type DescribeConfig struct {
	Provider  string `mapstructure:"provider" yaml:"provider"`
	Model     string `mapstructure:"model" yaml:"model"`
	BaseURL   string `mapstructure:"base_url" yaml:"base_url"`
	APIKeyEnv string `mapstructure:"api_key_env" yaml:"api_key_env"`
}

// DefaultConfig returns defaults rooted in the user's home directory.
func DefaultConfig() (Config, error) {
	dir, err := DefaultDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Ollama: OllamaConfig{
			BaseURL: "http://localhost:11434",
		},
		Store: StoreConfig{
			Path: filepath.Join(dir, "chat.db"),
		},
		State: StateConfig{
			Path: filepath.Join(dir, "state.db"),
		},
		Export: ExportConfig{
			OutputDir:   "output",
			DiagramTool: "mmdc",
			Converter:   "pandoc",
			PDFEngine:   "xelatex",
		},
		Source: SourceConfig{
			Extensions: []string{".rs", ".js", ".css", ".md", ".json"},
			Exclude:    []string{"src/lib", "src-tauri/target", "node_modules"},
		},
		Describe: DescribeConfig{
			Provider: "ollama",
			Model:    "llama3",
		},
	}, nil
}

// DefaultDir returns ~/.tibr.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, defaultDir), nil
}

// DefaultConfigPath returns ~/.tibr/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

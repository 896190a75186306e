package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "TIBR"

// Load reads configuration from the provided path. If path is empty, uses
// DefaultConfigPath. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("ollama.base_url", cfg.Ollama.BaseURL)
	v.SetDefault("ollama.timeout_seconds", cfg.Ollama.TimeoutSeconds)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("state.path", cfg.State.Path)
	v.SetDefault("export.output_dir", cfg.Export.OutputDir)
	v.SetDefault("export.diagram_tool", cfg.Export.DiagramTool)
	v.SetDefault("export.converter", cfg.Export.Converter)
	v.SetDefault("export.pdf_engine", cfg.Export.PDFEngine)
	v.SetDefault("source.extensions", cfg.Source.Extensions)
	v.SetDefault("source.exclude", cfg.Source.Exclude)
	v.SetDefault("describe.provider", cfg.Describe.Provider)
	v.SetDefault("describe.model", cfg.Describe.Model)
	v.SetDefault("describe.base_url", cfg.Describe.BaseURL)
	v.SetDefault("describe.api_key_env", cfg.Describe.APIKeyEnv)

	if err := v.ReadInConfig(); err != nil {
		if !isNotFound(err) {
			return Config{}, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	expandConfigEnv(&cfg)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write stores cfg as YAML at path, creating parent directories.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func isNotFound(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	return os.IsNotExist(err)
}

func validate(cfg Config) error {
	parsed, err := url.Parse(strings.TrimSpace(cfg.Ollama.BaseURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("ollama.base_url must include scheme and host (e.g. http://localhost:11434)")
	}
	if cfg.Ollama.TimeoutSeconds < 0 {
		return fmt.Errorf("ollama.timeout_seconds must not be negative")
	}
	if strings.TrimSpace(cfg.Export.OutputDir) == "" || strings.ContainsAny(cfg.Export.OutputDir, `/\`) {
		return fmt.Errorf("export.output_dir must be a plain directory name")
	}
	if cfg.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if cfg.State.Path == "" {
		return fmt.Errorf("state.path is required")
	}
	return nil
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.Store.Path = expandEnv(cfg.Store.Path)
	cfg.State.Path = expandEnv(cfg.State.Path)
	cfg.Export.DiagramTool = expandEnv(cfg.Export.DiagramTool)
	cfg.Export.Converter = expandEnv(cfg.Export.Converter)
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

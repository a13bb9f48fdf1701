package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/catwalk/pkg/catwalk"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration for dryrun.
type Config struct {
	DefaultModel string           `yaml:"default_model"`
	LogLevel     string           `yaml:"log_level"`
	LogFormat    string           `yaml:"log_format"`
	Provider     catwalk.Provider `yaml:"provider"`
}

// Default returns a Config populated with default values.
func Default() Config {
	return Config{
		DefaultModel: "gemini-2.5-flash",
		LogLevel:     "info",
		LogFormat:    "json",
		Provider: catwalk.Provider{
			Name: "Google (Gemini)",
			ID:   "gemini",
			Type: catwalk.TypeGoogle,
		},
	}
}

// Load reads configuration from the given path, falling back to defaults when missing.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if strings.TrimSpace(cfg.DefaultModel) == "" {
		cfg.DefaultModel = Default().DefaultModel
	}

	return cfg, nil
}

// Save writes the configuration to the given path, creating the parent
// directory when missing.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

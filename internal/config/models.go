package config

import (
	"os"

	"github.com/charmbracelet/catwalk/pkg/embedded"
)

type ModelChoice struct {
	ID   string
	Name string
}

// ConfiguredModels returns the models selectable for the configured provider.
// Falls back to catwalk's embedded catalog when the config lists none.
// Returns nil when the provider has no API key, since none would be usable.
func ConfiguredModels(cfg Config) []ModelChoice {
	provider := cfg.Provider
	models := provider.Models

	if len(models) == 0 {
		for _, p := range embedded.GetAll() {
			if p.ID == provider.ID {
				models = p.Models
				break
			}
		}
	}

	envKey := APIKeyEnv(string(provider.ID))
	if provider.APIKey == "" && (envKey == "" || os.Getenv(envKey) == "") {
		return nil
	}

	choices := make([]ModelChoice, 0, len(models))
	for _, m := range models {
		choices = append(choices, ModelChoice{ID: m.ID, Name: m.Name})
	}
	return choices
}

package config

import (
	"testing"

	"github.com/charmbracelet/catwalk/pkg/catwalk"
)

func TestConfiguredModelsRequiresAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Provider.Models = []catwalk.Model{{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash"}}
	t.Setenv("GEMINI_API_KEY", "")

	if models := ConfiguredModels(cfg); len(models) != 0 {
		t.Fatalf("expected no models without API key, got %d", len(models))
	}
}

func TestConfiguredModelsFromProviderList(t *testing.T) {
	cfg := Default()
	cfg.Provider.Models = []catwalk.Model{
		{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash"},
		{ID: "gemini-2.5-pro", Name: "Gemini 2.5 Pro"},
	}
	t.Setenv("GEMINI_API_KEY", "key")

	models := ConfiguredModels(cfg)
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
	if models[0].ID != "gemini-2.5-flash" || models[1].ID != "gemini-2.5-pro" {
		t.Errorf("unexpected model order: %+v", models)
	}
}

func TestConfiguredModelsUsesEmbeddedWhenAPIKeyPresent(t *testing.T) {
	cfg := Default()
	cfg.Provider = catwalk.Provider{
		Name: "OpenAI",
		ID:   catwalk.InferenceProviderOpenAI,
		Type: catwalk.TypeOpenAI,
	}
	t.Setenv("OPENAI_API_KEY", "key")

	if models := ConfiguredModels(cfg); len(models) == 0 {
		t.Fatal("expected embedded models when API key present")
	}
}

func TestConfiguredModelsInlineAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Provider.APIKey = "inline"
	cfg.Provider.Models = []catwalk.Model{{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash"}}
	t.Setenv("GEMINI_API_KEY", "")

	if models := ConfiguredModels(cfg); len(models) != 1 {
		t.Fatalf("expected inline API key to count, got %d models", len(models))
	}
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/catwalk/pkg/catwalk"
	"github.com/charmbracelet/catwalk/pkg/embedded"
	"github.com/charmbracelet/huh"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/config"
)

// SetupResult contains the choices collected by the setup wizard.
type SetupResult struct {
	Provider catwalk.Provider
	Model    string
	APIKey   string // blank when an existing key was kept
}

// RunSetupWizard walks the user through provider, API key and model
// selection in a full-screen form. The caller persists the result.
func RunSetupWizard(cfg config.Config) (SetupResult, error) {
	detected := config.DetectProviders()
	hasKey := make(map[string]bool, len(detected))
	for _, p := range detected {
		hasKey[p.ID] = p.HasKey
	}

	providerID := string(cfg.Provider.ID)
	if _, known := hasKey[providerID]; !known {
		providerID = "gemini"
	}
	apiKey := ""
	modelID := cfg.DefaultModel
	confirmed := false

	providerOpts := make([]huh.Option[string], 0, len(detected))
	for _, p := range detected {
		label := p.Name
		if p.HasKey {
			label += " (key found)"
		}
		providerOpts = append(providerOpts, huh.NewOption(label, p.ID))
	}

	stepTitle := func(step int, name string) string {
		return fmt.Sprintf("Step %d of 3: %s", step, name)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Provider").
				Options(providerOpts...).
				Value(&providerID),
		).Title(stepTitle(1, "Provider")).
			Description("Pick the service that will analyze and dry-run your algorithms.\n\nProviders marked \"key found\" already have an API key in your environment."),

		huh.NewGroup(
			huh.NewInput().
				Title("API key").
				EchoMode(huh.EchoModePassword).
				Value(&apiKey).
				DescriptionFunc(func() string {
					if hasKey[providerID] {
						return "A key for this provider is already set. Leave blank to keep it."
					}
					return fmt.Sprintf("Paste the key, or set %s yourself later.", config.APIKeyEnv(providerID))
				}, &providerID).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" && !hasKey[providerID] {
						return fmt.Errorf("no key found for this provider")
					}
					return nil
				}),
		).Title(stepTitle(2, "API key")).
			Description("The key is stored in your config directory with owner-only permissions\nand exported to the provider's environment variable on every run."),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Model").
				OptionsFunc(func() []huh.Option[string] {
					return modelOptions(providerID, cfg.DefaultModel)
				}, &providerID).
				Value(&modelID),
			huh.NewConfirm().
				Title("Save this configuration?").
				Affirmative("Save").
				Negative("Cancel").
				Value(&confirmed),
		).Title(stepTitle(3, "Model")).
			Description("The model answers both lab calls: structure analysis and the dry run."),
	).WithTheme(wizardTheme()).
		WithShowHelp(false) // the wrapper pins its own help bar

	wrapper := newWizardForm(form)
	if err := wrapper.Run(); err != nil {
		if err.Error() == "user aborted" {
			return SetupResult{}, fmt.Errorf("setup cancelled")
		}
		return SetupResult{}, err
	}
	if wrapper.State() == huh.StateAborted || !confirmed {
		return SetupResult{}, fmt.Errorf("setup cancelled")
	}

	return SetupResult{
		Provider: providerForID(providerID),
		Model:    modelID,
		APIKey:   strings.TrimSpace(apiKey),
	}, nil
}

// modelOptions lists the catalog models for a provider, falling back to
// the configured default when the catalog has none.
func modelOptions(providerID, fallback string) []huh.Option[string] {
	for _, p := range embedded.GetAll() {
		if string(p.ID) != providerID {
			continue
		}
		opts := make([]huh.Option[string], 0, len(p.Models))
		for _, m := range p.Models {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", m.Name, m.ID), m.ID))
		}
		if len(opts) > 0 {
			return opts
		}
	}
	return []huh.Option[string]{huh.NewOption(fallback, fallback)}
}

// providerForID resolves full provider metadata from the embedded catalog.
// The API key field stays empty on purpose: keys live in the environment,
// not in the config file.
func providerForID(id string) catwalk.Provider {
	for _, p := range embedded.GetAll() {
		if string(p.ID) == id {
			return catwalk.Provider{
				Name:        p.Name,
				ID:          p.ID,
				Type:        p.Type,
				APIEndpoint: p.APIEndpoint,
				Models:      p.Models,
			}
		}
	}
	return catwalk.Provider{
		Name: id,
		ID:   catwalk.InferenceProvider(id),
		Type: fallbackProviderType(id),
	}
}

// fallbackProviderType guesses a transport for providers the catalog does
// not know.
func fallbackProviderType(id string) catwalk.Type {
	switch id {
	case "gemini":
		return catwalk.TypeGoogle
	case "anthropic":
		return catwalk.TypeAnthropic
	case "openai":
		return catwalk.TypeOpenAI
	case "openrouter":
		return catwalk.TypeOpenRouter
	default:
		return catwalk.TypeOpenAICompat
	}
}

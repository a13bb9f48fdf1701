package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/config"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/paths"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/ui"
)

func newSetupCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Choose a provider, API key and model",
		Long:  "Walks through provider selection, API key entry and model choice,\nthen writes the configuration file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(cfgPath, func(cfg config.Config) error {
				sui := ui.NewSetupUI(cmd.OutOrStdout())

				// Let stored keys count as "key found" in the wizard.
				if err := config.InjectCredentials(); err != nil {
					sui.Warning(fmt.Sprintf("Stored credentials could not be read: %v", err))
				}

				res, err := ui.RunSetupWizard(cfg)
				if err != nil {
					if err.Error() == "setup cancelled" {
						sui.Cancelled("Setup cancelled. Nothing was changed.")
						return nil
					}
					return err
				}

				if res.APIKey != "" {
					if err := config.StoreCredential(string(res.Provider.ID), res.APIKey); err != nil {
						return fmt.Errorf("store credential: %w", err)
					}
					sui.Success("API key stored")
				}

				cfg.Provider = res.Provider
				cfg.DefaultModel = res.Model
				if err := config.Save(cfg, *cfgPath); err != nil {
					return err
				}

				sui.Header("Configuration saved")
				sui.SuccessPath("Config:", *cfgPath)
				sui.Info(fmt.Sprintf("Provider: %s", res.Provider.Name))
				sui.Info(fmt.Sprintf("Model:    %s", res.Model))
				sui.Info(fmt.Sprintf("Logs:     %s", paths.LogFile()))
				sui.Blank()
				sui.Step("Run `dryrun` to open the lab, or `dryrun parse` for a one-off analysis.")
				sui.Blank()
				sui.Complete("Setup complete!")
				return nil
			})
		},
	}
}

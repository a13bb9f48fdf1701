package main

import (
	"github.com/spf13/cobra"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/config"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/logging"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/paths"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/reason"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/ui"
)

func newRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "dryrun",
		Short:         "Dry-run algorithms step by step",
		Long:          "An interactive lab: describe an algorithm in words or as a photo,\nget a flowchart, feed it inputs, and walk through a judged dry run.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(&cfgPath, func(cfg config.Config) error {
				log, closeLog, err := logging.New(paths.LogFile(), cfg.LogLevel, cfg.LogFormat)
				if err != nil {
					return err
				}
				defer closeLog()

				// Stored keys become env vars so provider construction and
				// key detection see them. A broken credentials file should
				// not stop the lab from opening.
				if err := config.InjectCredentials(); err != nil {
					log.Warn("credential injection failed", "error", err)
				}

				svc := reason.NewService(cfg.Provider, cfg.DefaultModel, log)

				return ui.Run(cmd.Context(), ui.Options{
					Client:     svc,
					ProviderID: string(cfg.Provider.ID),
					Model:      cfg.DefaultModel,
					HasKey:     config.HasAnyProvider(),
					Log:        log,
				})
			})
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "path to config file")

	cmd.AddCommand(newParseCmd(&cfgPath))
	cmd.AddCommand(newSetupCmd(&cfgPath))

	return cmd
}

func defaultConfigPath() string {
	return paths.ConfigFile()
}

func withConfig(cfgPath *string, fn func(config.Config) error) error {
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	return fn(cfg)
}

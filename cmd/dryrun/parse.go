package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/config"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/flowchart"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/lab"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/logging"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/paths"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/pipe"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/reason"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/ui"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/ui/shared"
)

func newParseCmd(cfgPath *string) *cobra.Command {
	var format string
	var imagePath string

	cmd := &cobra.Command{
		Use:   "parse [description]",
		Short: "Analyze an algorithm and print its flowchart",
		Long: "Runs a single analysis without opening the lab. The algorithm comes\n" +
			"from the arguments, from piped stdin, or from an image file, and the\n" +
			"extracted flowchart prints as styled text, Mermaid, or JSON.",
		Example: "  dryrun parse \"read two numbers and print their sum\"\n" +
			"  cat algorithm.txt | dryrun parse --format json\n" +
			"  dryrun parse --image whiteboard.png > chart.mmd",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(cfgPath, func(cfg config.Config) error {
				var piped string
				if pipe.IsStdinPiped() {
					var err error
					piped, err = pipe.ReadStdin()
					if err != nil {
						return fmt.Errorf("read stdin: %w", err)
					}
				}
				description := assembleDescription(args, piped)
				if description == "" && imagePath == "" {
					return fmt.Errorf("nothing to analyze: pass a description or --image")
				}

				format, err := resolveFormat(format, pipe.IsStdoutPiped())
				if err != nil {
					return err
				}

				log, closeLog, err := logging.New(paths.LogFile(), cfg.LogLevel, cfg.LogFormat)
				if err != nil {
					return err
				}
				defer closeLog()

				if err := config.InjectCredentials(); err != nil {
					log.Warn("credential injection failed", "error", err)
				}

				svc := reason.NewService(cfg.Provider, cfg.DefaultModel, log)

				spinner := ui.NewSpinnerWithType("Analyzing algorithm", shared.SpinnerAnalysis)
				spinner.Start()

				ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
				defer cancel()

				res, err := svc.Parse(ctx, reason.ParseRequest{
					Description: description,
					ImagePath:   imagePath,
				})
				if err != nil {
					spinner.Stop()
					// The fang error handler renders the classified message.
					return err
				}
				spinner.StopWithMessage("Analyzed")

				return printParseResult(cmd, res, format)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, mermaid or json (default text; mermaid when piped)")
	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "analyze a photographed or hand-drawn algorithm")

	return cmd
}

// assembleDescription merges piped stdin with positional arguments. Piped
// text comes first so trailing arguments read as instructions about it.
func assembleDescription(args []string, piped string) string {
	description := strings.TrimSpace(strings.Join(args, " "))
	piped = strings.TrimSpace(piped)
	switch {
	case description == "":
		return piped
	case piped != "":
		return piped + "\n\n" + description
	}
	return description
}

// resolveFormat picks the output format: an explicit flag wins, otherwise
// piped stdout gets mermaid and a terminal gets styled text.
func resolveFormat(explicit string, stdoutPiped bool) (string, error) {
	if explicit == "" {
		if stdoutPiped {
			return "mermaid", nil
		}
		return "text", nil
	}
	switch explicit {
	case "text", "mermaid", "json":
		return explicit, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, mermaid or json)", explicit)
}

func printParseResult(cmd *cobra.Command, res lab.ParseResult, format string) error {
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Fprintln(out, string(data))

	case "mermaid":
		fmt.Fprint(out, flowchart.Mermaid(res.Flowchart, nil))

	default:
		width := 80
		if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
			width = w
		}
		if len(res.Variables) > 0 {
			label := lipgloss.NewStyle().Foreground(shared.ColorPrimary).Bold(true).Render("Inputs:")
			fmt.Fprintf(out, "%s %s\n\n", label, strings.Join(res.Variables, ", "))
		}
		fmt.Fprintln(out, flowchart.Render(res.Flowchart, nil, width))
	}

	return nil
}

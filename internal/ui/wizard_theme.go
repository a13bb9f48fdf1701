package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/ui/shared"
)

// wizardTheme restyles huh's Charm theme onto the lab palette so the setup
// wizard matches the rest of dryrun. Only the field types the wizard uses
// are themed: selects, text inputs, and the confirm buttons.
func wizardTheme() *huh.Theme {
	t := huh.ThemeCharm()

	// Step headers: the group title is the "Step N of 3" line.
	t.Group.Title = lipgloss.NewStyle().
		Foreground(shared.ColorPrimary).
		Bold(true).
		MarginBottom(1).
		PaddingBottom(1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(shared.ColorSubtle)

	t.Group.Description = lipgloss.NewStyle().
		Foreground(shared.ColorTextDim).
		MarginBottom(1).
		PaddingBottom(1)

	t.FieldSeparator = lipgloss.NewStyle().SetString("\n\n")

	// The focused field gets a thick accent rail on the left.
	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(2).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(shared.ColorPrimary)

	t.Focused.Title = lipgloss.NewStyle().
		Foreground(shared.ColorPrimary).
		Bold(true)

	t.Focused.Description = lipgloss.NewStyle().
		Foreground(shared.ColorTextDim)

	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(2).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)

	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(shared.ColorMuted)

	t.Blurred.Description = lipgloss.NewStyle().
		Foreground(shared.ColorSubtle)

	// Provider and model selects share the trace cursor glyph.
	t.Focused.SelectSelector = lipgloss.NewStyle().
		SetString(shared.IconStepCurrent + " ").
		Foreground(shared.ColorPrimary)

	t.Focused.Option = lipgloss.NewStyle().
		Foreground(shared.ColorText)

	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(shared.ColorPrimary).
		Bold(true)

	// Save/Cancel confirm buttons.
	t.Focused.FocusedButton = lipgloss.NewStyle().
		Background(shared.ColorPrimary).
		Foreground(shared.ColorBgSubtle).
		Padding(0, 2).
		Bold(true)

	t.Focused.BlurredButton = lipgloss.NewStyle().
		Background(shared.ColorSubtle).
		Foreground(shared.ColorText).
		Padding(0, 2)

	t.Blurred.FocusedButton = t.Focused.BlurredButton
	t.Blurred.BlurredButton = t.Focused.BlurredButton

	// The API key input.
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(shared.ColorPrimary)

	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(shared.ColorSubtle)

	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(shared.ColorPrimary).
		Bold(true)

	return t
}

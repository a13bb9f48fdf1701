package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/ui/shared"
)

// SetupUI provides styled output for the setup command.
type SetupUI struct {
	out io.Writer
}

// NewSetupUI creates a new setup UI writer.
func NewSetupUI(out io.Writer) *SetupUI {
	return &SetupUI{out: out}
}

// Header prints a styled section header.
func (s *SetupUI) Header(text string) {
	style := lipgloss.NewStyle().
		Foreground(shared.ColorPrimary).
		Bold(true).
		MarginTop(1)
	fmt.Fprintln(s.out, style.Render(text))
}

// Step prints a step description.
func (s *SetupUI) Step(text string) {
	style := lipgloss.NewStyle().
		Foreground(shared.ColorText)
	fmt.Fprintln(s.out, style.Render(text))
}

// Success prints a success message with a check mark.
func (s *SetupUI) Success(text string) {
	icon := lipgloss.NewStyle().Foreground(shared.ColorSuccess).Render(shared.IconSuccess)
	msg := lipgloss.NewStyle().Foreground(shared.ColorText).Render(text)
	fmt.Fprintf(s.out, "  %s %s\n", icon, msg)
}

// SuccessPath prints a success message with a path.
func (s *SetupUI) SuccessPath(text, path string) {
	icon := lipgloss.NewStyle().Foreground(shared.ColorSuccess).Render(shared.IconSuccess)
	msg := lipgloss.NewStyle().Foreground(shared.ColorText).Render(text)
	pathStyle := lipgloss.NewStyle().Foreground(shared.ColorSecondary).Render(path)
	fmt.Fprintf(s.out, "  %s %s %s\n", icon, msg, pathStyle)
}

// Warning prints a warning message.
func (s *SetupUI) Warning(text string) {
	icon := lipgloss.NewStyle().Foreground(shared.ColorTertiary).Render(shared.IconWarning)
	msg := lipgloss.NewStyle().Foreground(shared.ColorTertiary).Render(text)
	fmt.Fprintf(s.out, "  %s %s\n", icon, msg)
}

// Error prints an error message.
func (s *SetupUI) Error(text string) {
	icon := lipgloss.NewStyle().Foreground(shared.ColorError).Render(shared.IconError)
	msg := lipgloss.NewStyle().Foreground(shared.ColorError).Render(text)
	fmt.Fprintf(s.out, "  %s %s\n", icon, msg)
}

// Info prints an indented info message.
func (s *SetupUI) Info(text string) {
	style := lipgloss.NewStyle().Foreground(shared.ColorMuted).MarginLeft(2)
	fmt.Fprintln(s.out, style.Render(text))
}

// Code prints a shell command the user can copy.
func (s *SetupUI) Code(text string) {
	style := lipgloss.NewStyle().
		Foreground(shared.ColorSuccess).
		Background(shared.ColorBgDark).
		Padding(0, 1).
		MarginLeft(4)
	fmt.Fprintln(s.out, style.Render(text))
}

// Complete prints the final completion message.
func (s *SetupUI) Complete(text string) {
	style := lipgloss.NewStyle().
		Foreground(shared.ColorSuccess).
		Bold(true).
		MarginTop(1)
	fmt.Fprintln(s.out, style.Render(shared.IconSuccess+" "+text))
}

// Cancelled prints a cancellation message.
func (s *SetupUI) Cancelled(text string) {
	style := lipgloss.NewStyle().
		Foreground(shared.ColorMuted).
		MarginTop(1)
	fmt.Fprintln(s.out, style.Render(text))
}

// Blank prints a blank line.
func (s *SetupUI) Blank() {
	fmt.Fprintln(s.out)
}

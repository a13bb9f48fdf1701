package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/ui/shared"
)

// StatusBar shows the model in use, the lab phase, a transient note, and
// keyboard hints.
type StatusBar struct {
	width int

	model string
	phase string
	flash string
	hints string
}

// NewStatusBar creates a status bar for the given model id.
func NewStatusBar(model string) *StatusBar {
	return &StatusBar{model: model}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetPhase updates the phase label on the left side.
func (s *StatusBar) SetPhase(phase string) {
	s.phase = phase
}

// SetFlash shows a transient note until cleared.
func (s *StatusBar) SetFlash(note string) {
	s.flash = note
}

// ClearFlash removes the transient note.
func (s *StatusBar) ClearFlash() {
	s.flash = ""
}

// SetHints updates the keyboard hints on the right side.
func (s *StatusBar) SetHints(hints string) {
	s.hints = hints
}

// Render returns the status bar string.
func (s *StatusBar) Render() string {
	if s.width <= 0 {
		s.width = 80
	}

	style := lipgloss.NewStyle().Foreground(shared.ColorMuted)
	highlightStyle := lipgloss.NewStyle().Foreground(shared.ColorPrimary)

	var parts []string
	if s.model != "" {
		parts = append(parts, highlightStyle.Render(shared.IconBullet)+style.Render(" "+s.model))
	}
	if s.phase != "" {
		parts = append(parts, style.Render(s.phase))
	}
	if s.flash != "" {
		flashStyle := lipgloss.NewStyle().Foreground(shared.ColorSuccess)
		parts = append(parts, flashStyle.Render(s.flash))
	}

	left := strings.Join(parts, style.Render(" · "))
	right := style.Render(s.hints)

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	spacing := s.width - leftWidth - rightWidth - 4

	if spacing < 1 {
		return style.Render("  " + s.hints)
	}

	return "  " + left + strings.Repeat(" ", spacing) + right
}

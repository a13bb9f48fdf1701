package flowchart

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/ui/shared"
)

// Border shapes per step kind. The terminal cannot draw true diamonds or
// parallelograms, so corner glyphs lean the boxes instead.
var (
	decisionBorder = lipgloss.Border{
		Top: "─", Bottom: "─", Left: "│", Right: "│",
		TopLeft: "╱", TopRight: "╲", BottomLeft: "╲", BottomRight: "╱",
	}
	ioBorder = lipgloss.Border{
		Top: "─", Bottom: "─", Left: "╱", Right: "╱",
		TopLeft: "╱", TopRight: "╱", BottomLeft: "╱", BottomRight: "╱",
	}
)

var (
	startEndStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(shared.ColorSubtle).
			Foreground(shared.ColorText).
			Padding(0, 1)

	processStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(shared.ColorSubtle).
			Foreground(shared.ColorText).
			Padding(0, 1)

	decisionStyle = lipgloss.NewStyle().
			Border(decisionBorder).
			BorderForeground(shared.ColorSubtle).
			Foreground(shared.ColorText).
			Padding(0, 2)

	ioStyle = lipgloss.NewStyle().
		Border(ioBorder).
		BorderForeground(shared.ColorSubtle).
		Foreground(shared.ColorText).
		Padding(0, 2)

	connectorStyle = lipgloss.NewStyle().
			Foreground(shared.ColorMuted)
)

// Render draws the chart as a vertical chain of shaped boxes joined by
// arrows. Overlay state recolors boxes: replayed steps in the primary accent,
// the current step emphasized in amber. A nil overlay renders a plain chart;
// an overlay id that matches no step highlights nothing.
func Render(steps []Step, overlay *Overlay, maxWidth int) string {
	if len(steps) == 0 {
		return ""
	}

	labelWidth := shared.Clamp(maxWidth-8, 12, 40)

	visited := make(map[int]bool)
	hasCurrent := false
	current := 0
	if overlay != nil {
		for _, id := range overlay.Visited {
			visited[id] = true
		}
		current = overlay.Current
		hasCurrent = true
	}

	parts := make([]string, 0, len(steps)*3)
	for i, s := range steps {
		st := styleFor(s.Kind)
		switch {
		case hasCurrent && s.ID == current:
			st = st.BorderForeground(shared.ColorTertiary).
				Foreground(shared.ColorTextBright).
				Bold(true)
		case visited[s.ID]:
			st = st.BorderForeground(shared.ColorPrimary)
		}

		label := s.Label
		if label == "" {
			label = fmt.Sprintf("step %d", s.ID)
		}
		if lipgloss.Width(label) > labelWidth {
			st = st.Width(labelWidth)
		}

		parts = append(parts, st.Render(label))
		if i < len(steps)-1 {
			parts = append(parts, connectorStyle.Render("│"), connectorStyle.Render(shared.IconArrowDown))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func styleFor(k Kind) lipgloss.Style {
	switch k {
	case KindStart, KindEnd:
		return startEndStyle
	case KindDecision:
		return decisionStyle
	case KindInput, KindOutput:
		return ioStyle
	default:
		return processStyle
	}
}

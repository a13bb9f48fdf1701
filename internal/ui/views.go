package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/lab"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/ui/shared"
)

// View renders the model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}

	var body string
	switch m.state {
	case StateCompose:
		body = m.composeView()
	case StatePickImage:
		body = m.pickerView()
	case StateParsing:
		body = m.busyView("Analyzing your algorithm", shared.SpinnerAnalysis)
	case StateInputs:
		body = m.splitView(m.inputsPanel())
	case StateSimulating:
		body = m.busyView("Dry-running with your inputs", shared.SpinnerSimulation)
	case StateStepping:
		body = m.splitView(m.tracePanel())
	case StateResults:
		body = m.splitView(m.resultsPanel())
	case StateCredential:
		body = m.credentialView()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.headerView(),
		m.noticeView(),
		body,
		m.footerView(),
	)
}

// headerView renders the title bar with a rule out to the right edge.
func (m Model) headerView() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(shared.ColorPrimary).
		Bold(true)
	idStyle := lipgloss.NewStyle().
		Foreground(shared.ColorMuted)
	lineStyle := lipgloss.NewStyle().
		Foreground(shared.ColorSubtle)

	title := titleStyle.Render("Dry Run Lab")
	id := idStyle.Render("lab " + shortID(m.session.ID))

	lineWidth := m.width - lipgloss.Width(title) - lipgloss.Width(id) - 6
	if lineWidth < 0 {
		lineWidth = 0
	}
	return "  " + title + " " + lineStyle.Render(strings.Repeat("─", lineWidth)) + " " + id
}

// noticeView renders the quota banner and any error line. Both persist
// across screens: the quota flag until a call succeeds, the error until
// the next submission.
func (m Model) noticeView() string {
	var lines []string

	if m.session.QuotaExhausted {
		bannerStyle := lipgloss.NewStyle().
			Foreground(shared.ColorTextBright).
			Background(shared.ColorBgAccent).
			Padding(0, 1)
		lines = append(lines, "  "+bannerStyle.Render(
			shared.IconWarning+" Shared quota exhausted. Press ctrl+k to add a personal API key."))
	}

	if m.session.ErrorMsg != "" {
		errStyle := lipgloss.NewStyle().Foreground(shared.ColorError)
		lines = append(lines, "  "+errStyle.Render(shared.IconError+" "+
			ansi.Truncate(m.session.ErrorMsg, max(m.width-6, 20), "…")))
	}

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// composeView renders the describe screen: the mode line, the description
// textarea, and the picked image in image mode.
func (m Model) composeView() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(shared.ColorSecondary).
		Bold(true)
	dimStyle := lipgloss.NewStyle().
		Foreground(shared.ColorMuted)

	var sb strings.Builder
	sb.WriteString("\n")

	if m.session.Mode == lab.ModeImage {
		sb.WriteString("  " + labelStyle.Render("Algorithm photo") + "\n")
		if m.session.ImagePath != "" {
			pathStyle := lipgloss.NewStyle().Foreground(shared.ColorSuccess)
			sb.WriteString("  " + pathStyle.Render(shared.IconSuccess+" "+
				ansi.Truncate(m.session.ImagePath, max(m.width-8, 20), "…")) + "\n")
		} else {
			sb.WriteString("  " + dimStyle.Render("No image yet. Press ctrl+o to pick one.") + "\n")
		}
		sb.WriteString("\n")
		sb.WriteString("  " + labelStyle.Render("Note for the tutor") + dimStyle.Render(" (optional)") + "\n")
	} else {
		sb.WriteString("  " + labelStyle.Render("Describe your algorithm") + "\n")
	}

	taStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(shared.ColorPrimary).
		Padding(0, 1).
		MarginLeft(2)
	sb.WriteString(taStyle.Render(m.textarea.View()))
	sb.WriteString("\n")

	return sb.String()
}

// pickerView renders the image picker screen.
func (m Model) pickerView() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(shared.ColorSecondary).
		Bold(true)
	dirStyle := lipgloss.NewStyle().
		Foreground(shared.ColorMuted)

	var sb strings.Builder
	sb.WriteString("\n  " + titleStyle.Render("Pick the algorithm image") + "\n")
	sb.WriteString("  " + dirStyle.Render(ansi.Truncate(m.picker.CurrentDirectory, max(m.width-6, 20), "…")) + "\n\n")
	for _, line := range strings.Split(m.picker.View(), "\n") {
		sb.WriteString("  " + line + "\n")
	}
	return sb.String()
}

// busyView shows the spinner while a remote call is in flight, keeping the
// flowchart on screen when one exists.
func (m Model) busyView(message string, kind shared.SpinnerType) string {
	spinnerStyle := lipgloss.NewStyle().
		Foreground(shared.ColorPrimary)
	textStyle := lipgloss.NewStyle().
		Foreground(shared.ColorMuted).
		Italic(true)

	frames := shared.GetSpinnerFrames(kind)
	line := "\n  " + spinnerStyle.Render(frames[m.spinnerFrame%len(frames)]) + " " + textStyle.Render(message+"...") + "\n"

	if len(m.session.Chart) == 0 {
		return line
	}
	return line + "\n" + m.chartPane()
}

// splitView lays the flowchart beside a side panel.
func (m Model) splitView(panel string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, m.chartPane(), " ", panel)
}

// chartPane renders the flowchart viewport with a scroll marker.
func (m Model) chartPane() string {
	chartWidth, _ := m.paneWidths()

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(shared.ColorSubtle).
		Width(chartWidth)

	view := m.viewport.View()
	if m.viewport.TotalLineCount() > m.viewport.VisibleLineCount() {
		pctStyle := lipgloss.NewStyle().Foreground(shared.ColorMuted)
		view += "\n" + pctStyle.Render(fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100))
	}
	return borderStyle.Render(view)
}

// inputsPanel renders one labeled field per variable.
func (m Model) inputsPanel() string {
	_, panelWidth := m.paneWidths()

	titleStyle := lipgloss.NewStyle().
		Foreground(shared.ColorSecondary).
		Bold(true)
	nameStyle := lipgloss.NewStyle().
		Foreground(shared.ColorText)
	focusStyle := lipgloss.NewStyle().
		Foreground(shared.ColorPrimary).
		Bold(true)
	dimStyle := lipgloss.NewStyle().
		Foreground(shared.ColorMuted)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Inputs") + "\n\n")

	if len(m.session.Variables) == 0 {
		sb.WriteString(dimStyle.Render("This algorithm takes no input.") + "\n")
		sb.WriteString(dimStyle.Render("Press ctrl+s to start the dry run.") + "\n")
	} else {
		for i, name := range m.session.Variables {
			marker := "  "
			style := nameStyle
			if i == m.focusIdx {
				marker = focusStyle.Render(shared.IconStepCurrent) + " "
				style = focusStyle
			}
			sb.WriteString(marker + style.Render(name) + "\n")
			if i < len(m.inputs) {
				sb.WriteString("    " + m.inputs[i].View() + "\n")
			}
		}
		sb.WriteString("\n" + dimStyle.Render("Fill every value, then ctrl+s.") + "\n")
	}

	return lipgloss.NewStyle().Width(panelWidth).Render(sb.String())
}

// tracePanel renders the current trace step and the variable table.
func (m Model) tracePanel() string {
	_, panelWidth := m.paneWidths()

	titleStyle := lipgloss.NewStyle().
		Foreground(shared.ColorSecondary).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(shared.ColorTextBright)
	explainStyle := lipgloss.NewStyle().
		Foreground(shared.ColorTextDim).
		Italic(true)
	dimStyle := lipgloss.NewStyle().
		Foreground(shared.ColorMuted)

	var sb strings.Builder

	step, ok := m.session.CurrentStep()
	if !ok {
		sb.WriteString(titleStyle.Render("Dry run") + "\n\n")
		sb.WriteString(dimStyle.Render("The trace is empty. Press enter for the verdict.") + "\n")
		return lipgloss.NewStyle().Width(panelWidth).Render(sb.String())
	}

	n := len(m.session.Outcome.Trace)
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Step %d of %d", m.session.Cursor+1, n)) + "\n\n")
	sb.WriteString(descStyle.Render(wrap(step.Description, panelWidth-2)) + "\n")
	if step.Explanation != "" {
		sb.WriteString(explainStyle.Render(wrap(step.Explanation, panelWidth-2)) + "\n")
	}

	sb.WriteString("\n" + m.variableTable(panelWidth))

	sb.WriteString("\n" + m.progressDots(n) + "\n")

	return lipgloss.NewStyle().Width(panelWidth).Render(sb.String())
}

// variableTable lists each variable with its value at the current step.
// A value that changed since the previous step is called out.
func (m Model) variableTable(panelWidth int) string {
	nameStyle := lipgloss.NewStyle().
		Foreground(shared.ColorMuted)
	valueStyle := lipgloss.NewStyle().
		Foreground(shared.ColorText)
	changedStyle := lipgloss.NewStyle().
		Foreground(shared.ColorTertiary).
		Bold(true)

	names := m.visibleVariables()
	if len(names) == 0 {
		return ""
	}

	nameWidth := 0
	for _, name := range names {
		if w := lipgloss.Width(name); w > nameWidth {
			nameWidth = w
		}
	}

	var sb strings.Builder
	for _, name := range names {
		value := ansi.Truncate(m.session.DisplayValue(name), max(panelWidth-nameWidth-6, 8), "…")
		vs := valueStyle
		suffix := ""
		if m.session.Changed(name) {
			vs = changedStyle
			suffix = changedStyle.Render(" " + shared.IconArrowRight)
		}
		sb.WriteString(fmt.Sprintf("%s = %s%s\n",
			nameStyle.Render(padRight(name, nameWidth)), vs.Render(value), suffix))
	}
	return sb.String()
}

// visibleVariables merges the declared inputs with variables the trace
// introduced (loop counters, accumulators), inputs first.
func (m Model) visibleVariables() []string {
	names := make([]string, 0, len(m.session.Variables))
	seen := make(map[string]bool, len(m.session.Variables))
	for _, name := range m.session.Variables {
		names = append(names, name)
		seen[name] = true
	}
	if step, ok := m.session.CurrentStep(); ok {
		var extras []string
		for name := range step.VariableState {
			if !seen[name] {
				extras = append(extras, name)
			}
		}
		sort.Strings(extras)
		names = append(names, extras...)
	}
	return names
}

// progressDots draws one dot per trace step, filled up to the cursor.
func (m Model) progressDots(n int) string {
	doneStyle := lipgloss.NewStyle().Foreground(shared.ColorPrimary)
	currentStyle := lipgloss.NewStyle().Foreground(shared.ColorTertiary)
	pendingStyle := lipgloss.NewStyle().Foreground(shared.ColorSubtle)

	if n > 30 {
		// Too many steps for dots; fall back to a counter.
		return doneStyle.Render(fmt.Sprintf("%d/%d", m.session.Cursor+1, n))
	}

	var sb strings.Builder
	for i := range n {
		switch {
		case i < m.session.Cursor:
			sb.WriteString(doneStyle.Render(shared.IconStepDone))
		case i == m.session.Cursor:
			sb.WriteString(currentStyle.Render(shared.IconStepCurrent))
		default:
			sb.WriteString(pendingStyle.Render(shared.IconStepPending))
		}
		sb.WriteString(" ")
	}
	return strings.TrimRight(sb.String(), " ")
}

// resultsPanel renders the verdict once the trace has been walked.
func (m Model) resultsPanel() string {
	_, panelWidth := m.paneWidths()

	titleStyle := lipgloss.NewStyle().
		Foreground(shared.ColorSecondary).
		Bold(true)
	labelStyle := lipgloss.NewStyle().
		Foreground(shared.ColorMuted)
	valueStyle := lipgloss.NewStyle().
		Foreground(shared.ColorText)

	out := m.session.Outcome
	if out == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Results") + "\n\n")

	if out.IsCorrect {
		okStyle := lipgloss.NewStyle().Foreground(shared.ColorSuccess).Bold(true)
		sb.WriteString(okStyle.Render(shared.IconSuccess+" The algorithm is correct") + "\n")
	} else {
		badStyle := lipgloss.NewStyle().Foreground(shared.ColorError).Bold(true)
		sb.WriteString(badStyle.Render(shared.IconError+" The algorithm has a mistake") + "\n")
	}

	grade := lab.Grade(out.AccuracyScore)
	gradeStyle := lipgloss.NewStyle().
		Foreground(shared.ColorTextBright).
		Background(gradeColor(grade)).
		Padding(0, 1).
		Bold(true)
	sb.WriteString("\n" + gradeStyle.Render("Grade "+grade) + " " +
		labelStyle.Render(fmt.Sprintf("accuracy %.0f/100", out.AccuracyScore)) + "\n\n")

	sb.WriteString(labelStyle.Render("expected ") + valueStyle.Render(ansi.Truncate(out.ExpectedOutput, max(panelWidth-12, 8), "…")) + "\n")
	sb.WriteString(labelStyle.Render("actual   ") + valueStyle.Render(ansi.Truncate(out.ActualOutput, max(panelWidth-12, 8), "…")) + "\n")

	if out.MistakeExplanation != "" {
		sb.WriteString("\n" + renderMarkdown(out.MistakeExplanation, panelWidth-2) + "\n")
	}

	return lipgloss.NewStyle().Width(panelWidth).Render(sb.String())
}

// credentialView renders the API key prompt as a centered box.
func (m Model) credentialView() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(shared.ColorPrimary).
		Bold(true)
	dimStyle := lipgloss.NewStyle().
		Foreground(shared.ColorMuted)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(shared.ColorPrimary).
		Padding(1, 2)

	content := titleStyle.Render("Add an API key") + "\n\n" +
		dimStyle.Render("Provider: "+m.providerID) + "\n\n" +
		m.credInput.View() + "\n\n" +
		dimStyle.Render("The key is stored in your config directory, never sent anywhere else.")

	box := boxStyle.Render(content)
	return "\n" + lipgloss.PlaceHorizontal(max(m.width, lipgloss.Width(box)), lipgloss.Center, box) + "\n"
}

// footerView renders the status bar.
func (m Model) footerView() string {
	return m.statusBar.Render()
}

// renderMarkdown renders markdown through the cached glamour renderer,
// falling back to the raw text when rendering fails.
func renderMarkdown(content string, width int) string {
	r := shared.GetMarkdownRenderer(width)
	if r == nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}

// gradeColor picks the badge background for a letter grade.
func gradeColor(grade string) lipgloss.Color {
	switch grade {
	case "A", "B":
		return shared.ColorSuccess
	case "C", "D":
		return shared.ColorTertiary
	default:
		return shared.ColorError
	}
}

// wrap breaks text into lines no wider than width, on spaces.
func wrap(text string, width int) string {
	if width < 8 {
		width = 8
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		w := lipgloss.Width(word)
		if lineLen > 0 && lineLen+1+w > width {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += w
	}
	return sb.String()
}

func padRight(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

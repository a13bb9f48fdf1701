package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/ui/shared"
)

// wizardKeyMap implements help.KeyMap for the wizard's pinned help bar.
type wizardKeyMap struct {
	Navigate key.Binding
	Select   key.Binding
	Skip     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k wizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Navigate, k.Select, k.Skip, k.Back, k.Quit}
}

func (k wizardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var wizardKeys = wizardKeyMap{
	Navigate: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "navigate")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Skip:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
	Back:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "back")),
	Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

// wizardHelpHeight is the space reserved for the help bar.
const wizardHelpHeight = 2

// wizardForm runs the setup form in the alternate screen with a help bar
// pinned to the bottom edge, matching the lab's own layout.
type wizardForm struct {
	form   *huh.Form
	help   help.Model
	width  int
	height int
	ready  bool
}

func newWizardForm(form *huh.Form) *wizardForm {
	return &wizardForm{form: form, help: help.New()}
}

func (w *wizardForm) Init() tea.Cmd {
	return w.form.Init()
}

func (w *wizardForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = size.Width
		w.height = size.Height
		w.ready = true

		// One cell of padding all around, plus the reserved help rows.
		inner := tea.WindowSizeMsg{
			Width:  size.Width - 2,
			Height: size.Height - 2 - wizardHelpHeight,
		}
		w.help.Width = inner.Width
		w.form.WithWidth(inner.Width)
		w.form.WithHeight(inner.Height)
		_, cmd := w.form.Update(inner)
		return w, cmd
	}

	_, cmd := w.form.Update(msg)
	if w.form.State == huh.StateCompleted || w.form.State == huh.StateAborted {
		return w, tea.Quit
	}
	return w, cmd
}

func (w *wizardForm) View() string {
	if !w.ready {
		return "Loading..."
	}

	formView := w.form.View()
	helpView := lipgloss.NewStyle().
		Foreground(shared.ColorMuted).
		Padding(0, 1).
		Render(w.help.View(wizardKeys))

	gap := w.height - 2 - lipgloss.Height(formView) - lipgloss.Height(helpView)
	if gap < 0 {
		gap = 0
	}

	return lipgloss.NewStyle().Padding(1, 1).Render(
		formView + strings.Repeat("\n", gap+1) + helpView)
}

// Run blocks until the form completes or the user aborts.
func (w *wizardForm) Run() error {
	_, err := tea.NewProgram(w, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// State exposes the wrapped form's completion state.
func (w *wizardForm) State() huh.FormState {
	return w.form.State
}

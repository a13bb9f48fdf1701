// Package ui is the full-screen lab interface built on Bubble Tea. One
// model drives the whole flow: describe an algorithm, analyze it into a
// flowchart, fill in inputs, dry-run it, and walk the trace step by step.
package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/editor"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/config"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/flowchart"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/lab"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/logging"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/reason"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/ui/shared"
)

// State is the current screen of the lab.
type State int

const (
	// StateCompose means the user is describing the algorithm.
	StateCompose State = iota
	// StatePickImage means the image picker is open.
	StatePickImage
	// StateParsing means the analysis call is in flight.
	StateParsing
	// StateInputs means the user is filling variable values.
	StateInputs
	// StateSimulating means the dry-run call is in flight.
	StateSimulating
	// StateStepping means the user is walking the trace.
	StateStepping
	// StateResults means the verdict is on screen.
	StateResults
	// StateCredential means the API key prompt is open.
	StateCredential
)

// Options configures the lab TUI.
type Options struct {
	Client     reason.Client
	ProviderID string
	Model      string
	HasKey     bool
	Log        *slog.Logger
}

// Model is the Bubble Tea model for the lab.
type Model struct {
	client     reason.Client
	providerID string
	modelID    string
	log        *slog.Logger
	ctx        context.Context

	session lab.Session
	prev    lab.Session // state to restore when a remote call fails

	state     State
	prevState State // where the credential prompt returns to

	textarea  textarea.Model
	inputs    []textinput.Model
	focusIdx  int
	viewport  viewport.Model
	picker    filepicker.Model
	credInput textinput.Model
	statusBar *StatusBar
	keyMap    KeyMap

	credPrompts int // credential prompt openings, automatic ones included

	spinnerFrame int
	width        int
	height       int
	ready        bool
}

// New creates the lab model.
func New(opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Describe your algorithm, e.g. \"read two numbers a and b, print their sum\"..."
	ta.Focus()
	ta.Prompt = "> "
	ta.CharLimit = 0
	ta.SetHeight(6)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	ci := textinput.New()
	ci.Placeholder = "Paste your API key"
	ci.Prompt = "> "
	ci.EchoMode = textinput.EchoPassword
	ci.EchoCharacter = '•'
	ci.CharLimit = 256

	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}

	m := Model{
		client:     opts.Client,
		providerID: opts.ProviderID,
		modelID:    opts.Model,
		log:        log,
		ctx:        context.Background(),
		session:    lab.NewSession(),
		state:      StateCompose,
		textarea:   ta,
		picker:     newImagePicker(),
		credInput:  ci,
		statusBar:  NewStatusBar(opts.Model),
		keyMap:     DefaultKeyMap(),
	}
	if !opts.HasKey {
		m = m.openCredentialPrompt()
	}
	m.refreshHints()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.handleResize(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if m.state == StateParsing || m.state == StateSimulating {
			m.spinnerFrame++
		}
		return m, m.tick()

	case ParseDoneMsg:
		return m.handleParseDone(msg)

	case SimulateDoneMsg:
		return m.handleSimulateDone(msg)

	case EditorDoneMsg:
		m.textarea.SetValue(msg.Text)
		m.textarea.CursorEnd()
		m.session = m.session.WithDescription(msg.Text)
		return m, nil

	case flashClearMsg:
		m.statusBar.ClearFlash()
		return m, nil
	}

	return m.updateComponents(msg)
}

// updateComponents routes a message to the component the current screen
// owns.
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch m.state {
	case StateCompose:
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.session = m.session.WithDescription(m.textarea.Value())

	case StatePickImage:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)
		if ok, path := m.picker.DidSelectFile(msg); ok {
			m.session = m.session.WithImage(path)
			m.state = StateCompose
			m.refreshHints()
		}

	case StateInputs:
		if m.focusIdx < len(m.inputs) {
			var cmd tea.Cmd
			m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
			cmds = append(cmds, cmd)
			m.session = m.session.SetInput(m.session.Variables[m.focusIdx], m.inputs[m.focusIdx].Value())
		}

	case StateStepping, StateResults:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case StateCredential:
		var cmd tea.Cmd
		m.credInput, cmd = m.credInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keyMap.NewLab):
		return m.resetLab()
	}

	switch m.state {
	case StateCompose:
		return m.handleComposeKey(msg)
	case StatePickImage:
		if msg.Type == tea.KeyEsc {
			m.state = StateCompose
			m.refreshHints()
			return m, nil
		}
		return m.updateComponents(msg)
	case StateInputs:
		return m.handleInputsKey(msg)
	case StateStepping:
		return m.handleSteppingKey(msg)
	case StateResults:
		return m.handleResultsKey(msg)
	case StateCredential:
		return m.handleCredentialKey(msg)
	case StateParsing, StateSimulating:
		// Triggering controls are disabled while a call is in flight.
		return m, nil
	}
	return m, nil
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()
	case key.Matches(msg, m.keyMap.ToggleMode):
		if m.session.Mode == lab.ModeText {
			m.session = m.session.WithMode(lab.ModeImage)
		} else {
			m.session = m.session.WithMode(lab.ModeText)
		}
		m.refreshHints()
		return m, nil
	case key.Matches(msg, m.keyMap.PickImage):
		if m.session.Mode != lab.ModeImage {
			return m, nil
		}
		m.state = StatePickImage
		m.refreshHints()
		return m, m.picker.Init()
	case key.Matches(msg, m.keyMap.Editor):
		return m.openEditor()
	case key.Matches(msg, m.keyMap.Credential):
		return m.openCredentialPrompt(), nil
	}
	return m.updateComponents(msg)
}

func (m Model) handleInputsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.startSimulation()
	case key.Matches(msg, m.keyMap.Credential):
		return m.openCredentialPrompt(), nil
	case key.Matches(msg, m.keyMap.NextField):
		return m.cycleFocus(1), nil
	case key.Matches(msg, m.keyMap.PrevField):
		return m.cycleFocus(-1), nil
	}
	if msg.Type == tea.KeyEsc {
		// Back to the description; the chart survives until re-analysis.
		m.state = StateCompose
		m.textarea.Focus()
		m.refreshHints()
		return m, textarea.Blink
	}
	return m.updateComponents(msg)
}

func (m Model) handleSteppingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Next):
		m.session = m.session.AdvanceStep()
		if m.session.ResultsRevealed {
			m.state = StateResults
		}
		m.refreshHints()
		m.syncViewport()
		return m, nil
	case key.Matches(msg, m.keyMap.Export):
		return m.exportMermaid()
	case key.Matches(msg, m.keyMap.Credential):
		return m.openCredentialPrompt(), nil
	}
	return m.updateComponents(msg)
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Export):
		return m.exportMermaid()
	case key.Matches(msg, m.keyMap.Save):
		return m.saveTranscript()
	case key.Matches(msg, m.keyMap.Credential):
		return m.openCredentialPrompt(), nil
	}
	return m.updateComponents(msg)
}

func (m Model) handleCredentialKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = m.prevState
		m.refreshHints()
		return m, nil
	case tea.KeyEnter:
		keyVal := strings.TrimSpace(m.credInput.Value())
		if keyVal == "" {
			return m, nil
		}
		if err := config.StoreCredential(m.providerID, keyVal); err != nil {
			m.log.Warn("store credential failed", "error", err)
			m.statusBar.SetFlash("Could not save the key")
		} else {
			m.statusBar.SetFlash("API key saved")
		}
		m.state = m.prevState
		m.refreshHints()
		return m, clearFlashLater()
	}
	return m.updateComponents(msg)
}

// submit starts the analysis. Nothing happens while the description or
// image is missing.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.session = m.session.WithDescription(m.textarea.Value())
	if !m.session.CanSubmit() {
		return m, nil
	}
	m.prev = m.session
	m.session = m.session.BeginParse()
	m.state = StateParsing
	m.refreshHints()
	return m, m.parseCmd()
}

func (m Model) parseCmd() tea.Cmd {
	req := reason.ParseRequest{SessionID: m.session.ID, Description: m.session.Description}
	if m.session.Mode == lab.ModeImage {
		req.ImagePath = m.session.ImagePath
	}
	client, ctx, id := m.client, m.ctx, m.session.ID
	return func() tea.Msg {
		res, err := client.Parse(ctx, req)
		return ParseDoneMsg{SessionID: id, Result: res, Err: err}
	}
}

func (m Model) handleParseDone(msg ParseDoneMsg) (tea.Model, tea.Cmd) {
	if msg.SessionID != m.session.ID {
		// The lab was reset while the call was in flight.
		return m, nil
	}
	if msg.Err != nil {
		return m.handleRemoteFailure(msg.Err)
	}
	m.session = m.session.ApplyParse(msg.Result)
	m.buildInputs()
	m.state = StateInputs
	m.refreshHints()
	m.syncViewport()
	return m, textinput.Blink
}

// buildInputs creates one text field per reported variable.
func (m *Model) buildInputs() {
	m.inputs = make([]textinput.Model, len(m.session.Variables))
	for i, name := range m.session.Variables {
		ti := textinput.New()
		ti.Placeholder = name
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = 24
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m Model) cycleFocus(delta int) Model {
	n := len(m.inputs)
	if n == 0 {
		return m
	}
	m.inputs[m.focusIdx].Blur()
	m.focusIdx = (m.focusIdx + delta + n) % n
	m.inputs[m.focusIdx].Focus()
	return m
}

// startSimulation validates inputs and issues the dry-run call.
func (m Model) startSimulation() (tea.Model, tea.Cmd) {
	if missing := m.session.UnfilledVariables(); len(missing) > 0 {
		m.session = m.session.WithValidationError("Fill in a value for: " + strings.Join(missing, ", "))
		return m, nil
	}
	m.prev = m.session
	m.session = m.session.BeginSimulate()
	m.state = StateSimulating
	m.refreshHints()
	return m, m.simulateCmd()
}

func (m Model) simulateCmd() tea.Cmd {
	req := reason.SimulateRequest{
		SessionID:   m.session.ID,
		Description: m.session.Description,
		Flowchart:   m.session.Chart,
		Variables:   m.session.Variables,
		Inputs:      m.session.Inputs,
	}
	if m.session.Mode == lab.ModeImage {
		req.ImagePath = m.session.ImagePath
	}
	client, ctx, id := m.client, m.ctx, m.session.ID
	return func() tea.Msg {
		out, err := client.Simulate(ctx, req)
		return SimulateDoneMsg{SessionID: id, Outcome: out, Err: err}
	}
}

func (m Model) handleSimulateDone(msg SimulateDoneMsg) (tea.Model, tea.Cmd) {
	if msg.SessionID != m.session.ID {
		return m, nil
	}
	if msg.Err != nil {
		return m.handleRemoteFailure(msg.Err)
	}
	m.session = m.session.ApplySimulate(msg.Outcome)
	m.state = StateStepping
	m.refreshHints()
	m.syncViewport()
	m.viewport.GotoTop()
	return m, nil
}

// handleRemoteFailure restores the pre-call session, surfaces the
// message, and opens the key prompt for quota and credential problems.
func (m Model) handleRemoteFailure(err error) (tea.Model, tea.Cmd) {
	kind := reason.Kind(err)
	m.session = m.prev.WithFailure(reason.UserMessage(err), kind == reason.FailureQuota)
	m.state = stateFor(m.session)
	m.refreshHints()
	m.syncViewport()
	if kind == reason.FailureQuota || kind == reason.FailureCredential {
		return m.openCredentialPrompt(), nil
	}
	return m, nil
}

// stateFor derives the screen to show from the session's shape.
func stateFor(s lab.Session) State {
	switch {
	case s.Outcome != nil && s.ResultsRevealed:
		return StateResults
	case s.Outcome != nil:
		return StateStepping
	case s.Chart != nil:
		return StateInputs
	default:
		return StateCompose
	}
}

func (m Model) openCredentialPrompt() Model {
	if m.state == StateCredential {
		return m
	}
	m.credPrompts++
	m.prevState = m.state
	m.state = StateCredential
	m.credInput.SetValue("")
	m.credInput.Focus()
	m.refreshHints()
	return m
}

func (m Model) resetLab() (tea.Model, tea.Cmd) {
	m.session = m.session.Reset()
	m.prev = lab.Session{}
	m.inputs = nil
	m.focusIdx = 0
	m.textarea.Reset()
	m.textarea.Focus()
	m.state = StateCompose
	m.refreshHints()
	m.syncViewport()
	return m, textarea.Blink
}

// openEditor edits the description in the user's $EDITOR.
func (m Model) openEditor() (tea.Model, tea.Cmd) {
	tmpfile, err := os.CreateTemp("", "dryrun_*.md")
	if err != nil {
		m.statusBar.SetFlash("Could not open the editor")
		return m, clearFlashLater()
	}
	defer tmpfile.Close()

	if _, err := tmpfile.WriteString(m.textarea.Value()); err != nil {
		m.statusBar.SetFlash("Could not open the editor")
		return m, clearFlashLater()
	}

	cmd, err := editor.Command("dryrun", tmpfile.Name())
	if err != nil {
		m.statusBar.SetFlash("No editor available")
		return m, clearFlashLater()
	}

	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return nil
		}
		content, err := os.ReadFile(tmpfile.Name())
		if err != nil {
			return nil
		}
		os.Remove(tmpfile.Name())
		return EditorDoneMsg{Text: strings.TrimSpace(string(content))}
	})
}

// exportMermaid writes the flowchart, overlay included, next to the
// user's working directory.
func (m Model) exportMermaid() (tea.Model, tea.Cmd) {
	name := fmt.Sprintf("dryrun-%s.mmd", shortID(m.session.ID))
	data := flowchart.Mermaid(m.session.Chart, m.session.Overlay())
	if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
		m.log.Warn("mermaid export failed", "error", err)
		m.statusBar.SetFlash("Export failed")
	} else {
		m.statusBar.SetFlash("Saved " + name)
	}
	return m, clearFlashLater()
}

// saveTranscript writes the whole session, trace and verdict included,
// as JSON.
func (m Model) saveTranscript() (tea.Model, tea.Cmd) {
	name := fmt.Sprintf("dryrun-%s.json", shortID(m.session.ID))
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		m.statusBar.SetFlash("Save failed")
		return m, clearFlashLater()
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		m.log.Warn("transcript save failed", "error", err)
		m.statusBar.SetFlash("Save failed")
	} else {
		m.statusBar.SetFlash("Saved " + name)
	}
	return m, clearFlashLater()
}

func clearFlashLater() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return flashClearMsg{}
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// handleResize adjusts layout when the window size changes.
func (m Model) handleResize() Model {
	m.statusBar.SetWidth(m.width)
	m.textarea.SetWidth(min(m.width-6, 100))
	m.credInput.Width = min(m.width-10, 64)
	m.picker.Height = shared.Clamp(m.height-12, 5, 16)

	chartWidth, _ := m.paneWidths()
	contentHeight := m.height - 5
	if contentHeight < 3 {
		contentHeight = 3
	}
	if !m.ready {
		m.viewport = viewport.New(chartWidth, contentHeight)
		m.viewport.MouseWheelEnabled = true
		m.viewport.MouseWheelDelta = 3
		m.ready = true
	} else {
		m.viewport.Width = chartWidth
		m.viewport.Height = contentHeight
	}
	m.syncViewport()
	return m
}

// paneWidths splits the window between the flowchart and the side panel.
func (m Model) paneWidths() (chart, panel int) {
	w := m.width
	if w <= 0 {
		w = 80
	}
	chart = w * 55 / 100
	if chart < 30 {
		chart = min(30, w-2)
	}
	panel = w - chart - 4
	if panel < 20 {
		panel = 20
	}
	return chart, panel
}

// syncViewport re-renders the flowchart into the scrollable pane.
func (m *Model) syncViewport() {
	if !m.ready || len(m.session.Chart) == 0 {
		return
	}
	m.viewport.SetContent(flowchart.Render(m.session.Chart, m.session.Overlay(), m.viewport.Width-2))
}

// refreshHints updates the status bar for the current screen.
func (m *Model) refreshHints() {
	var phase, hints string
	switch m.state {
	case StateCompose:
		phase = "describe"
		if m.session.Mode == lab.ModeImage {
			hints = "ctrl+o pick image · ctrl+t text mode · ctrl+s analyze · ctrl+c quit"
		} else {
			hints = "ctrl+s analyze · ctrl+e editor · ctrl+t image mode · ctrl+c quit"
		}
	case StatePickImage:
		phase = "pick image"
		hints = "enter select · esc back"
	case StateParsing:
		phase = "analyzing"
		hints = "working"
	case StateInputs:
		phase = "inputs"
		hints = "tab next field · ctrl+s run · esc edit description · ctrl+c quit"
	case StateSimulating:
		phase = "simulating"
		hints = "working"
	case StateStepping:
		if n := m.traceLen(); n > 0 {
			phase = fmt.Sprintf("step %d/%d", m.session.Cursor+1, n)
		} else {
			phase = "stepping"
		}
		hints = "enter next step · m export chart · ctrl+n new lab · ctrl+c quit"
	case StateResults:
		phase = "results"
		hints = "s save transcript · m export chart · ctrl+n new lab · ctrl+c quit"
	case StateCredential:
		phase = "api key"
		hints = "enter save · esc cancel"
	}
	m.statusBar.SetPhase(phase)
	m.statusBar.SetHints(hints)
}

func (m Model) traceLen() int {
	if m.session.Outcome == nil {
		return 0
	}
	return len(m.session.Outcome.Trace)
}

// Run starts the lab TUI and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	m.ctx = ctx

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

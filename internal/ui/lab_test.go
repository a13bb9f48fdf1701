package ui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/config"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/flowchart"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/lab"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/reason"
)

// fakeClient records calls and returns canned answers.
type fakeClient struct {
	parseCalls    int
	simulateCalls int
	lastParse     reason.ParseRequest
	lastSimulate  reason.SimulateRequest

	parseResult lab.ParseResult
	parseErr    error
	simulateOut lab.SimulationOutcome
	simulateErr error
}

func (f *fakeClient) Parse(_ context.Context, req reason.ParseRequest) (lab.ParseResult, error) {
	f.parseCalls++
	f.lastParse = req
	return f.parseResult, f.parseErr
}

func (f *fakeClient) Simulate(_ context.Context, req reason.SimulateRequest) (lab.SimulationOutcome, error) {
	f.simulateCalls++
	f.lastSimulate = req
	return f.simulateOut, f.simulateErr
}

func sumParseResult() lab.ParseResult {
	return lab.ParseResult{
		Variables: []string{"a", "b"},
		Flowchart: []flowchart.Step{
			{ID: 1, Kind: flowchart.KindStart, Label: "Start"},
			{ID: 2, Kind: flowchart.KindInput, Label: "Read a and b"},
			{ID: 3, Kind: flowchart.KindProcess, Label: "sum = a + b"},
			{ID: 4, Kind: flowchart.KindOutput, Label: "Print sum"},
			{ID: 5, Kind: flowchart.KindEnd, Label: "End"},
		},
	}
}

func sumOutcome() lab.SimulationOutcome {
	return lab.SimulationOutcome{
		Trace: []lab.TraceStep{
			{SequenceNumber: 1, Description: "Read a", VariableState: map[string]string{"a": "2"}, FlowchartStepID: 2},
			{SequenceNumber: 2, Description: "Read b", VariableState: map[string]string{"a": "2", "b": "3"}, FlowchartStepID: 2},
			{SequenceNumber: 3, Description: "Compute sum", VariableState: map[string]string{"a": "2", "b": "3", "sum": "5"}, FlowchartStepID: 3},
			{SequenceNumber: 4, Description: "Print sum", VariableState: map[string]string{"a": "2", "b": "3", "sum": "5"}, FlowchartStepID: 4},
		},
		IsCorrect:      true,
		AccuracyScore:  100,
		ExpectedOutput: "5",
		ActualOutput:   "5",
	}
}

func newTestModel(t *testing.T, client reason.Client) Model {
	t.Helper()
	m := New(Options{Client: client, ProviderID: "gemini", Model: "test-model", HasKey: true})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m, cmd
}

// parseSum drives a model through a successful analysis of the sum
// algorithm and returns it in the inputs state.
func parseSum(t *testing.T, m Model, client *fakeClient) Model {
	t.Helper()
	client.parseResult = sumParseResult()

	m, cmd := press(t, m, "read two numbers and print their sum", "ctrl+s")
	if m.state != StateParsing {
		t.Fatalf("state after submit = %v, want StateParsing", m.state)
	}
	if cmd == nil {
		t.Fatal("submit returned no command")
	}

	updated, _ := m.Update(cmd())
	m = updated.(Model)
	if m.state != StateInputs {
		t.Fatalf("state after parse = %v, want StateInputs", m.state)
	}
	return m
}

func TestSubmitRequiresDescription(t *testing.T) {
	client := &fakeClient{}
	m := newTestModel(t, client)

	m, cmd := press(t, m, "ctrl+s")
	if client.parseCalls != 0 {
		t.Errorf("parse calls = %d, want 0 for a blank description", client.parseCalls)
	}
	if cmd != nil {
		t.Error("blank submit should not produce a command")
	}
	if m.state != StateCompose {
		t.Errorf("state = %v, want StateCompose", m.state)
	}
}

func TestSubmitIssuesExactlyOneParseCall(t *testing.T) {
	client := &fakeClient{parseResult: sumParseResult()}
	m := newTestModel(t, client)

	m, cmd := press(t, m, "read two numbers and print their sum", "ctrl+s")
	if cmd == nil {
		t.Fatal("submit returned no command")
	}

	// Triggering keys are dead while the call is in flight.
	m, extra := press(t, m, "ctrl+s")
	if extra != nil {
		t.Error("submit during parsing should be ignored")
	}

	msg := cmd()
	if client.parseCalls != 1 {
		t.Fatalf("parse calls = %d, want 1", client.parseCalls)
	}
	if !strings.Contains(client.lastParse.Description, "their sum") {
		t.Errorf("parse request description = %q, want the typed text", client.lastParse.Description)
	}

	updated, _ := m.Update(msg)
	m = updated.(Model)
	if m.state != StateInputs {
		t.Fatalf("state = %v, want StateInputs", m.state)
	}

	want := map[string]string{"a": "", "b": ""}
	if len(m.session.Inputs) != len(want) {
		t.Fatalf("inputs = %v, want %v", m.session.Inputs, want)
	}
	for k, v := range want {
		if got, ok := m.session.Inputs[k]; !ok || got != v {
			t.Errorf("input %q = %q (present=%v), want empty", k, got, ok)
		}
	}
}

func TestReparseReplacesInputs(t *testing.T) {
	client := &fakeClient{}
	m := parseSum(t, newTestModel(t, client), client)

	// Fill a value, go back, analyze a different algorithm.
	m, _ = press(t, m, "7", "esc")
	if m.state != StateCompose {
		t.Fatalf("state after esc = %v, want StateCompose", m.state)
	}

	client.parseResult = lab.ParseResult{
		Variables: []string{"n"},
		Flowchart: []flowchart.Step{{ID: 1, Kind: flowchart.KindStart, Label: "Start"}},
	}
	m, cmd := press(t, m, "ctrl+s")
	if cmd == nil {
		t.Fatal("resubmit returned no command")
	}
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	if len(m.session.Inputs) != 1 {
		t.Fatalf("inputs = %v, want exactly {n: \"\"}", m.session.Inputs)
	}
	if v, ok := m.session.Inputs["n"]; !ok || v != "" {
		t.Errorf("input n = %q (present=%v), want empty", v, ok)
	}
}

func TestSimulationRejectedWhileInputsBlank(t *testing.T) {
	client := &fakeClient{}
	m := parseSum(t, newTestModel(t, client), client)

	m, cmd := press(t, m, "ctrl+s")
	if client.simulateCalls != 0 {
		t.Errorf("simulate calls = %d, want 0 while inputs are blank", client.simulateCalls)
	}
	if cmd != nil {
		t.Error("rejected simulation should not produce a command")
	}
	if m.state != StateInputs {
		t.Errorf("state = %v, want StateInputs", m.state)
	}
	if !strings.Contains(m.session.ErrorMsg, "a") || !strings.Contains(m.session.ErrorMsg, "b") {
		t.Errorf("validation message %q should name the unfilled variables", m.session.ErrorMsg)
	}
}

func TestParseWithNoVariablesSimulatesImmediately(t *testing.T) {
	client := &fakeClient{
		parseResult: lab.ParseResult{
			Flowchart: []flowchart.Step{
				{ID: 1, Kind: flowchart.KindStart, Label: "Start"},
				{ID: 2, Kind: flowchart.KindOutput, Label: "Print hello"},
				{ID: 3, Kind: flowchart.KindEnd, Label: "End"},
			},
		},
		simulateOut: lab.SimulationOutcome{
			Trace: []lab.TraceStep{
				{SequenceNumber: 1, Description: "Print hello", VariableState: map[string]string{}, FlowchartStepID: 2},
			},
			IsCorrect:      true,
			AccuracyScore:  100,
			ExpectedOutput: "hello",
			ActualOutput:   "hello",
		},
	}
	m := newTestModel(t, client)

	m, cmd := press(t, m, "print hello", "ctrl+s")
	updated, _ := m.Update(cmd())
	m = updated.(Model)
	if m.state != StateInputs {
		t.Fatalf("state = %v, want StateInputs", m.state)
	}
	if v := m.View(); !strings.Contains(v, "takes no input") {
		t.Error("inputs view should say the algorithm takes no input")
	}

	m, cmd = press(t, m, "ctrl+s")
	if cmd == nil {
		t.Fatal("simulation with no variables should start immediately")
	}
	cmd()
	if client.simulateCalls != 1 {
		t.Fatalf("simulate calls = %d, want 1", client.simulateCalls)
	}
}

func TestTraceWalk(t *testing.T) {
	client := &fakeClient{simulateOut: sumOutcome()}
	m := parseSum(t, newTestModel(t, client), client)

	m, cmd := press(t, m, "2", "tab", "3", "ctrl+s")
	if m.state != StateSimulating {
		t.Fatalf("state = %v, want StateSimulating", m.state)
	}
	if cmd == nil {
		t.Fatal("simulation start returned no command")
	}

	msg := cmd()
	if client.simulateCalls != 1 {
		t.Fatalf("simulate calls = %d, want 1", client.simulateCalls)
	}
	if got := client.lastSimulate.Inputs["a"]; got != "2" {
		t.Errorf("simulate request input a = %q, want 2", got)
	}
	if got := client.lastSimulate.Inputs["b"]; got != "3" {
		t.Errorf("simulate request input b = %q, want 3", got)
	}
	if len(client.lastSimulate.Flowchart) != 5 {
		t.Errorf("simulate request flowchart has %d steps, want 5", len(client.lastSimulate.Flowchart))
	}

	updated, _ := m.Update(msg)
	m = updated.(Model)
	if m.state != StateStepping {
		t.Fatalf("state = %v, want StateStepping", m.state)
	}
	if m.session.Cursor != 0 || m.session.ResultsRevealed {
		t.Fatalf("cursor = %d revealed = %v, want 0 and false", m.session.Cursor, m.session.ResultsRevealed)
	}

	// Inputs lock once an outcome exists.
	locked := m.session.SetInput("a", "999")
	if locked.Inputs["a"] != "2" {
		t.Error("inputs should be locked after simulation")
	}

	m, _ = press(t, m, "enter", "enter", "enter")
	if m.session.Cursor != 3 {
		t.Fatalf("cursor = %d after three advances, want 3", m.session.Cursor)
	}
	if m.state != StateStepping {
		t.Fatalf("state = %v, want StateStepping", m.state)
	}

	m, _ = press(t, m, "enter")
	if !m.session.ResultsRevealed {
		t.Fatal("fourth advance on a 4-step trace should reveal results")
	}
	if m.session.Cursor != 3 {
		t.Errorf("cursor = %d, want unchanged 3", m.session.Cursor)
	}
	if m.state != StateResults {
		t.Errorf("state = %v, want StateResults", m.state)
	}

	// Terminal state is idempotent.
	before := m.session
	m, _ = press(t, m, "enter")
	if m.session.Cursor != before.Cursor || !m.session.ResultsRevealed {
		t.Error("advancing past the end should change nothing")
	}
}

func TestQuotaFailureFlagsAndPrompts(t *testing.T) {
	client := &fakeClient{
		parseErr: &reason.RemoteError{
			Op:   "parse",
			Kind: reason.FailureQuota,
			Err:  errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED"),
		},
	}
	m := newTestModel(t, client)

	m, cmd := press(t, m, "count to ten", "ctrl+s")
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	if !m.session.QuotaExhausted {
		t.Error("quota failure should set QuotaExhausted")
	}
	if !strings.Contains(m.session.ErrorMsg, "quota") {
		t.Errorf("error message %q should mention the quota", m.session.ErrorMsg)
	}
	if m.state != StateCredential {
		t.Errorf("state = %v, want the credential prompt", m.state)
	}
	if m.session.Description != "count to ten" {
		t.Errorf("description = %q, want the pre-call value restored", m.session.Description)
	}

	// The flag survives dismissing the prompt.
	m, _ = press(t, m, "esc")
	if !m.session.QuotaExhausted {
		t.Error("QuotaExhausted should persist after closing the prompt")
	}
	if m.state != StateCompose {
		t.Errorf("state = %v, want StateCompose after esc", m.state)
	}
}

func TestCredentialFailurePromptsExactlyOnce(t *testing.T) {
	client := &fakeClient{
		parseErr: &reason.RemoteError{
			Op:   "parse",
			Kind: reason.FailureCredential,
			Err:  errors.New("Requested entity was not found."),
		},
	}
	m := newTestModel(t, client)
	if m.credPrompts != 0 {
		t.Fatalf("credential prompts before failure = %d, want 0", m.credPrompts)
	}

	m, cmd := press(t, m, "count to ten", "ctrl+s")
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	if m.state != StateCredential {
		t.Fatalf("state = %v, want the credential prompt", m.state)
	}
	if m.credPrompts != 1 {
		t.Errorf("credential prompts = %d, want exactly 1", m.credPrompts)
	}
	if m.session.QuotaExhausted {
		t.Error("a credential failure should not set the quota flag")
	}
	if !strings.Contains(m.session.ErrorMsg, "credential") {
		t.Errorf("error message %q should mention the credential", m.session.ErrorMsg)
	}
}

func TestGenericFailureRestoresPreCallState(t *testing.T) {
	client := &fakeClient{}
	m := parseSum(t, newTestModel(t, client), client)
	chartLen := len(m.session.Chart)

	client.simulateErr = &reason.RemoteError{
		Op:   "simulate",
		Kind: reason.FailureGeneric,
		Err:  errors.New("backend hiccup"),
	}
	m, cmd := press(t, m, "2", "tab", "3", "ctrl+s")
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	if m.state != StateInputs {
		t.Errorf("state = %v, want StateInputs restored", m.state)
	}
	if m.session.Outcome != nil {
		t.Error("failed simulation should leave no outcome")
	}
	if len(m.session.Chart) != chartLen {
		t.Errorf("chart length = %d, want %d preserved", len(m.session.Chart), chartLen)
	}
	if m.session.Inputs["a"] != "2" || m.session.Inputs["b"] != "3" {
		t.Errorf("inputs = %v, want typed values preserved", m.session.Inputs)
	}
	if m.session.ErrorMsg == "" {
		t.Error("failure should surface a message")
	}
	if m.session.QuotaExhausted {
		t.Error("generic failure should not set the quota flag")
	}
}

func TestNewLabResets(t *testing.T) {
	client := &fakeClient{simulateOut: sumOutcome()}
	m := parseSum(t, newTestModel(t, client), client)
	oldID := m.session.ID

	m, cmd := press(t, m, "2", "tab", "3", "ctrl+s")
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	m, _ = press(t, m, "ctrl+n")
	if m.state != StateCompose {
		t.Errorf("state = %v, want StateCompose", m.state)
	}
	if m.session.ID == oldID {
		t.Error("new lab should mint a fresh session id")
	}
	if m.session.Chart != nil || m.session.Outcome != nil {
		t.Error("new lab should drop the chart and outcome")
	}
	if m.session.Cursor != -1 {
		t.Errorf("cursor = %d, want -1", m.session.Cursor)
	}
	if m.textarea.Value() != "" {
		t.Errorf("textarea = %q, want empty", m.textarea.Value())
	}
}

func TestStaleParseResultIgnoredAfterReset(t *testing.T) {
	client := &fakeClient{parseResult: sumParseResult()}
	m := newTestModel(t, client)

	m, cmd := press(t, m, "read two numbers and print their sum", "ctrl+s")
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	msg := cmd()

	// New lab while the call is still in flight.
	m, _ = press(t, m, "ctrl+n")

	updated, _ := m.Update(msg)
	m = updated.(Model)
	if m.session.Chart != nil {
		t.Error("a result from the discarded session should not install a chart")
	}
	if m.state != StateCompose {
		t.Errorf("state = %v, want StateCompose", m.state)
	}
}

func TestImageModeValidation(t *testing.T) {
	client := &fakeClient{parseResult: sumParseResult()}
	m := newTestModel(t, client)

	m, _ = press(t, m, "ctrl+t")
	if m.session.Mode != lab.ModeImage {
		t.Fatalf("mode = %v, want image after toggle", m.session.Mode)
	}

	// No image picked: submit must not call out.
	m, cmd := press(t, m, "ctrl+s")
	if client.parseCalls != 0 || cmd != nil {
		t.Error("image mode submit without an image should be a no-op")
	}

	m.session = m.session.WithImage("algorithm.png")
	m, cmd = press(t, m, "ctrl+s")
	if cmd == nil {
		t.Fatal("submit with an image returned no command")
	}
	cmd()
	if client.parseCalls != 1 {
		t.Fatalf("parse calls = %d, want 1", client.parseCalls)
	}
	if client.lastParse.ImagePath != "algorithm.png" {
		t.Errorf("parse request image = %q, want algorithm.png", client.lastParse.ImagePath)
	}
}

func TestMissingKeyOpensPromptAtStart(t *testing.T) {
	m := New(Options{Client: &fakeClient{}, ProviderID: "gemini", Model: "test-model", HasKey: false})
	if m.state != StateCredential {
		t.Fatalf("state = %v, want the credential prompt when no key is set", m.state)
	}
	if m.prevState != StateCompose {
		t.Errorf("prevState = %v, want StateCompose", m.prevState)
	}
}

func TestCredentialPromptStoresKey(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("LOCALAPPDATA", home)
	t.Setenv("GEMINI_API_KEY", "")
	config.ClearCredentialCache()
	t.Cleanup(config.ClearCredentialCache)

	client := &fakeClient{}
	m := newTestModel(t, client)

	m, _ = press(t, m, "ctrl+k")
	if m.state != StateCredential {
		t.Fatalf("state = %v, want the credential prompt", m.state)
	}

	m, _ = press(t, m, "sk-test-123", "enter")
	if m.state != StateCompose {
		t.Errorf("state = %v, want StateCompose after saving", m.state)
	}

	config.ClearCredentialCache()
	creds, err := config.LoadStoredCredentials()
	if err != nil {
		t.Fatalf("LoadStoredCredentials: %v", err)
	}
	if got := creds.Credentials["gemini"].APIKey; got != "sk-test-123" {
		t.Errorf("stored key = %q, want sk-test-123", got)
	}
}

func TestMermaidExportWritesFile(t *testing.T) {
	t.Chdir(t.TempDir())

	client := &fakeClient{simulateOut: sumOutcome()}
	m := parseSum(t, newTestModel(t, client), client)

	m, cmd := press(t, m, "2", "tab", "3", "ctrl+s")
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	m, _ = press(t, m, "m")

	name := "dryrun-" + shortID(m.session.ID) + ".mmd"
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read exported chart: %v", err)
	}
	if !strings.Contains(string(data), "flowchart TD") {
		t.Errorf("export should be a mermaid flowchart, got %q", string(data))
	}
	// The first trace step points at chart id 2, which is node n1.
	if !strings.Contains(string(data), "class n1 current;") {
		t.Errorf("export should mark the current step, got %q", string(data))
	}
}

func TestViewPerScreen(t *testing.T) {
	client := &fakeClient{simulateOut: sumOutcome()}
	m := newTestModel(t, client)

	if v := m.View(); !strings.Contains(v, "Dry Run Lab") {
		t.Error("compose view should carry the title")
	}

	m = parseSum(t, m, client)
	if v := m.View(); !strings.Contains(v, "Inputs") {
		t.Error("inputs view should carry the inputs panel")
	}

	m, cmd := press(t, m, "2", "tab", "3", "ctrl+s")
	if v := m.View(); !strings.Contains(v, "Dry-running") {
		t.Error("simulating view should show the busy line")
	}

	updated, _ := m.Update(cmd())
	m = updated.(Model)
	if v := m.View(); !strings.Contains(v, "Step 1 of 4") {
		t.Error("stepping view should show the step counter")
	}

	m, _ = press(t, m, "enter", "enter", "enter", "enter")
	v := m.View()
	if !strings.Contains(v, "Grade A") {
		t.Error("results view should show the grade badge")
	}
	if !strings.Contains(v, "correct") {
		t.Error("results view should state the verdict")
	}
}

func TestQuotaBannerPersistsAcrossScreens(t *testing.T) {
	client := &fakeClient{
		parseErr: &reason.RemoteError{
			Op:   "parse",
			Kind: reason.FailureQuota,
			Err:  errors.New("Quota exceeded"),
		},
	}
	m := newTestModel(t, client)

	m, cmd := press(t, m, "count to ten", "ctrl+s")
	updated, _ := m.Update(cmd())
	m = updated.(Model)
	m, _ = press(t, m, "esc")

	if v := m.View(); !strings.Contains(v, "quota exhausted") {
		t.Error("the banner should survive on the compose screen")
	}

	// A successful call clears the flag.
	client.parseErr = nil
	client.parseResult = sumParseResult()
	m, cmd = press(t, m, "ctrl+s")
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if m.session.QuotaExhausted {
		t.Error("a successful parse should clear the quota flag")
	}
}

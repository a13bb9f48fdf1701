// Package lab owns the dry-run session state.
//
// A Session is an immutable value: every transition returns a new Session,
// so each step of the lab flow tests as a plain function. The TUI holds the
// current value and swaps it wholesale, keeping the pre-call value around to
// restore when a remote call fails.
package lab

import (
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/flowchart"
)

// InputMode selects how the algorithm is supplied.
type InputMode string

const (
	ModeText  InputMode = "text"
	ModeImage InputMode = "image"
)

// ParseResult is the structured answer of the analysis call.
type ParseResult struct {
	Variables []string         `json:"variables"`
	Flowchart []flowchart.Step `json:"flowchart"`
}

// Session is the aggregate state of one dry-run lab. Exactly one session is
// live at a time; starting a new lab replaces it with a fresh value.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Mode        InputMode `json:"mode"`
	Description string    `json:"description"`
	ImagePath   string    `json:"imagePath,omitempty"`

	Variables []string          `json:"variables"` // names from the last analysis, in order
	Inputs    map[string]string `json:"inputs"`    // keys are exactly Variables
	Chart     []flowchart.Step  `json:"flowchart"` // nil until an analysis succeeds

	Outcome         *SimulationOutcome `json:"outcome,omitempty"` // nil until a simulation succeeds
	Cursor          int                `json:"cursor"`            // index into Outcome.Trace, -1 = not started
	ResultsRevealed bool               `json:"resultsRevealed"`

	ErrorMsg       string `json:"-"` // user-visible message, "" = none
	QuotaExhausted bool   `json:"-"`
}

// NewSession returns the empty starting state.
func NewSession() Session {
	return Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Mode:      ModeText,
		Cursor:    -1,
	}
}

// Reset discards everything and starts over ("New Lab").
func (s Session) Reset() Session {
	return NewSession()
}

// WithDescription replaces the algorithm description text.
func (s Session) WithDescription(text string) Session {
	s.Description = text
	return s
}

// WithMode switches between text and image input.
func (s Session) WithMode(m InputMode) Session {
	s.Mode = m
	return s
}

// WithImage records the picked algorithm image.
func (s Session) WithImage(path string) Session {
	s.ImagePath = path
	return s
}

// CanSubmit reports whether the analysis precondition holds: a non-blank
// description in text mode, a picked image in image mode.
func (s Session) CanSubmit() bool {
	switch s.Mode {
	case ModeImage:
		return s.ImagePath != ""
	default:
		return strings.TrimSpace(s.Description) != ""
	}
}

// BeginParse clears any previous error before an analysis call goes out.
// The caller keeps the receiver value to restore on failure.
func (s Session) BeginParse() Session {
	s.ErrorMsg = ""
	return s
}

// ApplyParse installs a successful analysis result. The previous chart,
// inputs and outcome are replaced outright: a new structure invalidates
// prior variable bindings.
func (s Session) ApplyParse(res ParseResult) Session {
	s.Chart = flowchart.Normalize(res.Flowchart)
	s.Variables = dedupe(res.Variables)
	inputs := make(map[string]string, len(s.Variables))
	for _, name := range s.Variables {
		inputs[name] = ""
	}
	s.Inputs = inputs
	s.Outcome = nil
	s.Cursor = -1
	s.ResultsRevealed = false
	s.ErrorMsg = ""
	s.QuotaExhausted = false
	return s
}

// SetInput records a value for a known variable. Ignored for unknown names,
// and ignored entirely once a simulation outcome exists: the input panel is
// locked from that point on.
func (s Session) SetInput(name, value string) Session {
	if s.Outcome != nil {
		return s
	}
	if _, ok := s.Inputs[name]; !ok {
		return s
	}
	inputs := maps.Clone(s.Inputs)
	inputs[name] = value
	s.Inputs = inputs
	return s
}

// UnfilledVariables lists variables whose input is still blank, in
// declaration order. Simulation may start only when this is empty; a chart
// with no variables may simulate immediately.
func (s Session) UnfilledVariables() []string {
	var missing []string
	for _, name := range s.Variables {
		if strings.TrimSpace(s.Inputs[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// CanSimulate reports whether a chart exists and every input is filled.
func (s Session) CanSimulate() bool {
	return len(s.Chart) > 0 && len(s.UnfilledVariables()) == 0
}

// WithValidationError records a local validation message without touching
// any remote-derived state.
func (s Session) WithValidationError(msg string) Session {
	s.ErrorMsg = msg
	return s
}

// BeginSimulate clears the error and rewinds the trace position before a
// simulation call goes out.
func (s Session) BeginSimulate() Session {
	s.ErrorMsg = ""
	s.Cursor = -1
	s.ResultsRevealed = false
	return s
}

// ApplySimulate installs a successful simulation outcome and starts the
// trace at its first step.
func (s Session) ApplySimulate(out SimulationOutcome) Session {
	s.Outcome = &out
	s.Cursor = 0
	s.ResultsRevealed = false
	s.ErrorMsg = ""
	s.QuotaExhausted = false
	return s
}

// AdvanceStep reveals the next trace step. On the last step it reveals the
// results instead, and afterwards does nothing.
func (s Session) AdvanceStep() Session {
	if s.Outcome == nil || s.ResultsRevealed {
		return s
	}
	if s.Cursor+1 < len(s.Outcome.Trace) {
		s.Cursor++
		return s
	}
	s.ResultsRevealed = true
	return s
}

// WithFailure records a failed remote call. The receiver is the pre-call
// state the caller restored, so chart and outcome survive the failure.
func (s Session) WithFailure(msg string, quotaExhausted bool) Session {
	s.ErrorMsg = msg
	if quotaExhausted {
		s.QuotaExhausted = true
	}
	return s
}

// dedupe keeps the first occurrence of each trimmed, non-empty name.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

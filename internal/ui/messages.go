package ui

import (
	"github.com/reshmayadav40/Dry-Run-Tool/internal/lab"
)

// ParseDoneMsg carries the analysis result back into the Update loop.
// SessionID names the session the call was issued for; a message from a
// session that has since been reset is dropped.
type ParseDoneMsg struct {
	SessionID string
	Result    lab.ParseResult
	Err       error
}

// SimulateDoneMsg carries the dry-run result back into the Update loop.
type SimulateDoneMsg struct {
	SessionID string
	Outcome   lab.SimulationOutcome
	Err       error
}

// EditorDoneMsg returns the description edited in an external editor.
type EditorDoneMsg struct {
	Text string
}

// tickMsg drives the spinner animation.
type tickMsg struct{}

// flashClearMsg removes a transient status bar note.
type flashClearMsg struct{}

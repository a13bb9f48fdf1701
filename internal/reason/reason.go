// Package reason talks to the generative model behind the lab: one call
// turns an algorithm description into variables and a flowchart, another
// dry-runs the algorithm against concrete inputs and returns a judged
// step trace. Both calls are single-shot; a failed call is surfaced to
// the caller and never retried here.
package reason

import (
	"context"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/flowchart"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/lab"
)

// Client is the remote surface the TUI depends on.
type Client interface {
	Parse(ctx context.Context, req ParseRequest) (lab.ParseResult, error)
	Simulate(ctx context.Context, req SimulateRequest) (lab.SimulationOutcome, error)
}

// ParseRequest carries the user's algorithm, as text or as an image file.
type ParseRequest struct {
	SessionID   string // correlates log lines, empty outside the lab
	Description string
	ImagePath   string // set in image mode, read and attached to the call
}

// SimulateRequest carries everything the model needs to dry-run the
// algorithm: the original description, the structure it extracted, and
// the variable values the user typed.
type SimulateRequest struct {
	SessionID   string
	Description string
	ImagePath   string
	Flowchart   []flowchart.Step
	Variables   []string
	Inputs      map[string]string
}

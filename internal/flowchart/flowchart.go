// Package flowchart models the step diagrams produced by algorithm analysis
// and renders them for the terminal and for Mermaid export.
package flowchart

import "strings"

// Kind classifies a step and selects its rendered shape.
type Kind string

const (
	KindStart    Kind = "start"
	KindProcess  Kind = "process"
	KindDecision Kind = "decision"
	KindInput    Kind = "input"
	KindOutput   Kind = "output"
	KindEnd      Kind = "end"
)

// Valid reports whether k is one of the recognized step kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindStart, KindProcess, KindDecision, KindInput, KindOutput, KindEnd:
		return true
	}
	return false
}

// Step is a single node in a flowchart. IDs are assigned by the analysis
// response and unique within a chart. Slice order is the top-to-bottom
// display order, not necessarily execution order.
type Step struct {
	ID    int    `json:"id"`
	Kind  Kind   `json:"kind"`
	Label string `json:"label"`
}

// Normalize cleans analysis output. Labels are trimmed, steps with neither a
// label nor a positive id are dropped, and unrecognized kinds fall back to
// process so a sloppy response still renders.
func Normalize(steps []Step) []Step {
	out := make([]Step, 0, len(steps))
	for _, s := range steps {
		s.Label = strings.TrimSpace(s.Label)
		if s.Label == "" && s.ID <= 0 {
			continue
		}
		if !s.Kind.Valid() {
			s.Kind = KindProcess
		}
		out = append(out, s)
	}
	return out
}

// Find returns the first step with the given id.
func Find(steps []Step, id int) (Step, bool) {
	for _, s := range steps {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}

// Overlay marks dynamic trace state on a chart: ids of steps already
// replayed, and the id of the step the trace cursor is on. An id matching no
// step highlights nothing.
type Overlay struct {
	Visited []int
	Current int
}

package lab

import (
	"github.com/reshmayadav40/Dry-Run-Tool/internal/flowchart"
)

// TraceStep is one recorded moment of a dry run. VariableState holds every
// variable's value after the step executed, already normalized to strings.
type TraceStep struct {
	SequenceNumber  int               `json:"sequenceNumber"`
	Description     string            `json:"description"`
	VariableState   map[string]string `json:"variableState"`
	FlowchartStepID int               `json:"flowchartStepId"`
	Explanation     string            `json:"explanation,omitempty"`
}

// SimulationOutcome is the full result of one simulate call: the step
// trace plus the correctness verdict over the whole run.
type SimulationOutcome struct {
	Trace              []TraceStep `json:"trace"`
	IsCorrect          bool        `json:"isCorrect"`
	AccuracyScore      float64     `json:"accuracyScore"`
	MistakeExplanation string      `json:"mistakeExplanation,omitempty"`
	ExpectedOutput     string      `json:"expectedOutput"`
	ActualOutput       string      `json:"actualOutput"`
}

// CurrentStep returns the trace step under the cursor.
func (s Session) CurrentStep() (TraceStep, bool) {
	if s.Outcome == nil || s.Cursor < 0 || s.Cursor >= len(s.Outcome.Trace) {
		return TraceStep{}, false
	}
	return s.Outcome.Trace[s.Cursor], true
}

// PreviousStep returns the trace step before the cursor.
func (s Session) PreviousStep() (TraceStep, bool) {
	if s.Outcome == nil || s.Cursor < 1 || s.Cursor >= len(s.Outcome.Trace) {
		return TraceStep{}, false
	}
	return s.Outcome.Trace[s.Cursor-1], true
}

// ActiveStepID returns the flowchart step the current trace step points at.
// The id may match no chart node; highlighting then simply shows nothing.
func (s Session) ActiveStepID() (int, bool) {
	step, ok := s.CurrentStep()
	if !ok {
		return 0, false
	}
	return step.FlowchartStepID, true
}

// VisitedStepIDs returns the flowchart ids of the trace steps already
// walked, excluding the current one, in trace order.
func (s Session) VisitedStepIDs() []int {
	if s.Outcome == nil || s.Cursor < 1 {
		return nil
	}
	n := min(s.Cursor, len(s.Outcome.Trace))
	ids := make([]int, 0, n)
	for _, step := range s.Outcome.Trace[:n] {
		ids = append(ids, step.FlowchartStepID)
	}
	return ids
}

// Overlay packages the visited and current flowchart ids for rendering.
// Before the trace starts there is nothing to mark and the overlay is nil.
func (s Session) Overlay() *flowchart.Overlay {
	id, ok := s.ActiveStepID()
	if !ok {
		return nil
	}
	return &flowchart.Overlay{Visited: s.VisitedStepIDs(), Current: id}
}

// DisplayValue returns the value shown for a variable: the current trace
// step's state when it carries the variable, otherwise the typed input.
func (s Session) DisplayValue(name string) string {
	if step, ok := s.CurrentStep(); ok {
		if v, ok := step.VariableState[name]; ok {
			return v
		}
	}
	return s.Inputs[name]
}

// Changed reports whether a variable's value differs between the previous
// and current trace steps. Both steps must carry the variable; on the first
// step nothing counts as changed.
func (s Session) Changed(name string) bool {
	cur, ok := s.CurrentStep()
	if !ok {
		return false
	}
	prev, ok := s.PreviousStep()
	if !ok {
		return false
	}
	curVal, inCur := cur.VariableState[name]
	prevVal, inPrev := prev.VariableState[name]
	return inCur && inPrev && curVal != prevVal
}

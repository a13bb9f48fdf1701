package reason

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/flowchart"
	"github.com/reshmayadav40/Dry-Run-Tool/internal/lab"
)

// Wire types mirror the model's JSON. Values that reach the user as text
// stay loosely typed here and are normalized on the way out.

type wireStep struct {
	ID    int    `json:"id"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

type wireParse struct {
	Variables []string   `json:"variables"`
	Flowchart []wireStep `json:"flowchart"`
}

type wireTraceStep struct {
	SequenceNumber  int            `json:"sequenceNumber"`
	Description     string         `json:"description"`
	VariableState   map[string]any `json:"variableState"`
	FlowchartStepID int            `json:"flowchartStepId"`
	Explanation     string         `json:"explanation"`
}

type wireOutcome struct {
	Trace              []wireTraceStep `json:"trace"`
	IsCorrect          bool            `json:"isCorrect"`
	AccuracyScore      float64         `json:"accuracyScore"`
	MistakeExplanation string          `json:"mistakeExplanation"`
	ExpectedOutput     any             `json:"expectedOutput"`
	ActualOutput       any             `json:"actualOutput"`
}

func toParseResult(w wireParse) lab.ParseResult {
	steps := make([]flowchart.Step, 0, len(w.Flowchart))
	for _, s := range w.Flowchart {
		steps = append(steps, flowchart.Step{
			ID:    s.ID,
			Kind:  flowchart.Kind(strings.ToLower(strings.TrimSpace(s.Kind))),
			Label: strings.TrimSpace(s.Label),
		})
	}
	return lab.ParseResult{
		Variables: w.Variables,
		Flowchart: flowchart.Normalize(steps),
	}
}

func toOutcome(w wireOutcome) lab.SimulationOutcome {
	trace := make([]lab.TraceStep, 0, len(w.Trace))
	for i, ws := range w.Trace {
		seq := ws.SequenceNumber
		if seq <= 0 {
			seq = i + 1
		}
		state := make(map[string]string, len(ws.VariableState))
		for name, v := range ws.VariableState {
			state[name] = normalizeValue(v)
		}
		trace = append(trace, lab.TraceStep{
			SequenceNumber:  seq,
			Description:     strings.TrimSpace(ws.Description),
			VariableState:   state,
			FlowchartStepID: ws.FlowchartStepID,
			Explanation:     strings.TrimSpace(ws.Explanation),
		})
	}
	return lab.SimulationOutcome{
		Trace:              trace,
		IsCorrect:          w.IsCorrect,
		AccuracyScore:      clampScore(w.AccuracyScore),
		MistakeExplanation: strings.TrimSpace(w.MistakeExplanation),
		ExpectedOutput:     normalizeValue(w.ExpectedOutput),
		ActualOutput:       normalizeValue(w.ActualOutput),
	}
}

// normalizeValue renders a decoded JSON value the way a student would
// write it on paper. Integral floats drop their decimal point.
func normalizeValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

// clampScore bounds an accuracy score to 0..100. Anything unusable,
// NaN included, scores zero.
func clampScore(f float64) float64 {
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 100:
		return 100
	default:
		return f
	}
}

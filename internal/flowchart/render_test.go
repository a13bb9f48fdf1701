package flowchart

import (
	"strings"
	"testing"
)

func TestRenderEmpty(t *testing.T) {
	if got := Render(nil, nil, 80); got != "" {
		t.Errorf("Render(nil) = %q, want empty", got)
	}
}

func TestRenderContainsLabelsAndConnectors(t *testing.T) {
	out := Render(sumSteps(), nil, 80)

	for _, label := range []string{"Start", "Read a,b", "sum=a+b", "sum > 10?", "Print sum", "End"} {
		if !strings.Contains(out, label) {
			t.Errorf("output missing label %q", label)
		}
	}

	// Five edges join six boxes
	if n := strings.Count(out, "▼"); n != 5 {
		t.Errorf("connector arrows = %d, want 5", n)
	}
}

func TestRenderShapes(t *testing.T) {
	out := Render(sumSteps(), nil, 80)

	// Rounded corners for start/end
	if !strings.Contains(out, "╭") || !strings.Contains(out, "╰") {
		t.Error("missing rounded border corners for start/end")
	}
	// Square corners for process
	if !strings.Contains(out, "┌") {
		t.Error("missing square border corner for process")
	}
	// Leaning corners for decision and input/output
	if !strings.Contains(out, "╱") || !strings.Contains(out, "╲") {
		t.Error("missing leaning border corners for decision")
	}
}

func TestRenderLabelFallsBackToStepNumber(t *testing.T) {
	out := Render([]Step{{ID: 9, Kind: KindProcess}}, nil, 80)
	if !strings.Contains(out, "step 9") {
		t.Errorf("unlabeled step should render its number:\n%s", out)
	}
}

func TestRenderOverlayDoesNotDropSteps(t *testing.T) {
	steps := sumSteps()
	overlay := &Overlay{Visited: []int{1, 2}, Current: 3}
	out := Render(steps, overlay, 80)

	for _, s := range steps {
		if !strings.Contains(out, s.Label) {
			t.Errorf("overlay render missing label %q", s.Label)
		}
	}
}

func TestRenderUnknownOverlayID(t *testing.T) {
	// An id that matches no step must not panic or change the step count.
	out := Render(sumSteps(), &Overlay{Current: 99}, 80)
	if n := strings.Count(out, "▼"); n != 5 {
		t.Errorf("connector arrows = %d, want 5", n)
	}
}

func TestRenderWrapsLongLabels(t *testing.T) {
	long := strings.Repeat("compare and swap adjacent items ", 4)
	out := Render([]Step{{ID: 1, Kind: KindProcess, Label: long}}, nil, 60)

	for _, line := range strings.Split(out, "\n") {
		if len([]rune(line)) > 60 {
			t.Errorf("line exceeds width 60: %q", line)
		}
	}
}

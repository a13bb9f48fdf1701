package flowchart

import (
	"fmt"
	"strings"
)

// Mermaid produces Mermaid flowchart syntax for the steps, chained top to
// bottom in slice order. Shapes follow the step kind:
//   - start/end: ([stadium])
//   - decision: {diamond}
//   - input/output: [/parallelogram/]
//   - process: [rectangle]
//
// Node names are positional (n0, n1, ...) so duplicate or negative step ids
// cannot produce invalid syntax. Overlay styles (visited/current) are applied
// when provided, so an exported chart matches what the lab shows mid-trace.
func Mermaid(steps []Step, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("flowchart TD\n")

	for i, s := range steps {
		opener, closer := shapeDelims(s.Kind)
		label := s.Label
		if label == "" {
			label = fmt.Sprintf("step %d", s.ID)
		}
		// Escape double quotes for the Mermaid label
		label = strings.ReplaceAll(label, "\"", "'")
		sb.WriteString(fmt.Sprintf("    n%d%s\"%s\"%s\n", i, opener, label, closer))
	}

	for i := 0; i+1 < len(steps); i++ {
		sb.WriteString(fmt.Sprintf("    n%d --> n%d\n", i, i+1))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high contrast regardless of theme
		sb.WriteString("    classDef visited fill:#ede9fe,stroke:#7c3aed,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#fbbf24,stroke:#b45309,stroke-width:3px,color:#000;\n")

		seen := make(map[int]bool)
		for _, id := range overlay.Visited {
			idx := index(steps, id)
			if idx < 0 || seen[idx] {
				continue
			}
			seen[idx] = true
			sb.WriteString(fmt.Sprintf("    class n%d visited;\n", idx))
		}

		if idx := index(steps, overlay.Current); idx >= 0 {
			sb.WriteString(fmt.Sprintf("    class n%d current;\n", idx))
		}
	}

	return sb.String()
}

func shapeDelims(k Kind) (opener, closer string) {
	switch k {
	case KindStart, KindEnd:
		return "([", "])"
	case KindDecision:
		return "{", "}"
	case KindInput, KindOutput:
		return "[/", "/]"
	default:
		return "[", "]"
	}
}

func index(steps []Step, id int) int {
	for i, s := range steps {
		if s.ID == id {
			return i
		}
	}
	return -1
}

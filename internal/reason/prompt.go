package reason

import (
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"charm.land/fantasy"
)

const parseSystemPrompt = `You are a computer science tutor helping a student dry-run an algorithm by hand.

The student gives you an algorithm, either as plain text or as a photo of pseudocode, a flowchart, or handwritten notes. Work out:

1. The input variables the algorithm reads before it runs. List only values the user must supply up front, not loop counters or intermediate results. An algorithm with no inputs gets an empty list.
2. The algorithm as a flowchart: a flat, ordered list of steps. Give each step a unique integer id starting at 1, a kind (start, process, decision, input, output, end), and a short label. Always begin with a start step and finish with an end step. Phrase decision labels as questions.

Respond strictly in the required JSON structure.`

const simulateSystemPrompt = `You are a computer science tutor dry-running an algorithm by hand, the way a student would on paper.

You are given an algorithm, its flowchart, and concrete values for its input variables. Execute the algorithm one flowchart step at a time and record a trace entry for every executed step: a sequence number starting at 1, a one-sentence description, the value of every variable after the step, and the id of the flowchart step it executed. Express variable values the way a student would write them.

Then judge the algorithm itself: decide whether it produces the output it is supposed to produce, give an accuracy score from 0 to 100, and when it is wrong explain the mistake in one or two sentences. Also report the output a correct algorithm would produce for these inputs and the output this one actually produces.

Respond strictly in the required JSON structure.`

// buildParsePrompt assembles the analysis call. In image mode the picture
// rides along as a file part.
func buildParsePrompt(req ParseRequest) (fantasy.Prompt, error) {
	var sb strings.Builder
	if req.ImagePath != "" {
		sb.WriteString("The attached image shows the algorithm to analyze.")
		if strings.TrimSpace(req.Description) != "" {
			fmt.Fprintf(&sb, "\n\nThe student added this note:\n%s", req.Description)
		}
	} else {
		fmt.Fprintf(&sb, "Analyze this algorithm:\n\n%s", req.Description)
	}

	parts, err := imageParts(req.ImagePath)
	if err != nil {
		return nil, err
	}

	return fantasy.Prompt{
		fantasy.NewSystemMessage(parseSystemPrompt),
		fantasy.NewUserMessage(sb.String(), parts...),
	}, nil
}

// buildSimulatePrompt assembles the dry-run call: the description, the
// extracted flowchart as JSON, and the user's input values.
func buildSimulatePrompt(req SimulateRequest) (fantasy.Prompt, error) {
	chartJSON, err := json.MarshalIndent(req.Flowchart, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode flowchart: %w", err)
	}

	var sb strings.Builder
	if req.ImagePath != "" {
		sb.WriteString("The attached image shows the algorithm to dry-run.")
		if strings.TrimSpace(req.Description) != "" {
			fmt.Fprintf(&sb, "\n\nThe student added this note:\n%s", req.Description)
		}
	} else {
		fmt.Fprintf(&sb, "Dry-run this algorithm:\n\n%s", req.Description)
	}

	fmt.Fprintf(&sb, "\n\nIts flowchart:\n%s", chartJSON)

	if len(req.Variables) > 0 {
		sb.WriteString("\n\nInput values:\n")
		for _, name := range req.Variables {
			fmt.Fprintf(&sb, "%s = %s\n", name, req.Inputs[name])
		}
		// Inputs the analysis did not ask for still reach the model, last.
		var extras []string
		known := make(map[string]bool, len(req.Variables))
		for _, name := range req.Variables {
			known[name] = true
		}
		for name := range req.Inputs {
			if !known[name] {
				extras = append(extras, name)
			}
		}
		sort.Strings(extras)
		for _, name := range extras {
			fmt.Fprintf(&sb, "%s = %s\n", name, req.Inputs[name])
		}
	} else {
		sb.WriteString("\n\nThe algorithm takes no input.")
	}

	parts, err := imageParts(req.ImagePath)
	if err != nil {
		return nil, err
	}

	return fantasy.Prompt{
		fantasy.NewSystemMessage(simulateSystemPrompt),
		fantasy.NewUserMessage(sb.String(), parts...),
	}, nil
}

// imageParts reads the picked image into a file part. Media type comes
// from the extension, defaulting to PNG for unknown ones.
func imageParts(path string) ([]fantasy.FilePart, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if !strings.HasPrefix(mediaType, "image/") {
		mediaType = "image/png"
	}
	return []fantasy.FilePart{{
		Filename:  filepath.Base(path),
		Data:      data,
		MediaType: mediaType,
	}}, nil
}

package reason

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"charm.land/fantasy"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/flowchart"
)

func messageText(t *testing.T, msg fantasy.Message) string {
	t.Helper()
	for _, part := range msg.Content {
		if tp, ok := part.(fantasy.TextPart); ok {
			return tp.Text
		}
	}
	t.Fatal("message has no text part")
	return ""
}

func messageFiles(msg fantasy.Message) []fantasy.FilePart {
	var files []fantasy.FilePart
	for _, part := range msg.Content {
		if fp, ok := part.(fantasy.FilePart); ok {
			files = append(files, fp)
		}
	}
	return files
}

func TestBuildParsePromptText(t *testing.T) {
	prompt, err := buildParsePrompt(ParseRequest{Description: "read two numbers and print their sum"})
	if err != nil {
		t.Fatal(err)
	}
	if len(prompt) != 2 {
		t.Fatalf("got %d messages, want system + user", len(prompt))
	}

	user := messageText(t, prompt[1])
	if !strings.Contains(user, "read two numbers") {
		t.Errorf("user message %q should carry the description", user)
	}
	if files := messageFiles(prompt[1]); len(files) != 0 {
		t.Errorf("text mode attached %d files, want none", len(files))
	}
}

func TestBuildParsePromptImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "algo.png")
	if err := os.WriteFile(path, []byte("not really a png"), 0o644); err != nil {
		t.Fatal(err)
	}

	prompt, err := buildParsePrompt(ParseRequest{ImagePath: path, Description: "my homework"})
	if err != nil {
		t.Fatal(err)
	}

	files := messageFiles(prompt[1])
	if len(files) != 1 {
		t.Fatalf("got %d file parts, want 1", len(files))
	}
	if files[0].Filename != "algo.png" {
		t.Errorf("Filename = %q, want algo.png", files[0].Filename)
	}
	if files[0].MediaType != "image/png" {
		t.Errorf("MediaType = %q, want image/png", files[0].MediaType)
	}
	if user := messageText(t, prompt[1]); !strings.Contains(user, "my homework") {
		t.Errorf("user message %q should carry the note", user)
	}
}

func TestBuildParsePromptMissingImage(t *testing.T) {
	_, err := buildParsePrompt(ParseRequest{ImagePath: filepath.Join(t.TempDir(), "gone.png")})
	if err == nil {
		t.Fatal("expected an error for an unreadable image")
	}
}

func TestImagePartsUnknownExtensionDefaultsToPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.scan")
	if err := os.WriteFile(path, []byte{0x89, 0x50}, 0o644); err != nil {
		t.Fatal(err)
	}
	parts, err := imageParts(path)
	if err != nil {
		t.Fatal(err)
	}
	if parts[0].MediaType != "image/png" {
		t.Errorf("MediaType = %q, want the PNG fallback", parts[0].MediaType)
	}
}

func TestBuildSimulatePrompt(t *testing.T) {
	req := SimulateRequest{
		Description: "sum two numbers",
		Flowchart: []flowchart.Step{
			{ID: 1, Kind: flowchart.KindStart, Label: "Start"},
			{ID: 2, Kind: flowchart.KindEnd, Label: "End"},
		},
		Variables: []string{"a", "b"},
		Inputs:    map[string]string{"a": "2", "b": "3"},
	}
	prompt, err := buildSimulatePrompt(req)
	if err != nil {
		t.Fatal(err)
	}

	user := messageText(t, prompt[1])
	for _, want := range []string{"sum two numbers", `"id": 1`, `"label": "Start"`, "a = 2", "b = 3"} {
		if !strings.Contains(user, want) {
			t.Errorf("user message missing %q", want)
		}
	}
}

func TestBuildSimulatePromptNoVariables(t *testing.T) {
	prompt, err := buildSimulatePrompt(SimulateRequest{
		Description: "print hello",
		Flowchart:   []flowchart.Step{{ID: 1, Kind: flowchart.KindStart, Label: "Start"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if user := messageText(t, prompt[1]); !strings.Contains(user, "no input") {
		t.Errorf("user message %q should say the algorithm takes no input", user)
	}
}

package reason

import (
	"errors"
	"fmt"
	"strings"
)

// FailureKind classifies a failed remote call for the UI.
type FailureKind int

const (
	// FailureGeneric covers everything without special handling.
	FailureGeneric FailureKind = iota
	// FailureQuota means the shared API quota is spent. The UI shows a
	// persistent banner and offers a personal key; it never auto-retries.
	FailureQuota
	// FailureCredential means the configured credential no longer works
	// and the user should enter a fresh one.
	FailureCredential
)

// RemoteError wraps an error from the generative backend with the
// operation that produced it and its classification.
type RemoteError struct {
	Op   string // "parse" or "simulate"
	Kind FailureKind
	Err  error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Classify inspects a backend error message for the markers the Gemini
// API uses for quota and credential problems.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureGeneric
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(msg, "Quota exceeded"):
		return FailureQuota
	case strings.Contains(msg, "Requested entity was not found"):
		return FailureCredential
	default:
		return FailureGeneric
	}
}

// Kind extracts the classification from an error chain.
func Kind(err error) FailureKind {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind
	}
	return FailureGeneric
}

// UserMessage renders an error as the line shown in the lab's error bar.
func UserMessage(err error) string {
	switch Kind(err) {
	case FailureQuota:
		return "The shared API quota is exhausted. Add a personal API key to keep going."
	case FailureCredential:
		return "The stored API credential no longer works. Enter a new key to continue."
	default:
		var re *RemoteError
		if errors.As(err, &re) {
			return fmt.Sprintf("The %s call failed: %v", re.Op, re.Err)
		}
		return fmt.Sprintf("The call failed: %v", err)
	}
}

// Package pipe provides utilities for detecting pipeline execution.
package pipe

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsStdinPiped returns true if stdin is receiving piped input.
func IsStdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	// Check if stdin is a pipe or has data
	return (stat.Mode()&os.ModeCharDevice) == 0 || stat.Size() > 0
}

// IsStdoutPiped returns true if stdout is being piped to another process.
func IsStdoutPiped() bool {
	return !term.IsTerminal(int(os.Stdout.Fd()))
}

// ReadStdin reads all available data from stdin.
// Returns empty string if stdin is not piped or has no data.
func ReadStdin() (string, error) {
	if !IsStdinPiped() {
		return "", nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

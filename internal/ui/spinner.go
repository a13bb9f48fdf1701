package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/reshmayadav40/Dry-Run-Tool/internal/ui/shared"
)

// Spinner displays an animated progress indicator on stderr. It is used by
// the non-interactive parse command; the lab TUI animates its own frames
// inside the Bubble Tea loop instead.
type Spinner struct {
	message   string
	startTime time.Time
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
	frame     int
	frames    []string
	style     lipgloss.Style
	msgStyle  lipgloss.Style
	isTTY     bool
}

// NewSpinner creates a new spinner with the given message (analysis type).
func NewSpinner(message string) *Spinner {
	return NewSpinnerWithType(message, shared.SpinnerAnalysis)
}

// NewSpinnerWithType creates a spinner with a specific type for different operations.
func NewSpinnerWithType(message string, spinnerType shared.SpinnerType) *Spinner {
	return &Spinner{
		message:   message,
		startTime: time.Now(),
		done:      make(chan struct{}),
		frames:    shared.GetSpinnerFrames(spinnerType),
		style:     lipgloss.NewStyle().Foreground(spinnerColor(spinnerType)),
		msgStyle:  lipgloss.NewStyle().Foreground(shared.ColorTextDim),
		isTTY:     term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// spinnerColor returns the accent color for a spinner type.
func spinnerColor(t shared.SpinnerType) lipgloss.Color {
	switch t {
	case shared.SpinnerSimulation:
		return shared.ColorSecondary
	case shared.SpinnerSystem:
		return shared.ColorSuccess
	default:
		return shared.ColorPrimary
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	if !s.isTTY {
		fmt.Fprintf(os.Stderr, "%s %s\n", s.frames[0], s.message)
		return
	}

	go func() {
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				s.mu.Lock()
				s.frame = (s.frame + 1) % len(s.frames)
				s.render()
				s.mu.Unlock()
			}
		}
	}()

	// Initial render
	s.mu.Lock()
	s.render()
	s.mu.Unlock()
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	s.closeOnce.Do(func() { close(s.done) })

	if s.isTTY {
		fmt.Fprint(os.Stderr, "\r\033[K") // Clear line
	}
}

// StopWithMessage stops the spinner and shows a final message with elapsed time.
func (s *Spinner) StopWithMessage(message string) {
	s.closeOnce.Do(func() { close(s.done) })

	elapsed := formatDuration(time.Since(s.startTime))

	if s.isTTY {
		fmt.Fprint(os.Stderr, "\r\033[K")
	}

	fmt.Fprintf(os.Stderr, "%s %s\n", s.msgStyle.Render(message), s.msgStyle.Render("("+elapsed+")"))
}

// StopWithError stops the spinner and shows an error indicator.
func (s *Spinner) StopWithError(message string) {
	s.closeOnce.Do(func() { close(s.done) })

	if s.isTTY {
		fmt.Fprint(os.Stderr, "\r\033[K")
	}

	errorStyle := lipgloss.NewStyle().Foreground(shared.ColorError)
	fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render(shared.IconError), message)
}

// Elapsed returns the time elapsed since the spinner started.
func (s *Spinner) Elapsed() time.Duration {
	return time.Since(s.startTime)
}

// render draws the current spinner state (must be called with lock held).
func (s *Spinner) render() {
	frame := s.style.Render(s.frames[s.frame%len(s.frames)])
	msg := s.msgStyle.Render(s.message)
	fmt.Fprintf(os.Stderr, "\r\033[K%s %s", frame, msg)
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fm", d.Minutes())
}

package shared

// SpinnerType identifies different kinds of async operations.
type SpinnerType int

const (
	// SpinnerAnalysis is for algorithm analysis (default)
	SpinnerAnalysis SpinnerType = iota
	// SpinnerSimulation is for the dry-run simulation call
	SpinnerSimulation
	// SpinnerSystem is for system operations (setup, install)
	SpinnerSystem
)

// Spinner animation frames by type.
var (
	// Default braille spinner for remote analysis
	FramesAnalysis = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	// Dots for simulation, echoing trace steps lighting up
	FramesSimulation = []string{"∙∙∙", "●∙∙", "∙●∙", "∙∙●"}
	// Line for system ops
	FramesSystem = []string{"|", "/", "-", "\\"}
)

// GetSpinnerFrames returns the animation frames for a given spinner type.
func GetSpinnerFrames(t SpinnerType) []string {
	switch t {
	case SpinnerSimulation:
		return FramesSimulation
	case SpinnerSystem:
		return FramesSystem
	default:
		return FramesAnalysis
	}
}

package shared

// Icons for UI elements - colorless Unicode glyphs that respect terminal themes.
// These are carefully selected from box drawing, geometric shapes, and
// miscellaneous symbols to be visually distinct and terminal-compatible.
const (
	// Status icons
	IconSuccess = "✓" // Check mark - correct result
	IconError   = "✗" // Ballot X - wrong result or failure
	IconWarning = "△" // White up-pointing triangle - warning
	IconInfo    = "●" // Black circle - info

	// Trace icons
	IconStepDone    = "●" // Black circle - replayed step
	IconStepCurrent = "▸" // Small right-pointing triangle - current step
	IconStepPending = "○" // White circle - step not yet reached

	// Navigation/UI icons
	IconArrowRight = "→" // Rightwards arrow - navigation
	IconArrowDown  = "▼" // Black down-pointing triangle - flowchart edges
	IconBullet     = "•" // Bullet - list items
	IconEllipsis   = "⋯" // Midline horizontal ellipsis - loading/truncated
)

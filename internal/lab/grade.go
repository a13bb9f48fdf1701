package lab

// Grade maps an accuracy score to the letter shown on the results screen.
// Scores arrive clamped to 0..100, but out-of-range values still land in
// the nearest band.
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

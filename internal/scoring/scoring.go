// Package scoring computes the deterministic burnout risk score from a
// reported workload. It is pure: no storage, no I/O, no failure mode.
package scoring

import "math"

// Risk labels derived from the score thresholds.
const (
	LabelHigh   = "High"
	LabelMedium = "Medium"
	LabelLow    = "Low"
)

// Score maps reported work hours and stress level to a risk score and
// label. 40 hours at stress 5 is the midpoint of each half of the scale.
// Halves round to even. Inputs are deliberately not range-checked:
// out-of-band values produce scores outside [0,100] and must not be
// clamped here; callers validate presence and type at the boundary.
func Score(workHours, stressLevel int) (int, string) {
	score := int(math.RoundToEven(float64(workHours)/40*50 + float64(stressLevel)/10*50))
	return score, Label(score)
}

// Label returns the risk label for a score: High at 70 and above,
// Medium from 40 up to 70, Low below 40.
func Label(score int) string {
	switch {
	case score >= 70:
		return LabelHigh
	case score >= 40:
		return LabelMedium
	default:
		return LabelLow
	}
}

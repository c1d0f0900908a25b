package utils

// Clamp01 clamps v to the [0, 1] range. Confidence values everywhere in the
// app are bounded scores, so out-of-range backend values are clamped rather
// than rejected.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

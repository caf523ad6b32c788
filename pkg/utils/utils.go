package utils

import "math"

const bytesPerGB = 1 << 30

// Round2 rounds to two decimal places. Capacity comparisons are done on
// rounded values so that both sides of the check use the same precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func BytesToGB(b int64) float64 {
	return float64(b) / bytesPerGB
}

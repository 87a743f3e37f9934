package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return math.Round(f*100) / 100
}

// Ratio divides part by total, returning 0 for an empty total.
func Ratio(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return RoundWithTwoDecimalPlace(float64(part) / float64(total))
}

package utils

import "math"

// Round2 rounds a value to 2 decimal places
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// RoundWhole rounds to the nearest whole unit, halves go up (2.5 -> 3, -2.5 -> -2).
func RoundWhole(value float64) float64 {
	return math.Floor(value + 0.5)
}

// IsFinite reports whether the value is neither infinite nor NaN
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

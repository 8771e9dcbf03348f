// Package core holds the scalar helpers shared by the waveform and converter
// packages: range limiting, quantization and decibel conversion.
package core

import "math"

// Clamp limits value to the inclusive range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// Quantize truncates value toward zero and saturates it to [lo, hi].
// NaN maps to 0 when 0 is in range, otherwise to lo.
func Quantize(value float64, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}
	if math.IsNaN(value) {
		if lo <= 0 && hi >= 0 {
			return 0
		}
		return lo
	}

	return int(Clamp(math.Trunc(value), float64(lo), float64(hi)))
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}

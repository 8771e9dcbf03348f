// Package window provides the error-function smoothed flat-top envelope used
// to taper band-excitation waveforms, plus helpers to apply and inspect it.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// ErfEdge evaluates the envelope at time t:
//
//	w(t) = 0.5·(1+erf((t-2σ)/σ)) - 0.5·(1+erf((t+2σ-T)/σ))
//
// The leading term ramps up around t = 2σ and the trailing term ramps
// down around t = T-2σ, each over roughly 4σ.
func ErfEdge(t, smoothing, duration float64) float64 {
	rise := 0.5 * (1 + math.Erf((t-2*smoothing)/smoothing))
	fall := 0.5 * (1 + math.Erf((t+2*smoothing-duration)/smoothing))
	return rise - fall
}

// ErfEdges returns size envelope coefficients sampled at t = i·duration/size.
func ErfEdges(size int, smoothing, duration float64) ([]float64, error) {
	if err := validateErfEdges(size, smoothing, duration); err != nil {
		return nil, err
	}

	out := make([]float64, size)
	n := float64(size)
	for i := range out {
		t := float64(i) * duration / n
		out[i] = ErfEdge(t, smoothing, duration)
	}

	return out, nil
}

// ApplyErfEdges multiplies buf in place by the erf envelope spanning duration.
// An empty buf is left untouched.
func ApplyErfEdges(buf []float64, smoothing, duration float64) error {
	coeffs, err := ErfEdges(len(buf), smoothing, duration)
	if err != nil {
		return err
	}
	if len(buf) == 0 {
		return nil
	}

	vecmath.MulBlockInPlace(buf, coeffs)

	return nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

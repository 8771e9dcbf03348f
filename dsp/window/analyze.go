package window

// flatLevel is the coefficient level counted as part of the flat top.
const flatLevel = 0.99

// Analysis summarizes the shape of an envelope.
type Analysis struct {
	// CoherentGain is sum(w[n]) / N.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// Peak is the largest coefficient.
	Peak float64
	// FlatFraction is the share of coefficients at or above 0.99.
	FlatFraction float64
	// RiseSamples is the first index whose coefficient reaches half the peak.
	RiseSamples int
	// FallSamples is the number of trailing samples below half the peak.
	FallSamples int
}

// Analyze computes shape metrics of the given envelope coefficients.
// Empty or all-zero input yields a zero Analysis.
func Analyze(coeffs []float64) Analysis {
	n := len(coeffs)
	if n == 0 {
		return Analysis{}
	}

	sum := 0.0
	peak := 0.0
	flat := 0
	for _, c := range coeffs {
		sum += c
		if c > peak {
			peak = c
		}
		if c >= flatLevel {
			flat++
		}
	}
	if peak <= 0 {
		return Analysis{}
	}

	enbw, err := EquivalentNoiseBandwidth(coeffs)
	if err != nil {
		enbw = 0
	}

	half := peak / 2
	rise := 0
	for rise < n && coeffs[rise] < half {
		rise++
	}
	fall := 0
	for fall < n && coeffs[n-1-fall] < half {
		fall++
	}

	return Analysis{
		CoherentGain: sum / float64(n),
		ENBW:         enbw,
		Peak:         peak,
		FlatFraction: float64(flat) / float64(n),
		RiseSamples:  rise,
		FallSamples:  fall,
	}
}

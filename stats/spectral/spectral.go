// Package spectral describes the shape of a one-sided magnitude spectrum:
// where its energy sits, how wide it is and how flat it is.
//
// Every function takes bins 0 (DC) to Nyquist, so an FFT of size N gives
// N/2+1 bins and bin i lies at
//
//	f_i = i * sampleRate / (2 * (len(magnitude) - 1))
package spectral

import "math"

// Stats holds shape descriptors of a magnitude spectrum.
type Stats struct {
	Bins      int
	PeakBin   int
	PeakFreq  float64 // Hz
	Centroid  float64 // Hz
	Spread    float64 // Hz, standard deviation around Centroid
	Flatness  float64 // Wiener entropy, 0..1
	Rolloff   float64 // Hz below which RolloffFraction of the energy lies
	Bandwidth float64 // Hz, 3 dB width around the peak
}

// RolloffFraction is the energy share used by Calculate for Rolloff.
const RolloffFraction = 0.85

func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Calculate computes all descriptors of magnitude (linear, not dB).
func Calculate(magnitude []float64, sampleRate float64) Stats {
	n := len(magnitude)
	s := Stats{Bins: n}
	if n < 2 {
		return s
	}

	sum, energy := 0.0, 0.0
	for i, v := range magnitude {
		sum += v
		energy += v * v
		if v > magnitude[s.PeakBin] {
			s.PeakBin = i
		}
	}
	s.PeakFreq = binFreq(s.PeakBin, sampleRate, n)
	s.Centroid = centroid(magnitude, sampleRate, sum)
	s.Spread = spread(magnitude, sampleRate, s.Centroid, sum)
	s.Flatness = Flatness(magnitude)
	s.Rolloff = rolloff(magnitude, sampleRate, RolloffFraction, energy)
	s.Bandwidth = bandwidth(magnitude, sampleRate, s.PeakBin)

	return s
}

// Magnitude returns sqrt(power) element-wise.
func Magnitude(power []float64) []float64 {
	out := make([]float64, len(power))
	for i, p := range power {
		out[i] = math.Sqrt(math.Max(p, 0))
	}
	return out
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(magnitude []float64, sampleRate float64) float64 {
	sum := 0.0
	for _, v := range magnitude {
		sum += v
	}
	return centroid(magnitude, sampleRate, sum)
}

func centroid(magnitude []float64, sampleRate, sumMag float64) float64 {
	n := len(magnitude)
	if n < 2 || sumMag == 0 {
		return 0
	}
	weighted := 0.0
	for i, v := range magnitude {
		weighted += binFreq(i, sampleRate, n) * v
	}
	return weighted / sumMag
}

func spread(magnitude []float64, sampleRate, cent, sumMag float64) float64 {
	n := len(magnitude)
	if n < 2 || sumMag == 0 {
		return 0
	}
	weighted := 0.0
	for i, v := range magnitude {
		d := binFreq(i, sampleRate, n) - cent
		weighted += d * d * v
	}
	return math.Sqrt(weighted / sumMag)
}

// Flatness returns the ratio of geometric to arithmetic mean of the bins
// above DC. A zero bin makes it 0.
func Flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	sumLin, sumLog := 0.0, 0.0
	for _, v := range magnitude[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	bins := float64(n - 1)
	return math.Exp(sumLog/bins) / (sumLin / bins)
}

// Rolloff returns the frequency below which fraction (0..1) of the spectral
// energy lies.
func Rolloff(magnitude []float64, sampleRate, fraction float64) float64 {
	energy := 0.0
	for _, v := range magnitude {
		energy += v * v
	}
	return rolloff(magnitude, sampleRate, fraction, energy)
}

func rolloff(magnitude []float64, sampleRate, fraction, energy float64) float64 {
	n := len(magnitude)
	if n < 2 || energy == 0 {
		return 0
	}
	threshold := fraction * energy
	cum := 0.0
	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return binFreq(i, sampleRate, n)
		}
	}
	return binFreq(n-1, sampleRate, n)
}

// Bandwidth returns the 3 dB width in Hz of the contiguous region around the
// spectral peak, interpolating linearly between bins.
func Bandwidth(magnitude []float64, sampleRate float64) float64 {
	peak := 0
	for i, v := range magnitude {
		if v > magnitude[peak] {
			peak = i
		}
	}
	return bandwidth(magnitude, sampleRate, peak)
}

func bandwidth(magnitude []float64, sampleRate float64, peak int) float64 {
	n := len(magnitude)
	if n < 2 || magnitude[peak] == 0 {
		return 0
	}
	threshold := magnitude[peak] / math.Sqrt2

	lower := binFreq(0, sampleRate, n)
	for i := peak; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lower = interpFreq(i-1, magnitude[i-1], magnitude[i], threshold, sampleRate, n)
			break
		}
	}

	upper := binFreq(n-1, sampleRate, n)
	for i := peak; i < n-1; i++ {
		if magnitude[i+1] <= threshold && magnitude[i] > threshold {
			upper = interpFreq(i, magnitude[i], magnitude[i+1], threshold, sampleRate, n)
			break
		}
	}

	return math.Max(upper-lower, 0)
}

// interpFreq finds where the magnitude crosses threshold between bin and
// bin+1.
func interpFreq(bin int, magLow, magHigh, threshold, sampleRate float64, binCount int) float64 {
	fLow := binFreq(bin, sampleRate, binCount)
	fHigh := binFreq(bin+1, sampleRate, binCount)

	denom := magHigh - magLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	return fLow + (threshold-magLow)/denom*(fHigh-fLow)
}

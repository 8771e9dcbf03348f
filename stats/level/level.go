// Package level computes amplitude statistics of output waveforms and how
// they sit inside a converter's full-scale range.
package level

import (
	"math"

	"github.com/cwbudde/algo-bexcite/dsp/core"
)

// Stats holds time-domain level statistics of a waveform.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max |x|
	PeakPos        int
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Energy         float64 // sum of squares
	ZeroCrossings  int
}

// Calculate computes all statistics in a single pass.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{
			RMS_dB:         math.Inf(-1),
			Peak_dB:        math.Inf(-1),
			CrestFactor_dB: math.Inf(-1),
		}
	}

	var (
		sum, c float64
		sumSq  float64
		peak   float64
		pos    int
		zc     int
	)
	for i, x := range signal {
		// Kahan summation for the mean.
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t

		sumSq += x * x

		if a := math.Abs(x); a > peak {
			peak = a
			pos = i
		}

		if i > 0 && signal[i-1]*x < 0 {
			zc++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	s := Stats{
		Length:         n,
		DC:             sum / nf,
		RMS:            rms,
		RMS_dB:         core.LinearToDB(rms),
		Peak:           peak,
		PeakPos:        pos,
		Peak_dB:        core.LinearToDB(peak),
		CrestFactor_dB: math.Inf(-1),
		Energy:         sumSq,
		ZeroCrossings:  zc,
	}
	if rms > 0 {
		s.CrestFactor = peak / rms
		s.CrestFactor_dB = core.LinearToDB(s.CrestFactor)
	}

	return s
}

// Headroom returns the distance in dB between peak and fullScale. A negative
// result means the waveform exceeds the range and will saturate.
func Headroom(peak, fullScale float64) float64 {
	if fullScale <= 0 {
		return math.Inf(-1)
	}
	if peak == 0 {
		return math.Inf(1)
	}

	return core.LinearToDB(fullScale / math.Abs(peak))
}

// Clipped counts samples whose magnitude exceeds fullScale.
func Clipped(signal []float64, fullScale float64) int {
	n := 0
	for _, x := range signal {
		if math.Abs(x) > fullScale {
			n++
		}
	}
	return n
}

// ZeroCrossingRate estimates the mean frequency of signal in Hz from its sign
// changes. For a chirp this lands near the centre of the swept band, folded
// into [0, sampleRate/2].
func ZeroCrossingRate(signal []float64, sampleRate float64) float64 {
	if len(signal) < 2 || sampleRate <= 0 {
		return 0
	}
	zc := 0
	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			zc++
		}
	}
	return float64(zc) * sampleRate / (2 * float64(len(signal)-1))
}

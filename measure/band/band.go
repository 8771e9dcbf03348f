package band

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-bexcite/stats/level"
	"github.com/cwbudde/algo-bexcite/stats/spectral"
)

// DefaultEdgeSamples is the edge window used when Options.EdgeSamples is 0.
const DefaultEdgeSamples = 8

// Errors returned by Analyze.
var (
	ErrEmptySignal       = errors.New("band: signal is empty")
	ErrInvalidSampleRate = errors.New("band: sample rate must be positive")
	ErrInvalidBand       = errors.New("band: band limits must satisfy 0 <= low <= high")
)

// Options selects the band of interest and the edge length.
type Options struct {
	Low         float64 // Hz
	High        float64 // Hz
	EdgeSamples int
}

// Report summarizes a waveform.
type Report struct {
	Samples     int
	SampleRate  float64
	FFTSize     int
	PeakFreq    float64 // Hz, within [0, fs/2]
	PeakPower   float64
	InBandRatio float64 // share of one-sided power whose bin aliases into [Low, High]
	RMS         float64
	Peak        float64
	CrestFactor float64
	EdgeStart   float64 // max |x| over the first EdgeSamples
	EdgeEnd     float64 // max |x| over the last EdgeSamples

	// Spectrum describes the one-sided magnitude spectrum, folded into
	// [0, fs/2].
	Spectrum spectral.Stats
}

// Analyze computes the report for x sampled at sampleRate Hz.
func Analyze(x []float64, sampleRate float64, opts Options) (Report, error) {
	if len(x) == 0 {
		return Report{}, ErrEmptySignal
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Report{}, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}
	if opts.Low < 0 || opts.High < opts.Low {
		return Report{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidBand, opts.Low, opts.High)
	}
	edge := opts.EdgeSamples
	if edge <= 0 {
		edge = DefaultEdgeSamples
	}
	edge = min(edge, len(x))

	power, fftSize, err := oneSidedPower(x)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Samples:    len(x),
		SampleRate: sampleRate,
		FFTSize:    fftSize,
	}

	binHz := sampleRate / float64(fftSize)
	total, inBand := 0.0, 0.0
	peakBin := 0
	for k, p := range power {
		total += p
		if p > power[peakBin] {
			peakBin = k
		}
		if Aliases(float64(k)*binHz, opts.Low, opts.High, sampleRate) {
			inBand += p
		}
	}
	r.PeakFreq = float64(peakBin) * binHz
	r.PeakPower = power[peakBin]
	if total > 0 {
		r.InBandRatio = inBand / total
	}

	r.Spectrum = spectral.Calculate(spectral.Magnitude(power), sampleRate)

	lv := level.Calculate(x)
	r.RMS = lv.RMS
	r.Peak = lv.Peak
	r.CrestFactor = lv.CrestFactor

	r.EdgeStart = maxAbs(x[:edge])
	r.EdgeEnd = maxAbs(x[len(x)-edge:])

	return r, nil
}

// Aliases reports whether a frequency f in [0, fs/2] is an image of any
// frequency in [low, high] when sampled at fs.
func Aliases(f, low, high, fs float64) bool {
	// Images of f are m·fs + f and m·fs - f for integer m.
	for _, base := range []float64{f, -f} {
		mLo := math.Ceil((low - base) / fs)
		mHi := math.Floor((high - base) / fs)
		if mLo <= mHi {
			return true
		}
	}
	return false
}

func oneSidedPower(x []float64) ([]float64, int, error) {
	n := nextPowerOf2(len(x))

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, 0, fmt.Errorf("band: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}
	spec := make([]complex128, n)
	if err := plan.Forward(spec, in); err != nil {
		return nil, 0, fmt.Errorf("band: forward FFT failed: %w", err)
	}

	half := n/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)
	for k := range half {
		re[k] = real(spec[k])
		im[k] = imag(spec[k])
	}

	power := make([]float64, half)
	vecmath.Power(power, re, im)

	return power, n, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func maxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

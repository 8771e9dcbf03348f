package chirp

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Errors returned by chirp functions.
var (
	ErrInvalidDuration  = errors.New("chirp: duration must be positive and finite")
	ErrInvalidSamples   = errors.New("chirp: sample count must be >= 0")
	ErrInvalidFrequency = errors.New("chirp: frequency must be finite")
	ErrInvalidAmplitude = errors.New("chirp: amplitude must be finite")
	ErrInvalidBandwidth = errors.New("chirp: bandwidth must be >= 0 and finite")
)

// Params describes one linear chirp.
type Params struct {
	StartFreq float64 // f1 in Hz
	EndFreq   float64 // f2 in Hz
	Duration  float64 // T in seconds
	Samples   int     // number of points in the waveform
	Amplitude float64 // peak amplitude
	Reverse   bool    // time-reverse the output
}

// Band returns start and end frequencies of a sweep centered on center
// with the given total bandwidth.
func Band(center, bandwidth float64) (f1, f2 float64, err error) {
	if math.IsNaN(center) || math.IsInf(center, 0) {
		return 0, 0, ErrInvalidFrequency
	}
	if bandwidth < 0 || math.IsNaN(bandwidth) || math.IsInf(bandwidth, 0) {
		return 0, 0, ErrInvalidBandwidth
	}

	return center - bandwidth/2, center + bandwidth/2, nil
}

// Validate checks that the parameters describe a computable chirp.
func (p Params) Validate() error {
	if p.Duration <= 0 || math.IsNaN(p.Duration) || math.IsInf(p.Duration, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidDuration, p.Duration)
	}
	if p.Samples < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSamples, p.Samples)
	}
	if !finite(p.StartFreq) || !finite(p.EndFreq) {
		return fmt.Errorf("%w: f1=%g f2=%g", ErrInvalidFrequency, p.StartFreq, p.EndFreq)
	}
	if !finite(p.Amplitude) {
		return fmt.Errorf("%w: %g", ErrInvalidAmplitude, p.Amplitude)
	}

	return nil
}

// SampleRate returns the uniform sampling rate Samples/Duration in Hz.
func (p Params) SampleRate() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return float64(p.Samples) / p.Duration
}

// Slope returns the sweep term slope (f2-f1)/(2T) in Hz/s.
func (p Params) Slope() float64 {
	return (p.EndFreq - p.StartFreq) / (2 * p.Duration)
}

// InstantaneousFrequency returns the phase derivative d/dt(t·f(t)) at
// time t of the forward (non-reversed) sweep.
func (p Params) InstantaneousFrequency(t float64) float64 {
	return p.StartFreq + 2*p.Slope()*t
}

// Generate synthesizes the chirp described by p.
//
// A zero sample count yields an empty, non-nil slice.
func (p Params) Generate() ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, p.Samples)
	m := p.Slope()
	n := float64(p.Samples)

	for i := range out {
		t := float64(i) * p.Duration / n
		freq := m*t + p.StartFreq
		out[i] = p.Amplitude * math.Sin(2*math.Pi*t*freq)
	}

	if p.Reverse {
		slices.Reverse(out)
	}

	return out, nil
}

// Generate is the positional form of Params.Generate.
func Generate(f1, f2, duration float64, samples int, amplitude float64, reverse bool) ([]float64, error) {
	return Params{
		StartFreq: f1,
		EndFreq:   f2,
		Duration:  duration,
		Samples:   samples,
		Amplitude: amplitude,
		Reverse:   reverse,
	}.Generate()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

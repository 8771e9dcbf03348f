// Package excite runs the band-excitation pipeline: chirp synthesis,
// windowing, delay padding, repetition, cantilever scaling, channel packing
// and emission on a dac.Device.
package excite

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-bexcite/dac"
	"github.com/cwbudde/algo-bexcite/dsp/chirp"
)

// ErrInvalidParams wraps every parameter validation failure.
var ErrInvalidParams = errors.New("excite: invalid parameters")

// Params holds everything one excitation run needs.
type Params struct {
	CenterFreq  float64 // Hz
	Bandwidth   float64 // Hz, full sweep width
	Duration    float64 // seconds per chirp
	Points      int     // samples per chirp
	Repetitions int
	Amplitude   float64 // volts on channel 0
	Smoothing   float64 // envelope σ, same unit as Duration
	ChirpUp     bool    // false time-reverses the chirp
	PreDelay    int     // zero samples before each chirp
	PostDelay   int     // zero samples after each chirp

	// CantileverScale multiplies the excitation to form channel 1.
	CantileverScale float64

	Divider int
	Gains   [dac.Channels]dac.Gain
}

// DefaultParams returns the reference band-excitation setup: a 470–530 kHz
// up-chirp of 1000 points over 4 ms, repeated twice, with the cantilever
// channel at four times the excitation.
func DefaultParams() Params {
	return Params{
		CenterFreq:      500e3,
		Bandwidth:       60e3,
		Duration:        4e-3,
		Points:          1000,
		Repetitions:     2,
		Amplitude:       1,
		Smoothing:       125,
		ChirpUp:         true,
		CantileverScale: 4,
		Divider:         2,
		Gains:           [dac.Channels]dac.Gain{dac.GainHigh, dac.GainHigh},
	}
}

// Chirp returns the chirp parameters derived from p.
func (p Params) Chirp() (chirp.Params, error) {
	f1, f2, err := chirp.Band(p.CenterFreq, p.Bandwidth)
	if err != nil {
		return chirp.Params{}, err
	}
	return chirp.Params{
		StartFreq: f1,
		EndFreq:   f2,
		Duration:  p.Duration,
		Samples:   p.Points,
		Amplitude: p.Amplitude,
		Reverse:   !p.ChirpUp,
	}, nil
}

// Samples returns the packed length: (pre + points + post) · repetitions.
func (p Params) Samples() int {
	return (p.PreDelay + p.Points + p.PostDelay) * p.Repetitions
}

// Validate checks p without touching a device.
func (p Params) Validate() error {
	cp, err := p.Chirp()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if err := cp.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if p.Smoothing <= 0 {
		return fmt.Errorf("%w: smoothing must be > 0: %g", ErrInvalidParams, p.Smoothing)
	}
	if p.PreDelay < 0 || p.PostDelay < 0 {
		return fmt.Errorf("%w: delays must be >= 0: pre=%d post=%d", ErrInvalidParams, p.PreDelay, p.PostDelay)
	}
	if p.Repetitions < 0 {
		return fmt.Errorf("%w: repetitions must be >= 0: %d", ErrInvalidParams, p.Repetitions)
	}
	if p.Divider < 1 || p.Divider > dac.MaxDivider {
		return fmt.Errorf("%w: divider %d not in [1, %d]", ErrInvalidParams, p.Divider, dac.MaxDivider)
	}
	for ch, g := range p.Gains {
		if !g.Valid() {
			return fmt.Errorf("%w: channel %d gain %d", ErrInvalidParams, ch, int(g))
		}
	}
	return nil
}

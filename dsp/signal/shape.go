// Package signal reshapes sample sequences: zero padding, repetition and
// scaling. Every function returns a new slice and leaves its input intact.
package signal

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by shaping functions.
var (
	ErrNegativeDelay       = errors.New("signal: delay must be >= 0")
	ErrNegativeRepetitions = errors.New("signal: repetitions must be >= 0")
)

// Pad returns pre zero samples, then data, then post zero samples.
// Negative counts are rejected.
func Pad(data []float64, pre, post int) ([]float64, error) {
	if pre < 0 || post < 0 {
		return nil, fmt.Errorf("%w: pre=%d post=%d", ErrNegativeDelay, pre, post)
	}

	out := make([]float64, pre+len(data)+post)
	copy(out[pre:], data)

	return out, nil
}

// Repeat returns data concatenated with itself n times without gaps.
// n == 0 yields an empty slice and n == 1 a copy.
func Repeat(data []float64, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeRepetitions, n)
	}

	out := make([]float64, 0, n*len(data))
	for range n {
		out = append(out, data...)
	}

	return out, nil
}

// Scale returns a copy of data multiplied by gain.
func Scale(data []float64, gain float64) []float64 {
	out := make([]float64, len(data))
	if len(data) == 0 {
		return out
	}

	vecmath.ScaleBlock(out, data, gain)

	return out
}

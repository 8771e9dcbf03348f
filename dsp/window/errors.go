package window

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by window functions.
var (
	ErrInvalidSmoothing = errors.New("window: smoothing must be positive and finite")
	ErrInvalidDuration  = errors.New("window: duration must be positive and finite")

	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")
	errMismatchedLength = errors.New("samples and coefficients must have same length")
)

func validateLength(size int) error {
	if size < 0 {
		return fmt.Errorf("window size must be >= 0: %d", size)
	}
	return nil
}

func validateErfEdges(size int, smoothing, duration float64) error {
	if err := validateLength(size); err != nil {
		return err
	}
	if smoothing <= 0 || math.IsNaN(smoothing) || math.IsInf(smoothing, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidSmoothing, smoothing)
	}
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidDuration, duration)
	}
	return nil
}

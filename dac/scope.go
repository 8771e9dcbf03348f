package dac

import (
	"errors"
	"fmt"
)

// WithBuffer allocates a buffer of samples words from dev, runs fn with it,
// and releases it afterwards whether or not fn fails. A release failure is
// joined with the error from fn.
func WithBuffer(dev Device, samples int, fn func(buf *Buffer) error) (err error) {
	buf, err := dev.Allocate(samples)
	if err != nil {
		return fmt.Errorf("allocate %d samples: %w", samples, err)
	}

	defer func() {
		if relErr := dev.Release(buf); relErr != nil {
			err = errors.Join(err, fmt.Errorf("release buffer: %w", relErr))
		}
	}()

	return fn(buf)
}

package dac

import (
	"errors"
	"fmt"
)

// Errors returned by packing and device operations.
var (
	ErrChannelLength  = errors.New("dac: channel lengths differ")
	ErrBufferSize     = errors.New("dac: buffer too small for channel data")
	ErrInvalidChannel = errors.New("dac: invalid channel")
	ErrInvalidGain    = errors.New("dac: invalid gain")
	ErrInvalidDivider = errors.New("dac: sample rate divider out of range")
	ErrInvalidLength  = errors.New("dac: buffer length out of range")
	ErrUnknownBuffer  = errors.New("dac: buffer not allocated by this device")
	ErrNoData         = errors.New("dac: start without transferred data")
	ErrBusy           = errors.New("dac: output running, stop before transfer")
	ErrNilOutput      = errors.New("dac: output must not be nil")
)

// Channels is the number of output channels in a packed word.
const Channels = 2

// Converter maps a voltage on a channel to the device's signed raw code.
// Saturation happens here, not in the packer.
type Converter interface {
	VoltsToRaw(volts float64, channel int) int16
}

// Device is the output sink driven by the excitation pipeline.
//
// Calls are synchronous and blocking. A Buffer obtained from Allocate must be
// handed back to Release exactly once; see WithBuffer.
type Device interface {
	Converter

	Allocate(samples int) (*Buffer, error)
	Release(buf *Buffer) error
	SetSampleRateDivider(divider int) error
	SetGain(channel int, gain Gain) error
	Transfer(buf *Buffer) error
	Start() error
	Stop() error
}

// Buffer holds packed channel words owned by the device that allocated it.
type Buffer struct {
	Words []uint32

	id uint64
}

// Len returns the number of words.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Words)
}

// Gain selects a channel's output range.
type Gain int

const (
	// GainLow is the ±1.25 V range.
	GainLow Gain = iota
	// GainHigh is the ±5 V range.
	GainHigh
)

// Valid reports whether g names a supported range.
func (g Gain) Valid() bool {
	return g == GainLow || g == GainHigh
}

// FullScale returns the positive full-scale voltage of the range.
func (g Gain) FullScale() float64 {
	if g == GainHigh {
		return 5.0
	}
	return 1.25
}

func (g Gain) String() string {
	switch g {
	case GainLow:
		return "low"
	case GainHigh:
		return "high"
	default:
		return fmt.Sprintf("Gain(%d)", int(g))
	}
}

func validateChannel(channel int) error {
	if channel < 0 || channel >= Channels {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, channel)
	}
	return nil
}

package dac

import (
	"fmt"
	"math"
	"sync"

	"github.com/golang/glog"

	"github.com/cwbudde/algo-bexcite/dsp/core"
)

// Converter characteristics of the modeled DAC.
const (
	Resolution = 14
	CodeMax    = 1<<(Resolution-1) - 1
	CodeMin    = -(1 << (Resolution - 1))

	// BaseClock is the undivided output sample rate in Hz.
	BaseClock = 100e6

	MaxDivider        = 1<<Resolution - 1
	DefaultMaxSamples = 1<<Resolution - 1

	// DefaultFlashAddress is the I2C address of the calibration flash.
	DefaultFlashAddress = 0x31
)

// Calibration adjusts the ideal transfer function of one channel/range pair:
// the converted voltage is volts·Mult + Add.
type Calibration struct {
	Mult float64
	Add  float64
}

// Config describes one device instance. Address fields replace the register
// globals of a bare-metal build and are reported with every frame.
type Config struct {
	Name           string
	BaseAddress    uint64
	DMABaseAddress uint64
	IICBaseAddress uint64
	FlashAddress   uint8
	DMAIRQ         int
	MaxSamples     int

	// Calibration is indexed by [channel][gain].
	Calibration [Channels][2]Calibration
}

// DefaultConfig returns an ideal, uncalibrated device.
func DefaultConfig() Config {
	cfg := Config{
		Name:         "zmoddac1411",
		FlashAddress: DefaultFlashAddress,
		MaxSamples:   DefaultMaxSamples,
	}
	for ch := range cfg.Calibration {
		for g := range cfg.Calibration[ch] {
			cfg.Calibration[ch][g] = Calibration{Mult: 1}
		}
	}
	return cfg
}

// Validate checks the static configuration.
func (c Config) Validate() error {
	if c.MaxSamples <= 0 {
		return fmt.Errorf("%w: max samples %d", ErrInvalidLength, c.MaxSamples)
	}
	for ch, row := range c.Calibration {
		for g, cal := range row {
			if cal.Mult <= 0 || math.IsNaN(cal.Mult) || math.IsInf(cal.Mult, 0) {
				return fmt.Errorf("dac: calibration mult for channel %d gain %d must be > 0: %g", ch, g, cal.Mult)
			}
			if math.IsNaN(cal.Add) || math.IsInf(cal.Add, 0) {
				return fmt.Errorf("dac: calibration add for channel %d gain %d must be finite", ch, g)
			}
		}
	}
	return nil
}

// Zmod is a register-level model of a two-channel 14-bit DAC. Finished
// frames go to its Output on Start.
type Zmod struct {
	cfg Config
	out Output

	mu      sync.Mutex
	divider int
	gains   [Channels]Gain
	nextID  uint64
	live    map[uint64]int
	staged  []uint32
	running bool
}

var _ Device = (*Zmod)(nil)

// NewZmod creates a device writing frames to out. Both channels start on
// GainLow with divider 1.
func NewZmod(cfg Config, out Output) (*Zmod, error) {
	if out == nil {
		return nil, ErrNilOutput
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	glog.V(1).Infof("dac %s: base=%#x dma=%#x iic=%#x flash=%#x irq=%d",
		cfg.Name, cfg.BaseAddress, cfg.DMABaseAddress, cfg.IICBaseAddress, cfg.FlashAddress, cfg.DMAIRQ)

	return &Zmod{
		cfg:     cfg,
		out:     out,
		divider: 1,
		live:    make(map[uint64]int),
	}, nil
}

// Config returns the device configuration.
func (z *Zmod) Config() Config {
	return z.cfg
}

// Allocate returns a zeroed buffer of samples words.
func (z *Zmod) Allocate(samples int) (*Buffer, error) {
	if samples <= 0 || samples > z.cfg.MaxSamples {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidLength, samples, z.cfg.MaxSamples)
	}

	z.mu.Lock()
	defer z.mu.Unlock()

	z.nextID++
	z.live[z.nextID] = samples
	glog.V(2).Infof("dac %s: allocated buffer %d (%d words)", z.cfg.Name, z.nextID, samples)

	return &Buffer{Words: make([]uint32, samples), id: z.nextID}, nil
}

// Release returns a buffer obtained from Allocate.
func (z *Zmod) Release(buf *Buffer) error {
	if buf == nil {
		return fmt.Errorf("%w: nil", ErrUnknownBuffer)
	}

	z.mu.Lock()
	defer z.mu.Unlock()

	if _, ok := z.live[buf.id]; !ok {
		return fmt.Errorf("%w: id %d", ErrUnknownBuffer, buf.id)
	}
	delete(z.live, buf.id)
	glog.V(2).Infof("dac %s: released buffer %d", z.cfg.Name, buf.id)

	return nil
}

// Outstanding returns the number of allocated, unreleased buffers.
func (z *Zmod) Outstanding() int {
	z.mu.Lock()
	defer z.mu.Unlock()
	return len(z.live)
}

// VoltsToRaw converts volts on channel to a 14-bit signed code using the
// channel's current gain and calibration. The result is truncated toward
// zero and saturates at CodeMin and CodeMax. An invalid channel or NaN
// voltage yields 0.
func (z *Zmod) VoltsToRaw(volts float64, channel int) int16 {
	if validateChannel(channel) != nil || math.IsNaN(volts) {
		return 0
	}

	z.mu.Lock()
	gain := z.gains[channel]
	z.mu.Unlock()

	cal := z.cfg.Calibration[channel][gain]
	v := volts*cal.Mult + cal.Add
	return int16(core.Quantize(v*(1<<(Resolution-1))/gain.FullScale(), CodeMin, CodeMax))
}

// SetSampleRateDivider sets the output rate to BaseClock/divider.
func (z *Zmod) SetSampleRateDivider(divider int) error {
	if divider < 1 || divider > MaxDivider {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidDivider, divider, MaxDivider)
	}

	z.mu.Lock()
	defer z.mu.Unlock()
	z.divider = divider

	return nil
}

// SampleRate returns the configured output rate in Hz.
func (z *Zmod) SampleRate() float64 {
	z.mu.Lock()
	defer z.mu.Unlock()
	return BaseClock / float64(z.divider)
}

// SetGain selects the output range of a channel.
func (z *Zmod) SetGain(channel int, gain Gain) error {
	if err := validateChannel(channel); err != nil {
		return err
	}
	if !gain.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidGain, int(gain))
	}

	z.mu.Lock()
	defer z.mu.Unlock()
	z.gains[channel] = gain

	return nil
}

// Gain returns the current range of a channel.
func (z *Zmod) Gain(channel int) Gain {
	if validateChannel(channel) != nil {
		return GainLow
	}
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.gains[channel]
}

// Transfer copies the buffer contents into the device. The buffer can be
// released afterwards without affecting the output.
func (z *Zmod) Transfer(buf *Buffer) error {
	if buf == nil {
		return fmt.Errorf("%w: nil", ErrUnknownBuffer)
	}

	z.mu.Lock()
	defer z.mu.Unlock()

	if z.running {
		return ErrBusy
	}
	if _, ok := z.live[buf.id]; !ok {
		return fmt.Errorf("%w: id %d", ErrUnknownBuffer, buf.id)
	}

	z.staged = append(z.staged[:0], buf.Words...)
	glog.V(2).Infof("dac %s: transferred %d words", z.cfg.Name, len(z.staged))

	return nil
}

// Start emits the transferred data to the output.
func (z *Zmod) Start() error {
	z.mu.Lock()
	defer z.mu.Unlock()

	if len(z.staged) == 0 {
		return ErrNoData
	}

	frame := Frame{
		Device:     z.cfg.Name,
		Words:      append([]uint32(nil), z.staged...),
		Divider:    z.divider,
		SampleRate: BaseClock / float64(z.divider),
		Gains:      z.gains,
	}
	if err := z.out.Write(frame); err != nil {
		return fmt.Errorf("dac %s: write frame: %w", z.cfg.Name, err)
	}
	z.running = true
	glog.V(1).Infof("dac %s: started %d words at %.0f Hz", z.cfg.Name, len(frame.Words), frame.SampleRate)

	return nil
}

// Stop halts output so new data can be transferred.
func (z *Zmod) Stop() error {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.running = false
	return nil
}

// Running reports whether output is active.
func (z *Zmod) Running() bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.running
}

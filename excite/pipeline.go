package excite

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/cwbudde/algo-bexcite/dac"
	"github.com/cwbudde/algo-bexcite/dsp/signal"
	"github.com/cwbudde/algo-bexcite/dsp/window"
)

// Waveforms are the two synthesized channels.
type Waveforms struct {
	Excitation []float64 // channel 0
	Cantilever []float64 // channel 1
}

// Len returns the per-channel sample count.
func (w Waveforms) Len() int {
	return len(w.Excitation)
}

// Build synthesizes both channels from p.
func Build(p Params) (Waveforms, error) {
	if err := p.Validate(); err != nil {
		return Waveforms{}, err
	}
	cp, err := p.Chirp()
	if err != nil {
		return Waveforms{}, err
	}

	x, err := cp.Generate()
	if err != nil {
		return Waveforms{}, fmt.Errorf("generate chirp: %w", err)
	}
	glog.V(1).Infof("chirp %.0f-%.0f Hz, %d points over %gs, reverse=%t",
		cp.StartFreq, cp.EndFreq, cp.Samples, cp.Duration, cp.Reverse)

	if err := window.ApplyErfEdges(x, p.Smoothing, p.Duration); err != nil {
		return Waveforms{}, fmt.Errorf("apply window: %w", err)
	}

	x, err = signal.Pad(x, p.PreDelay, p.PostDelay)
	if err != nil {
		return Waveforms{}, fmt.Errorf("pad: %w", err)
	}

	x, err = signal.Repeat(x, p.Repetitions)
	if err != nil {
		return Waveforms{}, fmt.Errorf("repeat: %w", err)
	}

	w := Waveforms{
		Excitation: x,
		Cantilever: signal.Scale(x, p.CantileverScale),
	}
	glog.V(1).Infof("built %d samples per channel (cantilever x%g)", w.Len(), p.CantileverScale)

	return w, nil
}

// Configure programs divider and channel gains. Gains must be set before
// packing since the volts-to-code conversion depends on them.
func Configure(dev dac.Device, p Params) error {
	if err := dev.SetSampleRateDivider(p.Divider); err != nil {
		return fmt.Errorf("set divider: %w", err)
	}
	for ch, g := range p.Gains {
		if err := dev.SetGain(ch, g); err != nil {
			return fmt.Errorf("set gain channel %d: %w", ch, err)
		}
	}
	return nil
}

// Emit packs w into a device buffer, transfers it and starts output. The
// buffer is released on every path.
func Emit(dev dac.Device, w Waveforms) error {
	if len(w.Excitation) != len(w.Cantilever) {
		return fmt.Errorf("%w: %d != %d", dac.ErrChannelLength, len(w.Excitation), len(w.Cantilever))
	}

	return dac.WithBuffer(dev, w.Len(), func(buf *dac.Buffer) error {
		if err := dac.Pack(buf, w.Excitation, w.Cantilever, dev); err != nil {
			return fmt.Errorf("pack: %w", err)
		}
		if err := dev.Transfer(buf); err != nil {
			return fmt.Errorf("transfer: %w", err)
		}
		if err := dev.Start(); err != nil {
			return fmt.Errorf("start: %w", err)
		}
		return nil
	})
}

// Run builds the waveforms for p, configures dev and emits them.
func Run(dev dac.Device, p Params) (Waveforms, error) {
	w, err := Build(p)
	if err != nil {
		return Waveforms{}, err
	}
	if err := Configure(dev, p); err != nil {
		return w, err
	}
	if err := Emit(dev, w); err != nil {
		return w, err
	}
	glog.Infof("emitting %d samples on %d channels", w.Len(), dac.Channels)

	return w, nil
}

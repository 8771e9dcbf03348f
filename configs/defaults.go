package configs

import (
	"time"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-bexcite/dac"
	"github.com/cwbudde/algo-bexcite/excite"
)

// setDefaults sets default configuration values for all components
func setDefaults(v *viper.Viper) {
	p := excite.DefaultParams()

	// Chirp defaults
	v.SetDefault("chirp.center_freq", p.CenterFreq)
	v.SetDefault("chirp.bandwidth", p.Bandwidth)
	v.SetDefault("chirp.duration", p.Duration)
	v.SetDefault("chirp.points", p.Points)
	v.SetDefault("chirp.repetitions", p.Repetitions)
	v.SetDefault("chirp.amplitude", p.Amplitude)
	v.SetDefault("chirp.smoothing", p.Smoothing)
	v.SetDefault("chirp.up", p.ChirpUp)
	v.SetDefault("chirp.pre_delay", p.PreDelay)
	v.SetDefault("chirp.post_delay", p.PostDelay)

	// Cantilever defaults
	v.SetDefault("cantilever.scale", p.CantileverScale)

	// Device defaults
	d := dac.DefaultConfig()
	v.SetDefault("dac.name", d.Name)
	v.SetDefault("dac.base_address", d.BaseAddress)
	v.SetDefault("dac.dma_base_address", d.DMABaseAddress)
	v.SetDefault("dac.iic_base_address", d.IICBaseAddress)
	v.SetDefault("dac.flash_address", d.FlashAddress)
	v.SetDefault("dac.dma_irq", d.DMAIRQ)
	v.SetDefault("dac.max_samples", d.MaxSamples)
	v.SetDefault("dac.divider", p.Divider)
	v.SetDefault("dac.gain", []int{int(p.Gains[0]), int(p.Gains[1])})
	for _, ch := range []string{"ch0", "ch1"} {
		for _, g := range []string{"low", "high"} {
			v.SetDefault("dac.calibration."+ch+"."+g+".mult", 1.0)
			v.SetDefault("dac.calibration."+ch+"."+g+".add", 0.0)
		}
	}

	// Output defaults
	v.SetDefault("output.sink", SinkMemory)
	v.SetDefault("output.path", "")
	v.SetDefault("output.broker", "")
	v.SetDefault("output.qos", 1)
	v.SetDefault("output.retain", false)
	v.SetDefault("output.timeout", 5*time.Second)
}

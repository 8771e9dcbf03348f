package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-bexcite/dac"
	"github.com/cwbudde/algo-bexcite/excite"
)

// Sink names accepted in output.sink.
const (
	SinkMemory = "memory"
	SinkFile   = "file"
	SinkMQTT   = "mqtt"
)

// Config represents the application configuration
type Config struct {
	Chirp      ChirpConfig      `mapstructure:"chirp" yaml:"chirp"`
	Cantilever CantileverConfig `mapstructure:"cantilever" yaml:"cantilever"`
	DAC        DACConfig        `mapstructure:"dac" yaml:"dac"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
}

// ChirpConfig describes the band-excitation chirp
type ChirpConfig struct {
	CenterFreq  float64 `mapstructure:"center_freq" yaml:"center_freq"`
	Bandwidth   float64 `mapstructure:"bandwidth" yaml:"bandwidth"`
	Duration    float64 `mapstructure:"duration" yaml:"duration"`
	Points      int     `mapstructure:"points" yaml:"points"`
	Repetitions int     `mapstructure:"repetitions" yaml:"repetitions"`
	Amplitude   float64 `mapstructure:"amplitude" yaml:"amplitude"`
	Smoothing   float64 `mapstructure:"smoothing" yaml:"smoothing"`
	Up          bool    `mapstructure:"up" yaml:"up"`
	PreDelay    int     `mapstructure:"pre_delay" yaml:"pre_delay"`
	PostDelay   int     `mapstructure:"post_delay" yaml:"post_delay"`
}

// CantileverConfig describes the second channel
type CantileverConfig struct {
	Scale float64 `mapstructure:"scale" yaml:"scale"`
}

// DACConfig contains device addressing and output settings
type DACConfig struct {
	Name           string            `mapstructure:"name" yaml:"name"`
	BaseAddress    uint64            `mapstructure:"base_address" yaml:"base_address"`
	DMABaseAddress uint64            `mapstructure:"dma_base_address" yaml:"dma_base_address"`
	IICBaseAddress uint64            `mapstructure:"iic_base_address" yaml:"iic_base_address"`
	FlashAddress   uint8             `mapstructure:"flash_address" yaml:"flash_address"`
	DMAIRQ         int               `mapstructure:"dma_irq" yaml:"dma_irq"`
	MaxSamples     int               `mapstructure:"max_samples" yaml:"max_samples"`
	Divider        int               `mapstructure:"divider" yaml:"divider"`
	Gain           []int             `mapstructure:"gain" yaml:"gain"`
	Calibration    CalibrationConfig `mapstructure:"calibration" yaml:"calibration"`
}

// CalibrationConfig holds per-channel transfer corrections
type CalibrationConfig struct {
	Ch0 ChannelCalibration `mapstructure:"ch0" yaml:"ch0"`
	Ch1 ChannelCalibration `mapstructure:"ch1" yaml:"ch1"`
}

// ChannelCalibration holds corrections for both gain ranges of a channel
type ChannelCalibration struct {
	Low  Coefficients `mapstructure:"low" yaml:"low"`
	High Coefficients `mapstructure:"high" yaml:"high"`
}

// Coefficients maps volts to volts·Mult + Add before quantization
type Coefficients struct {
	Mult float64 `mapstructure:"mult" yaml:"mult"`
	Add  float64 `mapstructure:"add" yaml:"add"`
}

// OutputConfig selects where started frames go
type OutputConfig struct {
	Sink    string        `mapstructure:"sink" yaml:"sink"`
	Path    string        `mapstructure:"path" yaml:"path"`
	Broker  string        `mapstructure:"broker" yaml:"broker"`
	QoS     int           `mapstructure:"qos" yaml:"qos"`
	Retain  bool          `mapstructure:"retain" yaml:"retain"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// EnvPrefix prefixes environment overrides, e.g. BECHIRP_CHIRP_POINTS.
const EnvPrefix = "BECHIRP"

// NewViper returns a viper instance that reads YAML and honours
// EnvPrefix environment overrides.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadFile reads path (when non-empty) and returns the merged configuration.
func LoadFile(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	return Load(v)
}

// Load fills unset keys with defaults and decodes v into a Config
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.DAC.Gain) != dac.Channels {
		return fmt.Errorf("dac.gain must list %d channels, got %d", dac.Channels, len(c.DAC.Gain))
	}

	if err := c.Params().Validate(); err != nil {
		return err
	}

	if err := c.Device().Validate(); err != nil {
		return err
	}

	switch c.Output.Sink {
	case SinkMemory:
	case SinkFile:
		if c.Output.Path == "" {
			return fmt.Errorf("output.path is required for the %s sink", SinkFile)
		}
	case SinkMQTT:
		if c.Output.Broker == "" {
			return fmt.Errorf("output.broker is required for the %s sink", SinkMQTT)
		}
		if c.Output.QoS < 0 || c.Output.QoS > 2 {
			return fmt.Errorf("output.qos must be 0, 1 or 2: %d", c.Output.QoS)
		}
	default:
		return fmt.Errorf("unknown output.sink %q (want %s, %s or %s)", c.Output.Sink, SinkMemory, SinkFile, SinkMQTT)
	}

	if c.Output.Timeout <= 0 {
		return fmt.Errorf("output.timeout must be positive")
	}

	return nil
}

// Params converts the configuration into pipeline parameters
func (c *Config) Params() excite.Params {
	p := excite.Params{
		CenterFreq:      c.Chirp.CenterFreq,
		Bandwidth:       c.Chirp.Bandwidth,
		Duration:        c.Chirp.Duration,
		Points:          c.Chirp.Points,
		Repetitions:     c.Chirp.Repetitions,
		Amplitude:       c.Chirp.Amplitude,
		Smoothing:       c.Chirp.Smoothing,
		ChirpUp:         c.Chirp.Up,
		PreDelay:        c.Chirp.PreDelay,
		PostDelay:       c.Chirp.PostDelay,
		CantileverScale: c.Cantilever.Scale,
		Divider:         c.DAC.Divider,
	}
	for ch := 0; ch < dac.Channels && ch < len(c.DAC.Gain); ch++ {
		p.Gains[ch] = dac.Gain(c.DAC.Gain[ch])
	}
	return p
}

// Device converts the configuration into a device description
func (c *Config) Device() dac.Config {
	cfg := dac.Config{
		Name:           c.DAC.Name,
		BaseAddress:    c.DAC.BaseAddress,
		DMABaseAddress: c.DAC.DMABaseAddress,
		IICBaseAddress: c.DAC.IICBaseAddress,
		FlashAddress:   c.DAC.FlashAddress,
		DMAIRQ:         c.DAC.DMAIRQ,
		MaxSamples:     c.DAC.MaxSamples,
	}
	for ch, cal := range []ChannelCalibration{c.DAC.Calibration.Ch0, c.DAC.Calibration.Ch1} {
		cfg.Calibration[ch][dac.GainLow] = dac.Calibration{Mult: cal.Low.Mult, Add: cal.Low.Add}
		cfg.Calibration[ch][dac.GainHigh] = dac.Calibration{Mult: cal.High.Mult, Add: cal.High.Add}
	}
	return cfg
}

// YAML renders the configuration as a config file
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return data, nil
}

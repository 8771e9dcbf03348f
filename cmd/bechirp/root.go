package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-bexcite/configs"
)

// flagKeys maps command flags to config keys.
var flagKeys = map[string]string{
	"center-freq": "chirp.center_freq",
	"bandwidth":   "chirp.bandwidth",
	"duration":    "chirp.duration",
	"points":      "chirp.points",
	"repetitions": "chirp.repetitions",
	"amplitude":   "chirp.amplitude",
	"smoothing":   "chirp.smoothing",
	"up":          "chirp.up",
	"pre-delay":   "chirp.pre_delay",
	"post-delay":  "chirp.post_delay",
	"scale":       "cantilever.scale",
	"divider":     "dac.divider",
	"sink":        "output.sink",
	"path":        "output.path",
	"broker":      "output.broker",
	"qos":         "output.qos",
	"timeout":     "output.timeout",
}

type options struct {
	configFile string
	v          *viper.Viper
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := newRootCmd().Execute()
	glog.Flush()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{v: configs.NewViper()}

	root := &cobra.Command{
		Use:   "bechirp",
		Short: "Band-excitation chirp generator for a two-channel DAC",
		Long: `bechirp synthesizes a linear chirp covering a frequency band around a
center frequency, shapes its edges with an error-function window, pads and
repeats it, and streams it with a scaled cantilever drive to a 14-bit
two-channel DAC.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.initConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&o.configFile, "config", "",
		"config file (default searches ./configs, $HOME/.config/bechirp and /etc/bechirp for bechirp.yaml)")
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	root.AddCommand(
		newRunCmd(o),
		newAnalyzeCmd(o),
		newExportCmd(o),
		newConfigCmd(o),
	)

	return root
}

// initConfig reads the config file and binds the executing command's flags
func (o *options) initConfig(cmd *cobra.Command) error {
	// glog complains unless the standard flag set has been parsed; pflag
	// already assigned its values.
	if !flag.Parsed() {
		if err := flag.CommandLine.Parse(nil); err != nil {
			return err
		}
	}

	if o.configFile != "" {
		o.v.SetConfigFile(o.configFile)
	} else {
		o.v.SetConfigName("bechirp")
		o.v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			o.v.AddConfigPath(filepath.Join(home, ".config", "bechirp"))
		}
		o.v.AddConfigPath("/etc/bechirp")
	}

	if err := o.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if o.configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		glog.V(1).Info("no config file found, using defaults")
	} else {
		glog.V(1).Infof("using config file %s", o.v.ConfigFileUsed())
	}

	return bindFlags(cmd, o.v)
}

// bindFlags binds each known cobra flag to its viper key
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

// load decodes and validates the merged configuration
func (o *options) load() (*configs.Config, error) {
	cfg, err := configs.Load(o.v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// addChirpFlags registers the waveform flags shared by every command that
// builds an excitation. Defaults come from the config layer, so the flag
// defaults only document the type.
func addChirpFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("center-freq", 0, "chirp center frequency in Hz")
	f.Float64("bandwidth", 0, "chirp bandwidth in Hz")
	f.Float64("duration", 0, "chirp duration in seconds")
	f.Int("points", 0, "samples per chirp")
	f.Int("repetitions", 0, "number of back-to-back chirps")
	f.Float64("amplitude", 0, "chirp amplitude in volts")
	f.Float64("smoothing", 0, "edge window smoothing factor")
	f.Bool("up", true, "sweep upward (false sweeps downward)")
	f.Int("pre-delay", 0, "zero samples before each chirp")
	f.Int("post-delay", 0, "zero samples after each chirp")
	f.Float64("scale", 0, "cantilever channel gain relative to the excitation")
	f.Int("divider", 0, "DAC sample-rate divider")
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bexcite/configs"
	"github.com/cwbudde/algo-bexcite/dac"
	"github.com/cwbudde/algo-bexcite/dac/mqttsink"
	"github.com/cwbudde/algo-bexcite/excite"
)

func newRunCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate the excitation and start the DAC",
		Long: `Build the excitation and cantilever waveforms, configure the DAC, pack
both channels into one buffer and start output. Frames go to the sink named by
output.sink: memory keeps them in process, file appends the packed words
little-endian, mqtt publishes them to <prefix>/meta and <prefix>/frame.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			return runExcitation(cmd.OutOrStdout(), cfg)
		},
	}

	addChirpFlags(cmd)
	f := cmd.Flags()
	f.String("sink", configs.SinkMemory, "frame sink (memory, file, mqtt)")
	f.String("path", "", "output file for the file sink")
	f.String("broker", "", "broker URL for the mqtt sink, e.g. mqtt://localhost:1883/lab/dac0")
	f.Int("qos", 1, "MQTT quality of service")
	f.Duration("timeout", 0, "MQTT connect and publish timeout")

	return cmd
}

func runExcitation(w io.Writer, cfg *configs.Config) (err error) {
	out, closeOut, err := openOutput(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	dev, err := dac.NewZmod(cfg.Device(), out)
	if err != nil {
		return err
	}

	wave, err := excite.Run(dev, cfg.Params())
	if err != nil {
		glog.Errorf("excitation on %s failed: %v", dev.Config().Name, err)
		return fmt.Errorf("run excitation: %w", err)
	}

	fmt.Fprintf(w, "device:      %s\n", dev.Config().Name)
	fmt.Fprintf(w, "samples:     %d\n", wave.Len())
	fmt.Fprintf(w, "sample rate: %.0f Hz (divider %d)\n", dev.SampleRate(), cfg.DAC.Divider)
	fmt.Fprintf(w, "gains:       %s, %s\n", dev.Gain(0), dev.Gain(1))
	fmt.Fprintf(w, "sink:        %s\n", cfg.Output.Sink)

	return nil
}

// openOutput returns the configured frame sink and its close function.
func openOutput(cfg *configs.Config) (dac.Output, func() error, error) {
	switch cfg.Output.Sink {
	case configs.SinkFile:
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("create output file: %w", err)
		}
		glog.V(1).Infof("writing frames to %s", cfg.Output.Path)
		return dac.NewFileOutput(f), f.Close, nil
	case configs.SinkMQTT:
		out, err := mqttsink.Dial(cfg.Output.Broker, mqttsink.Options{
			QoS:     byte(cfg.Output.QoS),
			Retain:  cfg.Output.Retain,
			Timeout: cfg.Output.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return out, out.Close, nil
	default:
		return &dac.MemoryOutput{}, func() error { return nil }, nil
	}
}

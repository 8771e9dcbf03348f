package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bexcite/configs"
	"github.com/cwbudde/algo-bexcite/dac"
	"github.com/cwbudde/algo-bexcite/dsp/core"
	"github.com/cwbudde/algo-bexcite/dsp/window"
	"github.com/cwbudde/algo-bexcite/excite"
	"github.com/cwbudde/algo-bexcite/measure/band"
	"github.com/cwbudde/algo-bexcite/stats/level"
)

func newAnalyzeCmd(o *options) *cobra.Command {
	var edges int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Report spectral and envelope properties of the excitation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			return analyze(cmd.OutOrStdout(), cfg, edges)
		},
	}

	addChirpFlags(cmd)
	cmd.Flags().IntVar(&edges, "edges", 8, "samples inspected at each end")

	return cmd
}

func analyze(w io.Writer, cfg *configs.Config, edges int) error {
	p := cfg.Params()
	wave, err := excite.Build(p)
	if err != nil {
		return err
	}
	c, err := p.Chirp()
	if err != nil {
		return err
	}

	low, high := math.Min(c.StartFreq, c.EndFreq), math.Max(c.StartFreq, c.EndFreq)
	fs := c.SampleRate()
	if fs < 2*high {
		glog.Warningf("chirp rate %.0f Hz is below twice the band top %.0f Hz, the band folds", fs, high)
	}
	rep, err := band.Analyze(wave.Excitation, fs, band.Options{Low: low, High: high, EdgeSamples: edges})
	if err != nil {
		return err
	}

	env, err := window.ErfEdges(p.Points, p.Smoothing, p.Duration)
	if err != nil {
		return err
	}
	win := window.Analyze(env)

	dacRate := dac.BaseClock / float64(p.Divider)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "band\t%.0f .. %.0f Hz\n", low, high)
	fmt.Fprintf(tw, "samples\t%d (fft %d)\n", rep.Samples, rep.FFTSize)
	fmt.Fprintf(tw, "chirp rate\t%.0f Hz\n", fs)
	fmt.Fprintf(tw, "dac rate\t%.0f Hz\n", dacRate)
	fmt.Fprintf(tw, "aliased\t%t\n", fs < 2*high)
	fmt.Fprintf(tw, "peak\t%.0f Hz (in band %t)\n", rep.PeakFreq, band.Aliases(rep.PeakFreq, low, high, fs))
	fmt.Fprintf(tw, "in-band power\t%.4f (%.2f dB)\n", rep.InBandRatio, core.LinearPowerToDB(rep.InBandRatio))
	fmt.Fprintf(tw, "centroid\t%.0f Hz (spread %.0f Hz)\n", rep.Spectrum.Centroid, rep.Spectrum.Spread)
	fmt.Fprintf(tw, "3 dB width\t%.0f Hz\n", rep.Spectrum.Bandwidth)
	fmt.Fprintf(tw, "rms\t%.6f V\n", rep.RMS)
	fmt.Fprintf(tw, "crest factor\t%.4f (%.2f dB)\n", rep.CrestFactor, core.LinearToDB(rep.CrestFactor))
	for ch, sig := range [][]float64{wave.Excitation, wave.Cantilever} {
		lv := level.Calculate(sig)
		full := p.Gains[ch].FullScale()
		fmt.Fprintf(tw, "ch%d headroom\t%.2f dB of ±%g V (%d clipped)\n",
			ch, level.Headroom(lv.Peak, full), full, level.Clipped(sig, full))
	}
	fmt.Fprintf(tw, "edge start\t%.6g V\n", rep.EdgeStart)
	fmt.Fprintf(tw, "edge end\t%.6g V\n", rep.EdgeEnd)
	fmt.Fprintf(tw, "window gain\t%.6f\n", win.CoherentGain)
	fmt.Fprintf(tw, "window enbw\t%.4f bins\n", win.ENBW)
	fmt.Fprintf(tw, "window flat\t%.4f\n", win.FlatFraction)
	fmt.Fprintf(tw, "window rise/fall\t%d / %d samples\n", win.RiseSamples, win.FallSamples)

	return tw.Flush()
}

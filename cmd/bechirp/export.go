package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bexcite/configs"
	"github.com/cwbudde/algo-bexcite/excite"
)

func newExportCmd(o *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write both channels as CSV",
		Long: `Write index, time, excitation and cantilever columns as CSV. Time is
measured at the chirp sample rate (points / duration).`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := o.load()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer func() {
					if cerr := f.Close(); cerr != nil && err == nil {
						err = cerr
					}
				}()
				w = f
			}

			return exportCSV(w, cfg)
		},
	}

	addChirpFlags(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "-", "destination file, - for stdout")

	return cmd
}

func exportCSV(w io.Writer, cfg *configs.Config) error {
	p := cfg.Params()
	wave, err := excite.Build(p)
	if err != nil {
		return err
	}
	c, err := p.Chirp()
	if err != nil {
		return err
	}
	fs := c.SampleRate()

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "time", "excitation", "cantilever"}); err != nil {
		return err
	}
	for i := range wave.Excitation {
		rec := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(float64(i)/fs, 'g', -1, 64),
			strconv.FormatFloat(wave.Excitation[i], 'g', -1, 64),
			strconv.FormatFloat(wave.Cantilever[i], 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

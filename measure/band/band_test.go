package band

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-bexcite/internal/testutil"
)

func TestAnalyzePureTone(t *testing.T) {
	x := testutil.Tone(1000, 8000, 1, 1024)

	r, err := Analyze(x, 8000, Options{Low: 900, High: 1100})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.FFTSize != 1024 {
		t.Fatalf("FFTSize=%d, want 1024", r.FFTSize)
	}
	if math.Abs(r.PeakFreq-1000) > 1e-9 {
		t.Fatalf("PeakFreq=%v, want 1000", r.PeakFreq)
	}
	if r.InBandRatio < 0.99 {
		t.Fatalf("InBandRatio=%v, want > 0.99", r.InBandRatio)
	}
	if math.Abs(r.RMS-1/math.Sqrt2) > 1e-3 {
		t.Fatalf("RMS=%v, want ~0.707", r.RMS)
	}
	if math.Abs(r.CrestFactor-math.Sqrt2) > 1e-2 {
		t.Fatalf("CrestFactor=%v, want ~1.414", r.CrestFactor)
	}
	if r.Spectrum.PeakFreq != r.PeakFreq {
		t.Fatalf("Spectrum.PeakFreq=%v, want %v", r.Spectrum.PeakFreq, r.PeakFreq)
	}
	if math.Abs(r.Spectrum.Centroid-1000) > 1 {
		t.Fatalf("Spectrum.Centroid=%v, want ~1000", r.Spectrum.Centroid)
	}
}

func TestAnalyzeOutOfBandTone(t *testing.T) {
	x := testutil.Tone(3000, 8000, 1, 1024)

	r, err := Analyze(x, 8000, Options{Low: 900, High: 1100})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.InBandRatio > 0.01 {
		t.Fatalf("InBandRatio=%v, want ~0", r.InBandRatio)
	}
}

func TestAnalyzeAliasedBand(t *testing.T) {
	// 9 kHz sampled at 8 kHz shows up at 1 kHz.
	x := testutil.Tone(9000, 8000, 1, 1024)

	r, err := Analyze(x, 8000, Options{Low: 8900, High: 9100})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if math.Abs(r.PeakFreq-1000) > 1e-9 {
		t.Fatalf("PeakFreq=%v, want 1000", r.PeakFreq)
	}
	if r.InBandRatio < 0.99 {
		t.Fatalf("InBandRatio=%v, want > 0.99", r.InBandRatio)
	}
}

func TestAnalyzeEdges(t *testing.T) {
	x := testutil.DC(0, 100)
	x[2] = -0.5
	x[97] = 0.25

	r, err := Analyze(x, 1000, Options{EdgeSamples: 4})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if r.EdgeStart != 0.5 || r.EdgeEnd != 0.25 {
		t.Fatalf("edges=(%v, %v), want (0.5, 0.25)", r.EdgeStart, r.EdgeEnd)
	}
	if r.FFTSize != 128 {
		t.Fatalf("FFTSize=%d, want 128", r.FFTSize)
	}
}

func TestAnalyzeInvalid(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		fs   float64
		opts Options
		want error
	}{
		{name: "empty", x: nil, fs: 1, want: ErrEmptySignal},
		{name: "zero rate", x: []float64{1}, fs: 0, want: ErrInvalidSampleRate},
		{name: "inverted band", x: []float64{1}, fs: 1, opts: Options{Low: 2, High: 1}, want: ErrInvalidBand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(tt.x, tt.fs, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Analyze() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAliases(t *testing.T) {
	tests := []struct {
		f, low, high, fs float64
		want             bool
	}{
		{f: 1000, low: 900, high: 1100, fs: 8000, want: true},
		{f: 1000, low: 8900, high: 9100, fs: 8000, want: true},
		{f: 1000, low: 6900, high: 7100, fs: 8000, want: true},
		{f: 2000, low: 900, high: 1100, fs: 8000, want: false},
		{f: 0, low: 470e3, high: 530e3, fs: 250e3, want: true},
		{f: 30e3, low: 470e3, high: 530e3, fs: 250e3, want: true},
		{f: 60e3, low: 470e3, high: 530e3, fs: 250e3, want: false},
	}

	for _, tt := range tests {
		if got := Aliases(tt.f, tt.low, tt.high, tt.fs); got != tt.want {
			t.Fatalf("Aliases(%v, %v, %v, %v)=%v, want %v", tt.f, tt.low, tt.high, tt.fs, got, tt.want)
		}
	}
}

package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "inside", value: 0.5, lo: 0, hi: 1, expected: 0.5},
		{name: "below", value: -1, lo: 0, hi: 1, expected: 0},
		{name: "above", value: 2, lo: 0, hi: 1, expected: 1},
		{name: "swapped", value: 2, lo: 1, hi: 0, expected: 1},
		{name: "edge", value: 1, lo: 0, hi: 1, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.lo, tt.hi)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  int
	}{
		{name: "zero", value: 0, want: 0},
		{name: "truncate positive", value: 1638.9, want: 1638},
		{name: "truncate negative", value: -1638.9, want: -1638},
		{name: "top", value: 8191.99, want: 8191},
		{name: "saturate high", value: 8192, want: 8191},
		{name: "saturate low", value: -9000, want: -8192},
		{name: "bottom", value: -8192, want: -8192},
		{name: "inf", value: math.Inf(1), want: 8191},
		{name: "nan", value: math.NaN(), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantize(tt.value, -8192, 8191); got != tt.want {
				t.Fatalf("Quantize(%v) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}

	if got := Quantize(math.NaN(), 1, 10); got != 1 {
		t.Fatalf("Quantize(NaN) outside zero range = %d, want 1", got)
	}
}

func TestDBConversions(t *testing.T) {
	if got := LinearToDB(0.5); math.Abs(got+6.020599913279624) > 1e-12 {
		t.Fatalf("LinearToDB(0.5) = %v, want -6.0206", got)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestDBPowerConversions(t *testing.T) {
	if got := LinearPowerToDB(2); math.Abs(got-3.010299956639812) > 1e-12 {
		t.Fatalf("LinearPowerToDB(2) = %v, want 3.0103", got)
	}
	if !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}
	if !math.IsNaN(LinearPowerToDB(-1)) {
		t.Fatal("expected NaN for negative power")
	}
}

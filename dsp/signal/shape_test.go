package signal

import (
	"errors"
	"testing"
)

func TestPad(t *testing.T) {
	w := []float64{0.5, -1, 0.25}

	out, err := Pad(w, 2, 3)
	if err != nil {
		t.Fatalf("Pad() error = %v", err)
	}
	if len(out) != len(w)+5 {
		t.Fatalf("len=%d, want %d", len(out), len(w)+5)
	}

	for i := range 2 {
		if out[i] != 0 {
			t.Fatalf("out[%d]=%v, want 0", i, out[i])
		}
	}
	for i, v := range w {
		if out[2+i] != v {
			t.Fatalf("out[%d]=%v, want %v", 2+i, out[2+i], v)
		}
	}
	for i := len(out) - 3; i < len(out); i++ {
		if out[i] != 0 {
			t.Fatalf("out[%d]=%v, want 0", i, out[i])
		}
	}
}

func TestPadZeroDelays(t *testing.T) {
	w := []float64{1, 2}
	out, err := Pad(w, 0, 0)
	if err != nil {
		t.Fatalf("Pad() error = %v", err)
	}
	if len(out) != 2 || out[0] != 1 || out[1] != 2 {
		t.Fatalf("Pad(0,0)=%v, want %v", out, w)
	}

	out[0] = 9
	if w[0] != 1 {
		t.Fatal("Pad must not alias its input")
	}
}

func TestPadNegative(t *testing.T) {
	tests := []struct {
		name      string
		pre, post int
	}{
		{name: "pre", pre: -1, post: 0},
		{name: "post", pre: 0, post: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pad([]float64{1}, tt.pre, tt.post)
			if !errors.Is(err, ErrNegativeDelay) {
				t.Fatalf("Pad() error = %v, want %v", err, ErrNegativeDelay)
			}
		})
	}
}

func TestRepeat(t *testing.T) {
	w := []float64{1, -2, 3, -4}

	out, err := Repeat(w, 3)
	if err != nil {
		t.Fatalf("Repeat() error = %v", err)
	}
	if len(out) != 3*len(w) {
		t.Fatalf("len=%d, want %d", len(out), 3*len(w))
	}
	for k, v := range out {
		if v != w[k%len(w)] {
			t.Fatalf("out[%d]=%v, want %v", k, v, w[k%len(w)])
		}
	}
}

func TestRepeatEdgeCounts(t *testing.T) {
	w := []float64{1, 2}

	zero, err := Repeat(w, 0)
	if err != nil {
		t.Fatalf("Repeat(0) error = %v", err)
	}
	if len(zero) != 0 {
		t.Fatalf("Repeat(0) len=%d, want 0", len(zero))
	}

	one, err := Repeat(w, 1)
	if err != nil {
		t.Fatalf("Repeat(1) error = %v", err)
	}
	one[0] = 7
	if w[0] != 1 {
		t.Fatal("Repeat(1) must return a copy")
	}

	if _, err := Repeat(w, -1); !errors.Is(err, ErrNegativeRepetitions) {
		t.Fatalf("Repeat(-1) error = %v, want %v", err, ErrNegativeRepetitions)
	}
}

func TestScale(t *testing.T) {
	w := []float64{0.25, -0.5, 1}
	out := Scale(w, 4)

	want := []float64{1, -2, 4}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d]=%v, want %v", i, out[i], want[i])
		}
	}
	if w[2] != 1 {
		t.Fatal("Scale must not modify its input")
	}
	if got := Scale(nil, 2); len(got) != 0 {
		t.Fatalf("Scale(nil) len=%d, want 0", len(got))
	}
}

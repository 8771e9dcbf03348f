package spectral_test

import (
	"fmt"

	"github.com/cwbudde/algo-bexcite/stats/spectral"
)

func ExampleCalculate() {
	// Two equal bins at 2 Hz and 6 Hz on a 1 Hz grid.
	mag := make([]float64, 9)
	mag[2], mag[6] = 1, 1
	s := spectral.Calculate(mag, 16)
	fmt.Printf("centroid=%.1f spread=%.1f\n", s.Centroid, s.Spread)

	// Output:
	// centroid=4.0 spread=2.0
}

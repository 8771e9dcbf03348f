package window_test

import (
	"fmt"

	"github.com/cwbudde/algo-bexcite/dsp/window"
)

func ExampleErfEdge() {
	fmt.Printf("%.3f %.3f %.3f\n",
		window.ErfEdge(0, 10, 1000),
		window.ErfEdge(500, 10, 1000),
		window.ErfEdge(1000, 10, 1000),
	)

	// Output:
	// 0.002 1.000 0.002
}

package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-bexcite/dsp/core"
)

func ExampleQuantize() {
	// 1 V on the ±5 V range of a 14-bit converter.
	fmt.Println(core.Quantize(1*8192/5.0, -8192, 8191))
	fmt.Println(core.Quantize(6*8192/5.0, -8192, 8191))

	// Output:
	// 1638
	// 8191
}

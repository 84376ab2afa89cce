package signal_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/harmonic-denoise/dsp/signal"
)

func ExampleHarmonic() {
	g, err := signal.NewGrid(0, 1, 5)
	if err != nil {
		panic(err)
	}
	x, err := signal.Harmonic(g, signal.HarmonicParams{Amplitude: 1, Frequency: 1})
	if err != nil {
		panic(err)
	}
	for i := range x {
		if math.Abs(x[i]) < 1e-12 {
			x[i] = 0
		}
	}

	fmt.Printf("fs=%.0f %.0f %.0f %.0f %.0f %.0f\n", g.SampleRate(), x[0], x[1], x[2], x[3], x[4])

	// Output:
	// fs=4 0 1 0 -1 0
}

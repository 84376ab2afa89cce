// Package testutil holds signal builders and assertions shared by tests.
package testutil

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cwbudde/harmonic-denoise/dsp/signal"
)

// Sine samples amp*sin(2*pi*freq*t) on g.
func Sine(g *signal.Grid, freq, amp float64) signal.Signal {
	out := make(signal.Signal, g.Len())
	w := 2 * math.Pi * freq
	for i := range out {
		out[i] = amp * math.Sin(w*g.Time(i))
	}
	return out
}

// Gaussian returns n samples of N(0, std^2) drawn from a fixed seed.
func Gaussian(seed uint64, std float64, n int) signal.Signal {
	dist := distuv.Normal{Mu: 0, Sigma: std, Src: rand.NewPCG(seed, seed+1)}
	out := make(signal.Signal, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, n int) signal.Signal {
	out := make(signal.Signal, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Impulse generates a unit impulse at pos; out-of-range positions give
// all zeros.
func Impulse(n, pos int) signal.Signal {
	out := make(signal.Signal, n)
	if pos >= 0 && pos < n {
		out[pos] = 1
	}
	return out
}

// LocalMaxima returns the indices i in [lo, hi) with x[i-1] < x[i] >= x[i+1].
// lo is raised to 1 and hi lowered to len(x)-1 as needed.
func LocalMaxima(x []float64, lo, hi int) []int {
	lo = max(lo, 1)
	hi = min(hi, len(x)-1)

	var idx []int
	for i := lo; i < hi; i++ {
		if x[i] > x[i-1] && x[i] >= x[i+1] {
			idx = append(idx, i)
		}
	}
	return idx
}

// Package smooth provides centered moving-average smoothing.
package smooth

import (
	"fmt"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
	"github.com/cwbudde/harmonic-denoise/dsp/signal"
	"gonum.org/v1/gonum/floats"
)

// MovingAverage returns the centered running mean of x.
//
// Output sample i is the arithmetic mean of x[lo:hi] with
// lo = max(0, i-window/2) and hi = min(len(x), i+window/2+1). Near the ends
// the window shrinks instead of padding, so edges are not biased towards
// zero. An even window therefore spans window+1 samples in the interior.
// A window of 1 returns a copy of x.
func MovingAverage(x signal.Signal, window int) (signal.Signal, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: moving average window must be >= 1: %d", core.ErrInvalidParameter, window)
	}

	out := make(signal.Signal, len(x))
	if window == 1 {
		copy(out, x)
		return out, nil
	}

	half := window / 2
	n := len(x)
	for i := range out {
		lo := max(0, i-half)
		hi := min(n, i+half+1)
		out[i] = floats.Sum(x[lo:hi]) / float64(hi-lo)
	}

	return out, nil
}

// Span returns the number of samples averaged in the interior for window.
func Span(window int) int {
	return 2*(window/2) + 1
}

package pipeline

import (
	"fmt"

	"github.com/cwbudde/harmonic-denoise/dsp/noise"
	"github.com/cwbudde/harmonic-denoise/dsp/signal"
)

// FilterChoice selects the filter stage. It is implemented by [Lowpass] and
// [MovingAverage] only.
type FilterChoice interface {
	fmt.Stringer
	filterChoice()
}

// Lowpass selects the zero-phase Butterworth filter.
type Lowpass struct {
	Cutoff float64 // Hz, must stay below the grid's Nyquist frequency
}

// MovingAverage selects the centered moving-average smoother.
type MovingAverage struct {
	Window int // samples, >= 1
}

func (Lowpass) filterChoice()       {}
func (MovingAverage) filterChoice() {}

func (l Lowpass) String() string       { return fmt.Sprintf("lowpass(cutoff=%g Hz)", l.Cutoff) }
func (m MovingAverage) String() string { return fmt.Sprintf("moving-average(window=%d)", m.Window) }

// Params is one evaluation request.
type Params struct {
	Harmonic  signal.HarmonicParams
	Noise     noise.Params
	Filter    FilterChoice
	ShowNoise bool
}

// Result holds the three traces of one evaluation, aligned with Time.
type Result struct {
	Time     []float64
	Clean    signal.Signal
	Noisy    signal.Signal
	Filtered signal.Signal
}

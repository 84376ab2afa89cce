package signal

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
)

// Default demo grid: 1000 samples over [0, 10] seconds.
const (
	DefaultStart   = 0.0
	DefaultEnd     = 10.0
	DefaultSamples = 1000
)

// Grid is an immutable set of uniformly spaced time points over
// [start, end], both ends included.
type Grid struct {
	t          []float64
	sampleRate float64
}

// NewGrid creates a grid of n points spanning [start, end].
func NewGrid(start, end float64, n int) (*Grid, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: grid samples must be >= 2: %d", core.ErrInvalidParameter, n)
	}
	if !core.IsFinite(start) || !core.IsFinite(end) {
		return nil, fmt.Errorf("%w: grid bounds must be finite: [%v, %v]", core.ErrInvalidParameter, start, end)
	}
	if end <= start {
		return nil, fmt.Errorf("%w: grid end must be > start: [%v, %v]", core.ErrInvalidParameter, start, end)
	}

	return &Grid{
		t:          floats.Span(make([]float64, n), start, end),
		sampleRate: float64(n-1) / (end - start),
	}, nil
}

// DefaultGrid returns the grid used by both demos.
func DefaultGrid() *Grid {
	g, err := NewGrid(DefaultStart, DefaultEnd, DefaultSamples)
	if err != nil {
		panic(err)
	}
	return g
}

// Len returns the number of samples.
func (g *Grid) Len() int { return len(g.t) }

// Time returns the i-th time point.
func (g *Grid) Time(i int) float64 { return g.t[i] }

// Start returns the first time point.
func (g *Grid) Start() float64 { return g.t[0] }

// End returns the last time point.
func (g *Grid) End() float64 { return g.t[len(g.t)-1] }

// SampleRate returns the implied sampling rate (n-1)/(end-start).
func (g *Grid) SampleRate() float64 { return g.sampleRate }

// Nyquist returns half the sampling rate.
func (g *Grid) Nyquist() float64 { return g.sampleRate / 2 }

// Times returns a copy of the time points.
func (g *Grid) Times() []float64 {
	out := make([]float64, len(g.t))
	copy(out, g.t)
	return out
}

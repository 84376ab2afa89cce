package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
)

// HarmonicParams describes a sinusoid A*sin(2*pi*f*t + phase).
type HarmonicParams struct {
	Amplitude float64 // > 0
	Frequency float64 // Hz, >= 0
	Phase     float64 // radians
}

// Validate checks the parameter domain.
func (p HarmonicParams) Validate() error {
	if !core.IsFinite(p.Amplitude) || !core.IsFinite(p.Frequency) || !core.IsFinite(p.Phase) {
		return fmt.Errorf("%w: harmonic parameters must be finite: %+v", core.ErrInvalidParameter, p)
	}
	if p.Amplitude <= 0 {
		return fmt.Errorf("%w: harmonic amplitude must be > 0: %v", core.ErrInvalidParameter, p.Amplitude)
	}
	if p.Frequency < 0 {
		return fmt.Errorf("%w: harmonic frequency must be >= 0: %v", core.ErrInvalidParameter, p.Frequency)
	}
	return nil
}

// Harmonic samples the sinusoid described by p at every point of g.
func Harmonic(g *Grid, p HarmonicParams) (Signal, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	out := make(Signal, g.Len())
	w := 2 * math.Pi * p.Frequency
	for i, t := range g.t {
		out[i] = p.Amplitude * math.Sin(w*t+p.Phase)
	}
	return out, nil
}

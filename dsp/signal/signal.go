package signal

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
)

// Signal is a sequence of samples aligned with a Grid.
type Signal []float64

// Clone returns an independent copy of s.
func (s Signal) Clone() Signal {
	if s == nil {
		return nil
	}
	out := make(Signal, len(s))
	copy(out, s)
	return out
}

// Reversed returns a new Signal with the samples of s in reverse order.
func (s Signal) Reversed() Signal {
	out := s.Clone()
	floats.Reverse(out)
	return out
}

// Finite returns an error wrapping [core.ErrNumericalInstability] if s holds
// a NaN or Inf sample.
func (s Signal) Finite() error {
	if i := core.FirstNonFinite(s); i >= 0 {
		return fmt.Errorf("%w: non-finite sample %v at index %d", core.ErrNumericalInstability, s[i], i)
	}
	return nil
}

// Same reports whether a and b have the same length and bit-identical samples.
func Same(a, b Signal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !core.SameBits(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Add returns the element-wise sum a+b as a new Signal.
func Add(a, b Signal) (Signal, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: signal length mismatch: %d vs %d", core.ErrInvalidParameter, len(a), len(b))
	}
	out := make(Signal, len(a))
	if len(a) > 0 {
		vecmath.AddBlock(out, a, b)
	}
	return out, nil
}

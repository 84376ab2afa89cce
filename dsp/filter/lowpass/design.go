package lowpass

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
	"github.com/cwbudde/harmonic-denoise/dsp/filter/biquad"
)

const (
	// Order is the order used by Design.
	Order = 4

	// MaxOrder bounds DesignOrder; beyond it the expanded polynomial form
	// loses too much precision for small cutoff ratios.
	MaxOrder = 8
)

// Coefficients describes a designed Butterworth low-pass filter.
type Coefficients struct {
	// B and A are the numerator and denominator polynomials in z^-1,
	// each of length order+1, with A[0] == 1.
	B, A []float64

	// Sections holds the same filter as a cascade of biquads with unity DC
	// gain each. For odd orders the last section is first-order.
	Sections []biquad.Coefficients

	Cutoff     float64 // Hz
	SampleRate float64 // Hz
}

// Order returns the filter order.
func (c Coefficients) Order() int { return len(c.A) - 1 }

// NormalizedCutoff returns Cutoff divided by the Nyquist frequency.
func (c Coefficients) NormalizedCutoff() float64 {
	return c.Cutoff / (c.SampleRate / 2)
}

// Design returns the 4th-order Butterworth low-pass for cutoff (Hz) at
// sample rate fs (Hz).
func Design(cutoff, fs float64) (Coefficients, error) {
	return DesignOrder(cutoff, fs, Order)
}

// DesignOrder returns a Butterworth low-pass of the given order.
//
// The normalized cutoff cutoff/(fs/2) must lie strictly inside (0, 1).
func DesignOrder(cutoff, fs float64, order int) (Coefficients, error) {
	if order < 1 || order > MaxOrder {
		return Coefficients{}, fmt.Errorf("%w: lowpass order must be in [1, %d]: %d", core.ErrInvalidParameter, MaxOrder, order)
	}
	if !core.IsFinite(fs) || fs <= 0 {
		return Coefficients{}, fmt.Errorf("%w: lowpass sample rate must be > 0: %v", core.ErrInvalidParameter, fs)
	}
	if !core.IsFinite(cutoff) {
		return Coefficients{}, fmt.Errorf("%w: lowpass cutoff must be finite: %v", core.ErrInvalidParameter, cutoff)
	}
	wn := cutoff / (fs / 2)
	if wn <= 0 || wn >= 1 {
		return Coefficients{}, fmt.Errorf("%w: lowpass cutoff %v Hz must lie in (0, %v) Hz (normalized %v)",
			core.ErrInvalidParameter, cutoff, fs/2, wn)
	}

	poles, gain := digitalPoles(cutoff, fs, order)

	c := Coefficients{
		B:          binomial(order, gain),
		A:          realPoly(poles),
		Sections:   pairSections(poles),
		Cutoff:     cutoff,
		SampleRate: fs,
	}
	if err := c.check(); err != nil {
		return Coefficients{}, err
	}

	return c, nil
}

// digitalPoles returns the z-plane poles of the Butterworth low-pass and the
// gain that goes with N zeros at z = -1.
//
// Analog prototype poles are -exp(j*pi*m/(2N)) for m = -N+1, -N+3, ..., N-1,
// scaled by the prewarped cutoff 2*fs*tan(pi*fc/fs) and mapped with
// z = (2fs + p) / (2fs - p).
func digitalPoles(cutoff, fs float64, order int) ([]complex128, float64) {
	fs2 := 2 * fs
	warped := fs2 * math.Tan(math.Pi*cutoff/fs)

	poles := make([]complex128, order)
	den := complex(1, 0)
	for k := range poles {
		m := float64(2*k - order + 1)
		p := -cmplx.Exp(complex(0, math.Pi*m/float64(2*order))) * complex(warped, 0)
		poles[k] = (complex(fs2, 0) + p) / (complex(fs2, 0) - p)
		den *= complex(fs2, 0) - p
	}

	return poles, math.Pow(warped, float64(order)) / real(den)
}

// binomial returns gain * (1 + z^-1)^n.
func binomial(n int, gain float64) []float64 {
	out := make([]float64, n+1)
	c := 1.0
	for k := 0; k <= n; k++ {
		out[k] = gain * c
		c = c * float64(n-k) / float64(k+1)
	}
	return out
}

// realPoly expands prod(1 - r*z^-1) and keeps the real parts, which are
// exact up to rounding because the roots come in conjugate pairs.
func realPoly(roots []complex128) []float64 {
	poly := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(poly)+1)
		for i, c := range poly {
			next[i] += c
			next[i+1] -= c * r
		}
		poly = next
	}

	out := make([]float64, len(poly))
	for i, c := range poly {
		out[i] = real(c)
	}
	return out
}

// pairSections groups conjugate poles k and n-1-k into biquads normalized to
// unity DC gain; the real pole of an odd order becomes a first-order section.
func pairSections(poles []complex128) []biquad.Coefficients {
	n := len(poles)
	sections := make([]biquad.Coefficients, 0, (n+1)/2)

	for k := 0; k < n/2; k++ {
		p := poles[k]
		a1 := -2 * real(p)
		a2 := real(p)*real(p) + imag(p)*imag(p)
		g := (1 + a1 + a2) / 4
		sections = append(sections, biquad.Coefficients{B0: g, B1: 2 * g, B2: g, A1: a1, A2: a2})
	}
	if n%2 != 0 {
		a1 := -real(poles[n/2])
		g := (1 + a1) / 2
		sections = append(sections, biquad.Coefficients{B0: g, B1: g, A1: a1})
	}

	return sections
}

func (c Coefficients) check() error {
	for _, v := range c.B {
		if !core.IsFinite(v) {
			return fmt.Errorf("%w: lowpass numerator %v", core.ErrNumericalInstability, c.B)
		}
	}
	for _, v := range c.A {
		if !core.IsFinite(v) {
			return fmt.Errorf("%w: lowpass denominator %v", core.ErrNumericalInstability, c.A)
		}
	}
	for i, s := range c.Sections {
		if !s.Stable() {
			return fmt.Errorf("%w: lowpass section %d has poles %v outside the unit circle",
				core.ErrNumericalInstability, i, s.Poles())
		}
	}
	return nil
}

// validate rejects values that were not produced by Design.
func (c Coefficients) validate() error {
	if len(c.A) < 2 || len(c.B) != len(c.A) {
		return fmt.Errorf("%w: lowpass coefficients need equal-length B and A of length >= 2: %d, %d",
			core.ErrInvalidParameter, len(c.B), len(c.A))
	}
	if !core.NearlyEqual(c.A[0], 1, 0) {
		return fmt.Errorf("%w: lowpass denominator must be normalized (A[0] = 1): %v", core.ErrInvalidParameter, c.A[0])
	}
	return nil
}

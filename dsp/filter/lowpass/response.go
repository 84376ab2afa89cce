package lowpass

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/harmonic-denoise/dsp/filter/biquad"
	"gonum.org/v1/gonum/floats"
)

// Response evaluates the transfer function at freqHz.
func (c Coefficients) Response(freqHz float64) complex128 {
	w := 2 * math.Pi * freqHz / c.SampleRate
	zinv := cmplx.Exp(complex(0, -w))
	return horner(c.B, zinv) / horner(c.A, zinv)
}

// MagnitudeDB returns the single-pass magnitude response in dB.
func (c Coefficients) MagnitudeDB(freqHz float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz)))
}

// ZeroPhaseGain returns |H|^2, the gain Apply has at freqHz away from the
// signal edges.
func (c Coefficients) ZeroPhaseGain(freqHz float64) float64 {
	m := cmplx.Abs(c.Response(freqHz))
	return m * m
}

// ImpulseResponse returns the first n samples of one causal pass through the
// second-order sections.
func (c Coefficients) ImpulseResponse(n int) []float64 {
	return biquad.NewChain(c.Sections).ImpulseResponse(n)
}

// SettleLength returns the number of samples after which the single-pass
// impulse response stays below tol times its peak. The search covers limit
// samples; limit is returned if the response has not settled by then.
func (c Coefficients) SettleLength(tol float64, limit int) int {
	ir := c.ImpulseResponse(limit)
	if len(ir) == 0 {
		return 0
	}

	threshold := tol * floats.Norm(ir, math.Inf(1))
	for i := len(ir) - 1; i >= 0; i-- {
		if math.Abs(ir[i]) > threshold {
			return i + 1
		}
	}
	return 0
}

// horner evaluates p[0] + p[1]*x + ... + p[n]*x^n.
func horner(p []float64, x complex128) complex128 {
	var acc complex128
	for i := len(p) - 1; i >= 0; i-- {
		acc = acc*x + complex(p[i], 0)
	}
	return acc
}

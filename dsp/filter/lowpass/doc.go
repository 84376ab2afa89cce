// Package lowpass designs Butterworth low-pass filters and applies them with
// zero net phase shift.
//
// [Design] derives the 4th-order transfer function from a cutoff frequency
// and a sampling rate using the bilinear transform: analog prototype poles
// on the unit semicircle are scaled by the prewarped cutoff and mapped to the
// z-plane. The result carries both the expanded polynomials (B, A) and the
// same poles grouped into second-order sections.
//
// [Apply] runs the recursive filter forward, reverses the result, runs it
// again and reverses back. The phase delays of the two passes cancel and the
// magnitude response is squared. This needs the whole signal in memory and is
// not usable for causal streaming.
package lowpass

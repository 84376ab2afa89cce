// Package frequency computes spectra of sampled signals and the
// frequency-domain descriptors used to judge a denoising result.
package frequency

import (
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
)

// Spectrum is a one-sided amplitude spectrum from DC to Nyquist.
//
// Magnitudes are scaled so that a sinusoid of amplitude A centered on a bin
// shows a peak of A.
type Spectrum struct {
	SampleRate float64
	FFTSize    int
	Freqs      []float64
	Magnitude  []float64
}

// BinWidth returns the frequency spacing of adjacent bins in Hz.
func (s Spectrum) BinWidth() float64 {
	return s.SampleRate / float64(s.FFTSize)
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Magnitude computes the Hann-windowed amplitude spectrum of x, zero-padded
// to the next power of two.
func Magnitude(x []float64, sampleRate float64) (Spectrum, error) {
	if len(x) < 2 {
		return Spectrum{}, fmt.Errorf("%w: spectrum needs at least 2 samples: %d", core.ErrInvalidParameter, len(x))
	}
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return Spectrum{}, fmt.Errorf("%w: spectrum sample rate must be > 0: %v", core.ErrInvalidParameter, sampleRate)
	}

	fftSize := nextPow2(len(x))
	win := window.Hann(len(x))
	gain := floats.Sum(win)

	in := make([]complex128, fftSize)
	for i, v := range x {
		in[i] = complex(v*win[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum init fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("spectrum forward fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	floats.Scale(2/gain, mag)
	mag[0] /= 2
	mag[bins-1] /= 2

	freqs := make([]float64, bins)
	for i := range freqs {
		freqs[i] = float64(i) * sampleRate / float64(fftSize)
	}

	return Spectrum{
		SampleRate: sampleRate,
		FFTSize:    fftSize,
		Freqs:      freqs,
		Magnitude:  mag,
	}, nil
}

// DominantFrequency returns the frequency of the largest non-DC bin,
// refined by parabolic interpolation over its neighbours.
func (s Spectrum) DominantFrequency() float64 {
	n := len(s.Magnitude)
	if n < 3 {
		return 0
	}

	peak := 1 + floats.MaxIdx(s.Magnitude[1:])
	if peak == n-1 {
		return s.Freqs[peak]
	}

	a, b, c := s.Magnitude[peak-1], s.Magnitude[peak], s.Magnitude[peak+1]
	denom := a - 2*b + c
	if denom == 0 {
		return s.Freqs[peak]
	}
	delta := 0.5 * (a - c) / denom
	return s.Freqs[peak] + delta*s.BinWidth()
}

// Centroid returns the magnitude-weighted mean frequency in Hz.
func (s Spectrum) Centroid() float64 {
	sum := floats.Sum(s.Magnitude)
	if sum == 0 {
		return 0
	}
	return floats.Dot(s.Freqs, s.Magnitude) / sum
}

// Rolloff returns the frequency below which fraction (0..1) of the spectral
// energy lies.
func (s Spectrum) Rolloff(fraction float64) float64 {
	var total float64
	for _, m := range s.Magnitude {
		total += m * m
	}
	if total == 0 {
		return 0
	}

	threshold := fraction * total
	var acc float64
	for i, m := range s.Magnitude {
		acc += m * m
		if acc >= threshold {
			return s.Freqs[i]
		}
	}
	return s.Freqs[len(s.Freqs)-1]
}

// Bandwidth returns the 3 dB bandwidth around the spectral peak in Hz.
//
// The -3 dB points on both sides of the peak are found by linear
// interpolation between the neighbouring bins.
func (s Spectrum) Bandwidth() float64 {
	n := len(s.Magnitude)
	if n < 2 {
		return 0
	}

	peakBin := floats.MaxIdx(s.Magnitude)
	peakVal := s.Magnitude[peakBin]
	if peakVal == 0 {
		return 0
	}
	threshold := peakVal / math.Sqrt2

	lower := s.Freqs[0]
	for i := peakBin; i >= 1; i-- {
		if s.Magnitude[i-1] <= threshold && s.Magnitude[i] > threshold {
			lower = s.interpFreq(i-1, i, threshold)
			break
		}
	}

	upper := s.Freqs[n-1]
	for i := peakBin; i < n-1; i++ {
		if s.Magnitude[i+1] <= threshold && s.Magnitude[i] > threshold {
			upper = s.interpFreq(i, i+1, threshold)
			break
		}
	}

	return max(0, upper-lower)
}

// interpFreq linearly interpolates the frequency where the magnitude
// crosses threshold between bins lo and hi.
func (s Spectrum) interpFreq(lo, hi int, threshold float64) float64 {
	mLo, mHi := s.Magnitude[lo], s.Magnitude[hi]
	fLo, fHi := s.Freqs[lo], s.Freqs[hi]

	denom := mHi - mLo
	if denom == 0 {
		return (fLo + fHi) / 2
	}
	t := (threshold - mLo) / denom
	return fLo + t*(fHi-fLo)
}

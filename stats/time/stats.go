// Package time computes time-domain statistics of sampled signals and
// compares an estimate against a reference trace.
package time

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
)

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length        int
	Mean          float64
	StdDev        float64 // population
	RMS           float64
	RMS_dB        float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	PeakToPeak    float64
	ZeroCrossings int
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// Calculate computes all statistics of x. An empty x yields a zero Stats
// with RMS_dB = -Inf.
func Calculate(x []float64) Stats {
	n := len(x)
	if n == 0 {
		return Stats{RMS_dB: math.Inf(-1)}
	}

	mean, variance := stat.PopMeanVariance(x, nil)
	rms := RMS(x)

	return Stats{
		Length:        n,
		Mean:          mean,
		StdDev:        math.Sqrt(variance),
		RMS:           rms,
		RMS_dB:        ampTodB(rms),
		Max:           floats.Max(x),
		MaxPos:        floats.MaxIdx(x),
		Min:           floats.Min(x),
		MinPos:        floats.MinIdx(x),
		PeakToPeak:    PeakToPeak(x),
		ZeroCrossings: ZeroCrossings(x),
	}
}

// RMS returns the root-mean-square of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return floats.Norm(x, 2) / math.Sqrt(float64(len(x)))
}

// StdDev returns the population standard deviation of x.
func StdDev(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return math.Sqrt(stat.PopVariance(x, nil))
}

// PeakToPeak returns max(x) - min(x).
func PeakToPeak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return floats.Max(x) - floats.Min(x)
}

// ZeroCrossings returns the number of sign changes between consecutive
// samples. Exact zeros do not count as a crossing.
func ZeroCrossings(x []float64) int {
	var count int

	for i := 1; i < len(x); i++ {
		if x[i-1]*x[i] < 0 {
			count++
		}
	}

	return count
}

// Comparison describes how closely an estimate follows a reference.
//
//nolint:revive
type Comparison struct {
	RMSE        float64
	MaxAbsError float64
	SNR_dB      float64 // reference power over error power; +Inf for a perfect match
	Correlation float64 // Pearson; NaN if either trace is constant
}

// Compare measures estimate against reference over the index range
// [skip, len-skip). skip trims edge transients and may be 0.
func Compare(reference, estimate []float64, skip int) (Comparison, error) {
	if len(reference) != len(estimate) {
		return Comparison{}, fmt.Errorf("%w: compare length mismatch: %d vs %d",
			core.ErrInvalidParameter, len(reference), len(estimate))
	}
	if skip < 0 || 2*skip >= len(reference) {
		return Comparison{}, fmt.Errorf("%w: compare skip %d leaves no samples of %d",
			core.ErrInvalidParameter, skip, len(reference))
	}

	ref := reference[skip : len(reference)-skip]
	est := estimate[skip : len(estimate)-skip]

	diff := make([]float64, len(ref))
	floats.SubTo(diff, est, ref)

	errPow := floats.Dot(diff, diff)
	refPow := floats.Dot(ref, ref)

	snr := math.Inf(1)
	if errPow > 0 {
		snr = 10 * math.Log10(refPow/errPow)
	}

	return Comparison{
		RMSE:        RMS(diff),
		MaxAbsError: floats.Norm(diff, math.Inf(1)),
		SNR_dB:      snr,
		Correlation: stat.Correlation(ref, est, nil),
	}, nil
}

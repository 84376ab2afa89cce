package time

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
)

func TestCalculate(t *testing.T) {
	s := Calculate([]float64{1, -1, 3, -3, 0})

	assert.Equal(t, 5, s.Length)
	assert.InDelta(t, 0, s.Mean, 1e-15)
	assert.InDelta(t, 2, s.StdDev, 1e-12)
	assert.InDelta(t, 2, s.RMS, 1e-12)
	assert.InDelta(t, 20*math.Log10(2), s.RMS_dB, 1e-12)
	assert.Equal(t, 3.0, s.Max)
	assert.Equal(t, 2, s.MaxPos)
	assert.Equal(t, -3.0, s.Min)
	assert.Equal(t, 3, s.MinPos)
	assert.Equal(t, 6.0, s.PeakToPeak)
	assert.Equal(t, 3, s.ZeroCrossings)
}

func TestCalculate_Empty(t *testing.T) {
	s := Calculate(nil)
	assert.Equal(t, 0, s.Length)
	assert.True(t, math.IsInf(s.RMS_dB, -1))
	assert.Equal(t, 0.0, RMS(nil))
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, PeakToPeak(nil))
	assert.Equal(t, 0, ZeroCrossings([]float64{1}))
}

func TestStdDev_Sine(t *testing.T) {
	const n = 1000
	x := make([]float64, n)
	for i := range x {
		x[i] = 3 * math.Sin(2*math.Pi*float64(i)/100)
	}
	assert.InDelta(t, 3/math.Sqrt2, StdDev(x), 1e-9)
	assert.InDelta(t, 3/math.Sqrt2, RMS(x), 1e-9)
}

func TestZeroCrossings_IgnoresExactZeros(t *testing.T) {
	assert.Equal(t, 0, ZeroCrossings([]float64{1, 0, -1}))
	assert.Equal(t, 2, ZeroCrossings([]float64{1, -1, 0, 2, 3, 5, -4}))
}

func TestCompare(t *testing.T) {
	ref := []float64{1, 2, 3, 4}
	est := []float64{1, 2, 3, 5}

	c, err := Compare(ref, est, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, c.RMSE, 1e-12)
	assert.InDelta(t, 1, c.MaxAbsError, 1e-12)
	assert.InDelta(t, 10*math.Log10(30), c.SNR_dB, 1e-12)
	assert.Greater(t, c.Correlation, 0.9)

	c, err = Compare(ref, ref, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.RMSE)
	assert.True(t, math.IsInf(c.SNR_dB, 1))
	assert.InDelta(t, 1, c.Correlation, 1e-12)
}

func TestCompare_Rejects(t *testing.T) {
	_, err := Compare([]float64{1, 2}, []float64{1}, 0)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = Compare([]float64{1, 2}, []float64{1, 2}, 1)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = Compare([]float64{1, 2}, []float64{1, 2}, -1)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

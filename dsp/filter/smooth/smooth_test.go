package smooth

import (
	"math"
	"testing"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
	"github.com/cwbudde/harmonic-denoise/dsp/signal"
	"github.com/cwbudde/harmonic-denoise/internal/testutil"
	timestats "github.com/cwbudde/harmonic-denoise/stats/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverage_WindowOneIsIdentity(t *testing.T) {
	x := signal.Signal{0.1, -3.7, math.Pi, 1e-300, 42}

	y, err := MovingAverage(x, 1)
	require.NoError(t, err)
	assert.True(t, signal.Same(x, y))

	y[0] = 99
	assert.Equal(t, 0.1, x[0], "result must not alias the input")
}

func TestMovingAverage_ConstantKeepsEdges(t *testing.T) {
	x := testutil.DC(2.5, 20)

	y, err := MovingAverage(x, 5)
	require.NoError(t, err)
	require.Len(t, y, len(x))
	for i, v := range y {
		assert.InDelta(t, 2.5, v, 1e-15, "sample %d", i)
	}
}

func TestMovingAverage_HandComputed(t *testing.T) {
	x := signal.Signal{1, 2, 3, 4, 5, 6}

	// window 3: half-width 1.
	y, err := MovingAverage(x, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1.5, 2, 3, 4, 5, 5.5}, []float64(y), 1e-12)

	// window 4: half-width 2, so the interior spans 5 samples.
	y, err = MovingAverage(x, 4)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 2.5, 3, 4, 4.5, 5}, []float64(y), 1e-12)
}

func TestMovingAverage_WindowLargerThanSignal(t *testing.T) {
	x := signal.Signal{1, 2, 3}
	y, err := MovingAverage(x, 50)
	require.NoError(t, err)
	for _, v := range y {
		assert.InDelta(t, 2, v, 1e-15)
	}
}

func TestMovingAverage_IsMeanNotMedian(t *testing.T) {
	y, err := MovingAverage(signal.Signal{0, 0, 9, 0, 0}, 5)
	require.NoError(t, err)
	assert.InDelta(t, 1.8, y[2], 1e-12)
}

func TestMovingAverage_RejectsWindow(t *testing.T) {
	for _, w := range []int{0, -1} {
		_, err := MovingAverage(signal.Signal{1, 2, 3}, w)
		assert.ErrorIs(t, err, core.ErrInvalidParameter, "window %d", w)
	}
}

func TestMovingAverage_ReducesNoise(t *testing.T) {
	x := testutil.Gaussian(7, 1, 2000)
	y, err := MovingAverage(x, 25)
	require.NoError(t, err)

	// Interior variance of a 25-sample mean of white noise is 1/25.
	assert.InDelta(t, 0.2, timestats.StdDev(y[100:1900]), 0.05)
}

func TestMovingAverage_Empty(t *testing.T) {
	y, err := MovingAverage(nil, 5)
	require.NoError(t, err)
	assert.Empty(t, y)
}

func TestSpan(t *testing.T) {
	assert.Equal(t, 1, Span(1))
	assert.Equal(t, 3, Span(2))
	assert.Equal(t, 5, Span(5))
	assert.Equal(t, 51, Span(50))
}

package noise

import (
	"bytes"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
	"github.com/cwbudde/harmonic-denoise/dsp/signal"
	"github.com/cwbudde/harmonic-denoise/logging"
)

const testSamples = 1000

func TestRealizeReturnsCachedSignalForSameParams(t *testing.T) {
	src := NewSource(testSamples, WithSeed(7))
	p := Params{Mean: 0, Variance: 0.2}

	a, err := src.Realize(p)
	require.NoError(t, err)
	b, err := src.Realize(p)
	require.NoError(t, err)

	require.Len(t, a, testSamples)
	assert.Same(t, &a[0], &b[0], "unchanged parameters must return the cached realization")
}

func TestRealizeRegeneratesOnChange(t *testing.T) {
	src := NewSource(testSamples, WithSeed(7))

	a, err := src.Realize(Params{Mean: 0, Variance: 0.2})
	require.NoError(t, err)
	b, err := src.Realize(Params{Mean: 0, Variance: 0.25})
	require.NoError(t, err)

	assert.NotSame(t, &a[0], &b[0])
	assert.False(t, signal.Same(a, b), "fresh draw must differ from the previous realization")

	cached, ok := src.Cached()
	require.True(t, ok)
	assert.Equal(t, Params{Mean: 0, Variance: 0.25}, cached)
}

func TestRealizeComparesBitPatterns(t *testing.T) {
	src := NewSource(16, WithSeed(1))

	a, err := src.Realize(Params{Mean: 0, Variance: 0.1})
	require.NoError(t, err)
	b, err := src.Realize(Params{Mean: math.Copysign(0, -1), Variance: 0.1})
	require.NoError(t, err)

	assert.NotSame(t, &a[0], &b[0], "-0 and +0 are different parameters")
}

func TestRealizeStatistics(t *testing.T) {
	src := NewSource(20000, WithSeed(3))
	p := Params{Mean: 0.3, Variance: 0.25}

	x, err := src.Realize(p)
	require.NoError(t, err)

	mean, std := stat.MeanStdDev(x, nil)
	assert.InDelta(t, p.Mean, mean, 0.02)
	assert.InDelta(t, p.StdDev(), std, 0.02, "standard deviation is sqrt(variance)")
}

func TestRealizeZeroVariance(t *testing.T) {
	src := NewSource(8, WithSeed(3))
	x, err := src.Realize(Params{Mean: 0.5})
	require.NoError(t, err)
	for i, v := range x {
		assert.Equal(t, 0.5, v, "sample %d", i)
	}
}

func TestRealizeRejectsInvalidAndKeepsCache(t *testing.T) {
	src := NewSource(testSamples, WithSeed(5))
	good := Params{Mean: 0, Variance: 0.2}
	a, err := src.Realize(good)
	require.NoError(t, err)

	for _, p := range []Params{
		{Mean: 0, Variance: -0.01},
		{Mean: math.NaN(), Variance: 0.1},
		{Mean: 0, Variance: math.Inf(1)},
	} {
		_, err := src.Realize(p)
		require.ErrorIs(t, err, core.ErrInvalidParameter, "params %+v", p)
	}

	b, err := src.Realize(good)
	require.NoError(t, err)
	assert.Same(t, &a[0], &b[0], "a rejected request must not replace the cache")
}

func TestSeedDeterminism(t *testing.T) {
	p := Params{Mean: 0, Variance: 1}
	a, err := NewSource(64, WithSeed(42)).Realize(p)
	require.NoError(t, err)
	b, err := NewSource(64, WithSeed(42)).Realize(p)
	require.NoError(t, err)
	assert.True(t, signal.Same(a, b))

	c, err := NewSource(64, WithSeed(43)).Realize(p)
	require.NoError(t, err)
	assert.False(t, signal.Same(a, c))
}

func TestInvalidate(t *testing.T) {
	src := NewSource(testSamples, WithSeed(9))
	p := Params{Variance: 0.2}
	a, err := src.Realize(p)
	require.NoError(t, err)

	src.Invalidate()
	_, ok := src.Cached()
	assert.False(t, ok)

	b, err := src.Realize(p)
	require.NoError(t, err)
	assert.False(t, signal.Same(a, b))
}

func TestRealizeLogsRegeneration(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewDefaultLogger(&buf)
	l.SetLevel(logging.DebugLevel)

	src := NewSource(4, WithSeed(1), WithLogger(l))
	_, err := src.Realize(Params{Variance: 0.2})
	require.NoError(t, err)
	_, err = src.Realize(Params{Variance: 0.2})
	require.NoError(t, err)

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("noise regenerated")))
}

func TestConcurrentRealize(t *testing.T) {
	src := NewSource(256, WithSeed(11))
	p := Params{Variance: 0.2}
	first, err := src.Realize(p)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			x, err := src.Realize(p)
			assert.NoError(t, err)
			assert.Same(t, &first[0], &x[0])
		}()
	}
	wg.Wait()
}

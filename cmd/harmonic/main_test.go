package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/harmonic-denoise/dsp/pipeline"
)

func TestDecodeConfig(t *testing.T) {
	cfg, err := decodeConfig(strings.NewReader(`
amplitude: 2
filter: moving-average
window: 9
seed: 12
edge: odd
grid:
  start: 0
  end: 5
  samples: 500
`))
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.Amplitude)
	assert.Equal(t, pipeline.FilterMovingAverage, cfg.FilterKind)
	assert.Equal(t, 9, cfg.WindowWidth)
	assert.Equal(t, 0.5, cfg.Frequency, "unset keys keep defaults")
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(12), *cfg.Seed)
	assert.Equal(t, "odd", cfg.Edge)

	g, err := cfg.grid()
	require.NoError(t, err)
	assert.Equal(t, 500, g.Len())
	assert.InDelta(t, 499.0/5, g.SampleRate(), 1e-12)
}

func TestDecodeConfig_EmptyKeepsDefaults(t *testing.T) {
	cfg, err := decodeConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestDecodeConfig_RejectsUnknownKeys(t *testing.T) {
	_, err := decodeConfig(strings.NewReader("amplitud: 2\n"))
	assert.Error(t, err)
}

func TestRun_CSV(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-seed", "3", "-format", "csv"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	records, err := csv.NewReader(&stdout).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1001)
	assert.Equal(t, []string{"t", "clean", "noisy", "filtered"}, records[0])
	assert.Equal(t, "0", records[1][0])
	assert.Equal(t, "10", records[1000][0])
}

func TestRun_CSVIsDeterministicWithSeed(t *testing.T) {
	var a, b, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-seed", "9", "-format", "csv"}, &a, &stderr))
	require.Equal(t, 0, run([]string{"-seed", "9", "-format", "csv"}, &b, &stderr))
	assert.Equal(t, a.String(), b.String())
}

func TestRun_Table(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-seed", "1", "-cutoff", "1.5"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	for _, want := range []string{"clean", "noisy", "filtered", "Power > 1.50 Hz", "butterworth order 4", "impulse response settles within", "filter: lowpass"} {
		assert.Contains(t, out, want)
	}
}

func TestRun_PresetWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("filter: lowpass\ncutoff: 3\nseed: 4\n"), 0o600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", path, "-filter", "moving-average", "-window", "15"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "filter: moving-average")
	assert.NotContains(t, stdout.String(), "butterworth")
}

func TestRun_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		code int
	}{
		{"help", []string{"-h"}, 0},
		{"unknown flag", []string{"-bogus"}, 2},
		{"bad log level", []string{"-log-level", "loud"}, 2},
		{"bad format", []string{"-format", "json"}, 1},
		{"bad filter", []string{"-filter", "median"}, 1},
		{"cutoff above nyquist", []string{"-cutoff", "60"}, 1},
		{"zero window", []string{"-filter", "ma", "-window", "0"}, 1},
		{"missing preset", []string{"-config", "/nonexistent/preset.yaml"}, 1},
		{"bad edge", []string{"-edge", "even"}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tc.code, run(tc.args, &stdout, &stderr), stderr.String())
		})
	}
}

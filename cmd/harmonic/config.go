package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/harmonic-denoise/dsp/pipeline"
	"github.com/cwbudde/harmonic-denoise/dsp/signal"
)

// gridConfig describes the sample grid of a preset.
type gridConfig struct {
	Start   float64 `yaml:"start"`
	End     float64 `yaml:"end"`
	Samples int     `yaml:"samples"`
}

// config is the YAML preset layout: the request fields at top level plus
// run settings.
type config struct {
	pipeline.Request `yaml:",inline"`

	Grid    gridConfig `yaml:"grid"`
	Seed    *uint64    `yaml:"seed"`
	Edge    string     `yaml:"edge"`
	Cascade bool       `yaml:"cascade"`
}

func defaultConfig() config {
	return config{
		Request: pipeline.DefaultRequest(),
		Grid: gridConfig{
			Start:   signal.DefaultStart,
			End:     signal.DefaultEnd,
			Samples: signal.DefaultSamples,
		},
	}
}

// decodeConfig reads a preset over the defaults. Unknown keys are rejected.
func decodeConfig(r io.Reader) (config, error) {
	cfg := defaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return config{}, fmt.Errorf("decode preset: %w", err)
	}
	return cfg, nil
}

func loadConfig(path string) (config, error) {
	f, err := os.Open(path)
	if err != nil {
		return config{}, fmt.Errorf("open preset: %w", err)
	}
	defer f.Close()

	return decodeConfig(f)
}

func (c config) grid() (*signal.Grid, error) {
	return signal.NewGrid(c.Grid.Start, c.Grid.End, c.Grid.Samples)
}

package pipeline

import (
	"fmt"
	"strings"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
	"github.com/cwbudde/harmonic-denoise/dsp/noise"
	"github.com/cwbudde/harmonic-denoise/dsp/signal"
)

// FilterKind names a filter in flat requests.
type FilterKind string

const (
	FilterLowpass       FilterKind = "lowpass"
	FilterMovingAverage FilterKind = "moving-average"
)

// ParseFilterKind accepts the canonical names plus a few common spellings.
func ParseFilterKind(s string) (FilterKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowpass", "low-pass", "butterworth":
		return FilterLowpass, nil
	case "moving-average", "moving_average", "movingaverage", "ma":
		return FilterMovingAverage, nil
	default:
		return "", fmt.Errorf("%w: unknown filter kind %q", core.ErrInvalidParameter, s)
	}
}

// Request is the flat inbound record of the interactive front ends.
// Only the field matching FilterKind is used.
type Request struct {
	Amplitude       float64    `yaml:"amplitude"`
	Frequency       float64    `yaml:"frequency"`
	Phase           float64    `yaml:"phase"`
	NoiseMean       float64    `yaml:"noise_mean"`
	NoiseVariance   float64    `yaml:"noise_variance"`
	FilterKind      FilterKind `yaml:"filter"`
	CutoffFrequency float64    `yaml:"cutoff"`
	WindowWidth     int        `yaml:"window"`
	ShowNoise       bool       `yaml:"show_noise"`
}

// DefaultRequest returns the initial state of the demos.
func DefaultRequest() Request {
	return Request{
		Amplitude:       1,
		Frequency:       0.5,
		Phase:           0,
		NoiseMean:       0,
		NoiseVariance:   0.2,
		FilterKind:      FilterLowpass,
		CutoffFrequency: 2,
		WindowWidth:     50,
		ShowNoise:       true,
	}
}

// Params converts r into evaluation parameters. Value ranges are checked by
// Evaluate; only the filter kind is resolved here.
func (r Request) Params() (Params, error) {
	kind, err := ParseFilterKind(string(r.FilterKind))
	if err != nil {
		return Params{}, err
	}

	var choice FilterChoice
	switch kind {
	case FilterLowpass:
		choice = Lowpass{Cutoff: r.CutoffFrequency}
	case FilterMovingAverage:
		choice = MovingAverage{Window: r.WindowWidth}
	}

	return Params{
		Harmonic: signal.HarmonicParams{
			Amplitude: r.Amplitude,
			Frequency: r.Frequency,
			Phase:     r.Phase,
		},
		Noise: noise.Params{
			Mean:     r.NoiseMean,
			Variance: r.NoiseVariance,
		},
		Filter:    choice,
		ShowNoise: r.ShowNoise,
	}, nil
}

package webdemo

import (
	"math"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
	"github.com/cwbudde/harmonic-denoise/dsp/pipeline"
)

// Range is an inclusive slider range.
type Range struct {
	Min, Max float64
}

// Slider ranges of the interactive demos.
var (
	AmplitudeRange     = Range{Min: 0.1, Max: 2}
	FrequencyRange     = Range{Min: 0, Max: 2}
	PhaseRange         = Range{Min: -2 * math.Pi, Max: 2 * math.Pi}
	NoiseMeanRange     = Range{Min: -0.5, Max: 0.5}
	NoiseVarianceRange = Range{Min: 0, Max: 1}
	CutoffRange        = Range{Min: 0.1, Max: 5}
	WindowRange        = Range{Min: 1, Max: 100}
)

// apply clamps v into r; NaN becomes def.
func (r Range) apply(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return core.Clamp(v, r.Min, r.Max)
}

// Sanitize clamps every field of r to its slider range and resolves the
// filter kind. Only an unknown filter kind is an error.
func Sanitize(r pipeline.Request) (pipeline.Request, error) {
	kind, err := pipeline.ParseFilterKind(string(r.FilterKind))
	if err != nil {
		return pipeline.Request{}, err
	}
	def := pipeline.DefaultRequest()

	window := int(math.Round(WindowRange.apply(float64(r.WindowWidth), float64(def.WindowWidth))))

	return pipeline.Request{
		Amplitude:       AmplitudeRange.apply(r.Amplitude, def.Amplitude),
		Frequency:       FrequencyRange.apply(r.Frequency, def.Frequency),
		Phase:           PhaseRange.apply(r.Phase, def.Phase),
		NoiseMean:       NoiseMeanRange.apply(r.NoiseMean, def.NoiseMean),
		NoiseVariance:   NoiseVarianceRange.apply(r.NoiseVariance, def.NoiseVariance),
		FilterKind:      kind,
		CutoffFrequency: CutoffRange.apply(r.CutoffFrequency, def.CutoffFrequency),
		WindowWidth:     window,
		ShowNoise:       r.ShowNoise,
	}, nil
}

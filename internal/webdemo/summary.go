package webdemo

import (
	"errors"

	"github.com/cwbudde/harmonic-denoise/dsp/pipeline"
	"github.com/cwbudde/harmonic-denoise/stats/frequency"
	timestats "github.com/cwbudde/harmonic-denoise/stats/time"
)

const (
	// edgeSkip is the number of samples ignored at each end when comparing
	// the filtered trace to the clean one.
	edgeSkip = 50

	// rolloffFraction is the energy share reported by FilteredRolloff.
	rolloffFraction = 0.95
)

// Summary condenses one evaluation for display.
type Summary struct {
	CleanStd, NoisyStd, FilteredStd float64

	// Filtered compared against clean, edges excluded.
	Error timestats.Comparison

	// Dominant frequency of each trace in Hz.
	CleanPeak, FilteredPeak float64

	// Spectral centroids in Hz. Removing broadband noise pulls the
	// filtered centroid towards the harmonic.
	NoisyCentroid, FilteredCentroid float64

	// Frequency below which 95% of the filtered energy lies, and the 3 dB
	// bandwidth around the filtered peak, in Hz.
	FilteredRolloff, FilteredBandwidth float64
}

// Summarize computes the display summary of res.
func Summarize(res pipeline.Result, sampleRate float64) (Summary, error) {
	if len(res.Clean) == 0 {
		return Summary{}, errors.New("empty result")
	}

	cmp, err := timestats.Compare(res.Clean, res.Filtered, min(edgeSkip, (len(res.Clean)-1)/2))
	if err != nil {
		return Summary{}, err
	}
	cleanSp, err := frequency.Magnitude(res.Clean, sampleRate)
	if err != nil {
		return Summary{}, err
	}
	noisySp, err := frequency.Magnitude(res.Noisy, sampleRate)
	if err != nil {
		return Summary{}, err
	}
	filtSp, err := frequency.Magnitude(res.Filtered, sampleRate)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		CleanStd:     timestats.StdDev(res.Clean),
		NoisyStd:     timestats.StdDev(res.Noisy),
		FilteredStd:  timestats.StdDev(res.Filtered),
		Error:        cmp,
		CleanPeak:    cleanSp.DominantFrequency(),
		FilteredPeak: filtSp.DominantFrequency(),

		NoisyCentroid:     noisySp.Centroid(),
		FilteredCentroid:  filtSp.Centroid(),
		FilteredRolloff:   filtSp.Rolloff(rolloffFraction),
		FilteredBandwidth: filtSp.Bandwidth(),
	}, nil
}

// Summary summarizes the current result.
func (e *Engine) Summary() (Summary, error) {
	if !e.ready {
		return Summary{}, errors.New("no result yet")
	}
	return Summarize(e.result, e.grid.SampleRate())
}

// Trace names one of the three result traces.
type Trace string

const (
	TraceClean    Trace = "clean"
	TraceNoisy    Trace = "noisy"
	TraceFiltered Trace = "filtered"
)

// Spectrum returns the amplitude spectrum of one trace of the current result.
func (e *Engine) Spectrum(t Trace) (frequency.Spectrum, error) {
	if !e.ready {
		return frequency.Spectrum{}, errors.New("no result yet")
	}
	switch t {
	case TraceClean:
		return frequency.Magnitude(e.result.Clean, e.grid.SampleRate())
	case TraceNoisy:
		return frequency.Magnitude(e.result.Noisy, e.grid.SampleRate())
	case TraceFiltered:
		return frequency.Magnitude(e.result.Filtered, e.grid.SampleRate())
	default:
		return frequency.Spectrum{}, errors.New("unknown trace: " + string(t))
	}
}

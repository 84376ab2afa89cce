package frequency

import (
	"fmt"

	"github.com/mjibson/go-dsp/spectral"
	"github.com/mjibson/go-dsp/window"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
)

// PSD is a one-sided power spectral density estimate.
type PSD struct {
	Freqs []float64 // Hz
	Power []float64 // power per Hz
}

// Welch estimates the power spectral density of x with Welch's method:
// Hann-windowed segments of the given length with 50% overlap.
func Welch(x []float64, sampleRate float64, segment int) (PSD, error) {
	if segment < 2 || segment%2 != 0 {
		return PSD{}, fmt.Errorf("%w: welch segment must be even and >= 2: %d", core.ErrInvalidParameter, segment)
	}
	if segment > len(x) {
		return PSD{}, fmt.Errorf("%w: welch segment %d longer than signal %d", core.ErrInvalidParameter, segment, len(x))
	}
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return PSD{}, fmt.Errorf("%w: welch sample rate must be > 0: %v", core.ErrInvalidParameter, sampleRate)
	}

	buf := make([]float64, len(x))
	copy(buf, x)
	pxx, freqs := spectral.Pwelch(buf, sampleRate, &spectral.PwelchOptions{
		NFFT:     segment,
		Noverlap: segment / 2,
		Window:   window.Hann,
	})

	return PSD{Freqs: freqs, Power: pxx}, nil
}

// BandPower integrates the density over [lo, hi] Hz.
func (p PSD) BandPower(lo, hi float64) float64 {
	if len(p.Freqs) < 2 {
		return 0
	}
	df := p.Freqs[1] - p.Freqs[0]

	var sum float64
	for i, f := range p.Freqs {
		if f >= lo && f <= hi {
			sum += p.Power[i]
		}
	}
	return sum * df
}

// TotalPower integrates the whole density.
func (p PSD) TotalPower() float64 {
	if len(p.Freqs) == 0 {
		return 0
	}
	return p.BandPower(p.Freqs[0], p.Freqs[len(p.Freqs)-1])
}

// FractionAbove returns the share of the total power above f Hz. It is 0
// for a silent signal.
func (p PSD) FractionAbove(f float64) float64 {
	total := p.TotalPower()
	if total == 0 {
		return 0
	}
	return p.BandPower(f, p.Freqs[len(p.Freqs)-1]) / total
}

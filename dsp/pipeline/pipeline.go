package pipeline

import (
	"fmt"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
	"github.com/cwbudde/harmonic-denoise/dsp/filter/lowpass"
	"github.com/cwbudde/harmonic-denoise/dsp/filter/smooth"
	"github.com/cwbudde/harmonic-denoise/dsp/noise"
	"github.com/cwbudde/harmonic-denoise/dsp/signal"
	"github.com/cwbudde/harmonic-denoise/logging"
)

// Pipeline evaluates Params on a fixed grid with one noise source.
// It is as safe for concurrent use as its Source, but calls on one session
// are expected to be sequential.
type Pipeline struct {
	grid   *signal.Grid
	src    *noise.Source
	logger logging.Logger

	applyOpts []lowpass.ApplyOption
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for evaluation events.
func WithLogger(l logging.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logging.OrNoOp(l)
	}
}

// WithEdge selects the edge handling of the low-pass stage.
func WithEdge(m lowpass.EdgeMode) Option {
	return func(p *Pipeline) {
		p.applyOpts = append(p.applyOpts, lowpass.WithEdge(m))
	}
}

// WithCascade runs the low-pass stage through its second-order sections.
func WithCascade() Option {
	return func(p *Pipeline) {
		p.applyOpts = append(p.applyOpts, lowpass.WithCascade())
	}
}

// New creates a pipeline. src must produce realizations of grid.Len()
// samples.
func New(grid *signal.Grid, src *noise.Source, opts ...Option) (*Pipeline, error) {
	if grid == nil || src == nil {
		return nil, fmt.Errorf("%w: pipeline needs a grid and a noise source", core.ErrInvalidParameter)
	}
	if src.Len() != grid.Len() {
		return nil, fmt.Errorf("%w: noise length %d does not match grid length %d",
			core.ErrInvalidParameter, src.Len(), grid.Len())
	}

	p := &Pipeline{
		grid:   grid,
		src:    src,
		logger: logging.NoOpLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Grid returns the evaluation grid.
func (p *Pipeline) Grid() *signal.Grid { return p.grid }

// Source returns the noise source.
func (p *Pipeline) Source() *noise.Source { return p.src }

// Evaluate produces the clean, noisy and filtered traces for params.
//
// All parameters are validated before the noise source is consulted, so a
// rejected request never replaces the cached realization.
func (p *Pipeline) Evaluate(params Params) (Result, error) {
	if err := params.Harmonic.Validate(); err != nil {
		return Result{}, fmt.Errorf("harmonic: %w", err)
	}
	if err := params.Noise.Validate(); err != nil {
		return Result{}, fmt.Errorf("noise: %w", err)
	}
	apply, err := p.filterStage(params.Filter)
	if err != nil {
		return Result{}, fmt.Errorf("filter: %w", err)
	}

	clean, err := signal.Harmonic(p.grid, params.Harmonic)
	if err != nil {
		return Result{}, fmt.Errorf("harmonic: %w", err)
	}
	nz, err := p.src.Realize(params.Noise)
	if err != nil {
		return Result{}, fmt.Errorf("noise: %w", err)
	}
	mixed, err := signal.Add(clean, nz)
	if err != nil {
		return Result{}, err
	}

	filtered, err := apply(mixed)
	if err != nil {
		return Result{}, fmt.Errorf("filter %v: %w", params.Filter, err)
	}

	noisy := mixed
	if !params.ShowNoise {
		noisy = clean.Clone()
	}

	p.logger.Debug("evaluated", logging.Fields{
		"filter":     params.Filter.String(),
		"show_noise": params.ShowNoise,
		"samples":    p.grid.Len(),
	})

	return Result{
		Time:     p.grid.Times(),
		Clean:    clean,
		Noisy:    noisy,
		Filtered: filtered,
	}, nil
}

// filterStage validates choice and returns the function applying it.
func (p *Pipeline) filterStage(choice FilterChoice) (func(signal.Signal) (signal.Signal, error), error) {
	switch f := choice.(type) {
	case Lowpass:
		c, err := lowpass.Design(f.Cutoff, p.grid.SampleRate())
		if err != nil {
			return nil, err
		}
		return func(x signal.Signal) (signal.Signal, error) {
			return lowpass.Apply(x, c, p.applyOpts...)
		}, nil
	case MovingAverage:
		if f.Window < 1 {
			return nil, fmt.Errorf("%w: moving average window must be >= 1: %d", core.ErrInvalidParameter, f.Window)
		}
		return func(x signal.Signal) (signal.Signal, error) {
			return smooth.MovingAverage(x, f.Window)
		}, nil
	case nil:
		return nil, fmt.Errorf("%w: no filter selected", core.ErrInvalidParameter)
	default:
		return nil, fmt.Errorf("%w: unsupported filter %T", core.ErrInvalidParameter, choice)
	}
}

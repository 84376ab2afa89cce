// Package webdemo holds the per-session state behind the interactive
// front ends: one noise source, one pipeline and the last request.
package webdemo

import (
	"fmt"
	"math"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
	"github.com/cwbudde/harmonic-denoise/dsp/filter/lowpass"
	"github.com/cwbudde/harmonic-denoise/dsp/filter/smooth"
	"github.com/cwbudde/harmonic-denoise/dsp/noise"
	"github.com/cwbudde/harmonic-denoise/dsp/pipeline"
	"github.com/cwbudde/harmonic-denoise/dsp/signal"
	"github.com/cwbudde/harmonic-denoise/logging"
)

type engineConfig struct {
	grid    *signal.Grid
	seed    *uint64
	logger  logging.Logger
	edge    lowpass.EdgeMode
	cascade bool
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithGrid overrides the default 1000-point grid over [0, 10] s.
func WithGrid(g *signal.Grid) Option {
	return func(cfg *engineConfig) { cfg.grid = g }
}

// WithSeed makes the session's noise deterministic.
func WithSeed(seed uint64) Option {
	return func(cfg *engineConfig) { cfg.seed = &seed }
}

// WithLogger sets the session logger.
func WithLogger(l logging.Logger) Option {
	return func(cfg *engineConfig) { cfg.logger = logging.OrNoOp(l) }
}

// WithEdge selects the low-pass edge handling.
func WithEdge(m lowpass.EdgeMode) Option {
	return func(cfg *engineConfig) { cfg.edge = m }
}

// WithCascade runs the low-pass through second-order sections.
func WithCascade() Option {
	return func(cfg *engineConfig) { cfg.cascade = true }
}

// Engine is one interactive session. It is not safe for concurrent use.
type Engine struct {
	grid     *signal.Grid
	src      *noise.Source
	pipeline *pipeline.Pipeline
	logger   logging.Logger

	request pipeline.Request
	result  pipeline.Result
	ready   bool
}

// NewEngine creates a session initialized with the demo defaults and
// evaluates them once.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := engineConfig{logger: logging.NoOpLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.grid == nil {
		cfg.grid = signal.DefaultGrid()
	}

	srcOpts := []noise.Option{noise.WithLogger(cfg.logger)}
	if cfg.seed != nil {
		srcOpts = append(srcOpts, noise.WithSeed(*cfg.seed))
	}
	src := noise.NewSource(cfg.grid.Len(), srcOpts...)

	pipeOpts := []pipeline.Option{pipeline.WithLogger(cfg.logger), pipeline.WithEdge(cfg.edge)}
	if cfg.cascade {
		pipeOpts = append(pipeOpts, pipeline.WithCascade())
	}
	p, err := pipeline.New(cfg.grid, src, pipeOpts...)
	if err != nil {
		return nil, fmt.Errorf("session pipeline: %w", err)
	}

	e := &Engine{
		grid:     cfg.grid,
		src:      src,
		pipeline: p,
		logger:   cfg.logger,
	}
	if _, err := e.Update(pipeline.DefaultRequest()); err != nil {
		return nil, err
	}
	return e, nil
}

// Grid returns the session grid.
func (e *Engine) Grid() *signal.Grid { return e.grid }

// Request returns the last accepted (sanitized) request.
func (e *Engine) Request() pipeline.Request { return e.request }

// Result returns the last evaluation result.
func (e *Engine) Result() (pipeline.Result, bool) { return e.result, e.ready }

// Update sanitizes r to the slider ranges, evaluates it and keeps it as the
// current state. On error the previous state is kept.
func (e *Engine) Update(r pipeline.Request) (pipeline.Result, error) {
	clean, err := Sanitize(r)
	if err != nil {
		return pipeline.Result{}, err
	}
	return e.evaluate(clean)
}

// Reset restores the demo defaults.
func (e *Engine) Reset() (pipeline.Result, error) {
	e.logger.Info("session reset")
	return e.Update(pipeline.DefaultRequest())
}

// Regenerate draws a new noise realization for the current request.
func (e *Engine) Regenerate() (pipeline.Result, error) {
	e.src.Invalidate()
	e.logger.Debug("noise invalidated", logging.Fields{
		"mean":     e.request.NoiseMean,
		"variance": e.request.NoiseVariance,
	})
	return e.evaluate(e.request)
}

func (e *Engine) evaluate(r pipeline.Request) (pipeline.Result, error) {
	params, err := r.Params()
	if err != nil {
		return pipeline.Result{}, err
	}
	res, err := e.pipeline.Evaluate(params)
	if err != nil {
		e.logger.Error(err, "evaluate failed", logging.Fields{"filter": string(r.FilterKind)})
		return pipeline.Result{}, err
	}

	e.request = r
	e.result = res
	e.ready = true
	return res, nil
}

// ResponseCurveDB returns the magnitude response of the current filter in dB
// for freqs, as the zero-phase run applies it. Values are floored at -120 dB.
func (e *Engine) ResponseCurveDB(freqs []float64) ([]float64, error) {
	out := make([]float64, len(freqs))

	switch e.request.FilterKind {
	case pipeline.FilterLowpass:
		c, err := lowpass.Design(e.request.CutoffFrequency, e.grid.SampleRate())
		if err != nil {
			return nil, err
		}
		for i, f := range freqs {
			f = core.Clamp(f, 0, e.grid.Nyquist())
			out[i] = ampToDB(c.ZeroPhaseGain(f))
		}
	case pipeline.FilterMovingAverage:
		span := smooth.Span(e.request.WindowWidth)
		for i, f := range freqs {
			f = core.Clamp(f, 0, e.grid.Nyquist())
			out[i] = ampToDB(movingAverageGain(span, f/e.grid.SampleRate()))
		}
	default:
		return nil, fmt.Errorf("no response for filter %q", e.request.FilterKind)
	}
	return out, nil
}

// movingAverageGain is |sum_{k=-h}^{h} e^{-j2pi f k}| / span for a centered
// window of odd span at normalized frequency f.
func movingAverageGain(span int, f float64) float64 {
	w := math.Pi * f
	s := math.Sin(w)
	if math.Abs(s) < 1e-12 {
		return 1
	}
	return math.Abs(math.Sin(float64(span)*w) / (float64(span) * s))
}

// ampToDB converts an amplitude gain to dB, floored at -120 dB.
func ampToDB(g float64) float64 {
	return 20 * math.Log10(math.Max(1e-6, g))
}

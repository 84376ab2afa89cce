package lowpass

import (
	"fmt"
	"strings"

	"github.com/cwbudde/harmonic-denoise/dsp/core"
	"github.com/cwbudde/harmonic-denoise/dsp/filter/biquad"
	"github.com/cwbudde/harmonic-denoise/dsp/signal"
	"gonum.org/v1/gonum/floats"
)

// EdgeMode selects how the ends of the signal are treated around the two
// filter passes.
type EdgeMode int

const (
	// EdgeNone runs both passes from a zero state on the bare signal.
	EdgeNone EdgeMode = iota

	// EdgeOdd extends the signal by an odd reflection around each end
	// point and starts every pass in the steady state for its first
	// sample. The extension is dropped from the result.
	EdgeOdd
)

func (m EdgeMode) String() string {
	switch m {
	case EdgeNone:
		return "none"
	case EdgeOdd:
		return "odd"
	default:
		return fmt.Sprintf("EdgeMode(%d)", int(m))
	}
}

// ParseEdgeMode parses "none" or "odd". The empty string is EdgeNone.
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return EdgeNone, nil
	case "odd":
		return EdgeOdd, nil
	default:
		return EdgeNone, fmt.Errorf("%w: unknown edge mode %q", core.ErrInvalidParameter, s)
	}
}

type applyConfig struct {
	edge    EdgeMode
	cascade bool
}

// ApplyOption configures Apply.
type ApplyOption func(*applyConfig)

// WithEdge sets the edge handling. The default is EdgeNone.
func WithEdge(m EdgeMode) ApplyOption {
	return func(cfg *applyConfig) {
		cfg.edge = m
	}
}

// WithCascade runs each pass through the second-order sections instead of
// the expanded polynomial form.
func WithCascade() ApplyOption {
	return func(cfg *applyConfig) {
		cfg.cascade = true
	}
}

// PadLen is the number of samples EdgeOdd adds at each end.
func (c Coefficients) PadLen() int {
	return 3 * max(len(c.A), len(c.B))
}

// Apply filters x forward and backward with c and returns a new signal of
// the same length. x is not modified.
func Apply(x signal.Signal, c Coefficients, opts ...ApplyOption) (signal.Signal, error) {
	cfg := applyConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	if cfg.cascade && len(c.Sections) == 0 {
		return nil, fmt.Errorf("%w: lowpass cascade requested without sections", core.ErrInvalidParameter)
	}
	if cfg.edge != EdgeNone && cfg.edge != EdgeOdd {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidParameter, cfg.edge)
	}
	if len(x) == 0 {
		return signal.Signal{}, nil
	}
	if err := x.Finite(); err != nil {
		return nil, fmt.Errorf("lowpass input: %w", err)
	}

	pad := 0
	var buf []float64
	if cfg.edge == EdgeOdd {
		pad = c.PadLen()
		if len(x) <= pad {
			return nil, fmt.Errorf("%w: lowpass odd extension needs more than %d samples: %d",
				core.ErrInvalidParameter, pad, len(x))
		}
		buf = oddExtend(x, pad)
	} else {
		buf = make([]float64, len(x))
		copy(buf, x)
	}

	for _, name := range [...]string{"forward", "backward"} {
		c.pass(buf, cfg)
		if i := core.FirstNonFinite(buf); i >= 0 {
			return nil, fmt.Errorf("%w: lowpass %s pass produced %v at sample %d",
				core.ErrNumericalInstability, name, buf[i], i)
		}
		floats.Reverse(buf)
	}

	return signal.Signal(buf[pad : len(buf)-pad]), nil
}

// Filter designs the 4th-order filter for cutoff at fs and applies it to x.
func Filter(x signal.Signal, cutoff, fs float64, opts ...ApplyOption) (signal.Signal, error) {
	c, err := Design(cutoff, fs)
	if err != nil {
		return nil, err
	}
	return Apply(x, c, opts...)
}

// pass runs one causal pass over buf in place.
func (c Coefficients) pass(buf []float64, cfg applyConfig) {
	if cfg.cascade {
		chain := biquad.NewChain(c.Sections)
		if cfg.edge == EdgeOdd {
			chain.SetSteadyState(buf[0])
		}
		chain.ProcessBlock(buf)
		return
	}

	var z []float64
	if cfg.edge == EdgeOdd {
		z = c.steadyState(buf[0])
	} else {
		z = make([]float64, c.Order())
	}
	c.lfilter(buf, z)
}

// lfilter is the transposed direct form II recursion with state z of length
// Order(). A[0] is assumed to be 1.
func (c Coefficients) lfilter(buf, z []float64) {
	b, a := c.B, c.A
	n := len(z)
	for i, x := range buf {
		y := b[0]*x + z[0]
		for k := 0; k < n-1; k++ {
			z[k] = b[k+1]*x - a[k+1]*y + z[k+1]
		}
		z[n-1] = b[n]*x - a[n]*y
		buf[i] = y
	}
}

// steadyState returns the lfilter state for a constant input x.
func (c Coefficients) steadyState(x float64) []float64 {
	b, a := c.B, c.A
	n := c.Order()
	y := floats.Sum(b) / floats.Sum(a) * x

	z := make([]float64, n)
	z[n-1] = b[n]*x - a[n]*y
	for k := n - 2; k >= 0; k-- {
		z[k] = b[k+1]*x - a[k+1]*y + z[k+1]
	}
	return z
}

// oddExtend returns x with pad samples of 2*x[0]-x[pad..1] in front and
// 2*x[n-1]-x[n-2..n-1-pad] behind.
func oddExtend(x signal.Signal, pad int) []float64 {
	n := len(x)
	out := make([]float64, n+2*pad)
	for i := 0; i < pad; i++ {
		out[i] = 2*x[0] - x[pad-i]
		out[pad+n+i] = 2*x[n-1] - x[n-2-i]
	}
	copy(out[pad:], x)
	return out
}

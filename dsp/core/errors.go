package core

import "errors"

var (
	// ErrInvalidParameter reports an out-of-domain numeric input such as a
	// negative noise variance, a non-positive amplitude, a cutoff at or above
	// Nyquist or a moving-average window below one sample.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNumericalInstability reports that filter design or filtering produced
	// NaN or Inf values.
	ErrNumericalInstability = errors.New("numerical instability")
)

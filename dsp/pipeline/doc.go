// Package pipeline composes the harmonic generator, the cached noise source
// and one of the smoothing filters into a single synchronous evaluation.
//
// Every Evaluate call regenerates the clean harmonic and re-runs the filter;
// only the noise realization is reused between calls, and only while its
// parameters stay bit-identical. The filter always sees clean + noise,
// whether or not the noisy trace is shown.
package pipeline

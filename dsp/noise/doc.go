// Package noise produces the additive Gaussian noise vector mixed into the
// harmonic signal.
//
// A [Source] keeps exactly one cached realization. Asking again with
// bit-identical [Params] returns that same realization, so noise stays
// visually stable while unrelated parameters change; any change of mean or
// variance draws a fresh vector.
package noise

// Package signal defines the shared time grid, the Signal value type and the
// harmonic generator every other package builds on.
//
// A [Grid] is constructed once per session and shared by pointer. A [Signal]
// is index-aligned with its grid; functions in this module never write into a
// Signal they did not allocate, so derived signals are always new slices.
package signal

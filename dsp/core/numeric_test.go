package core

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestFirstNonFinite(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want int
	}{
		{name: "empty", data: nil, want: -1},
		{name: "finite", data: []float64{0, 1, -2.5}, want: -1},
		{name: "nan", data: []float64{0, math.NaN(), 1}, want: 1},
		{name: "inf", data: []float64{math.Inf(-1)}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstNonFinite(tt.data); got != tt.want {
				t.Fatalf("FirstNonFinite() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSameBits(t *testing.T) {
	if !SameBits(0.2, 0.2) {
		t.Fatal("identical values must compare equal")
	}
	if SameBits(0, math.Copysign(0, -1)) {
		t.Fatal("+0 and -0 must differ bitwise")
	}
	nan := math.NaN()
	if !SameBits(nan, nan) {
		t.Fatal("identical NaN payloads must compare equal")
	}
}

func TestErrorsWrap(t *testing.T) {
	err := fmt.Errorf("%w: window must be >= 1: %d", ErrInvalidParameter, 0)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("errors.Is(%v, ErrInvalidParameter) = false", err)
	}
	if errors.Is(err, ErrNumericalInstability) {
		t.Fatal("unexpected match against ErrNumericalInstability")
	}
}

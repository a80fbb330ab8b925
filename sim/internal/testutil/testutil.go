// Package testutil provides shared test infrastructure for the packet simulator.
// It holds scripted random sources and assertion helpers used across sim/
// test packages, without importing sim itself.
package testutil

import (
	"math"
	"testing"
)

// ScriptedSource replays fixed draws. It satisfies sim.RandomSource.
// Once a script is exhausted, Float64 returns FloatFallback and Intn returns
// IntFallback clamped into [0, n).
type ScriptedSource struct {
	Floats        []float64
	Ints          []int
	FloatFallback float64
	IntFallback   int

	floatIdx int
	intIdx   int
}

// NoArrivals returns a source whose every trial fails for any probability < 1.
func NoArrivals() *ScriptedSource {
	return &ScriptedSource{FloatFallback: math.Nextafter(1, 0)}
}

// Float64 returns the next scripted float.
func (s *ScriptedSource) Float64() float64 {
	if s.floatIdx < len(s.Floats) {
		v := s.Floats[s.floatIdx]
		s.floatIdx++
		return v
	}
	return s.FloatFallback
}

// Intn returns the next scripted int, clamped into [0, n).
func (s *ScriptedSource) Intn(n int) int {
	v := s.IntFallback
	if s.intIdx < len(s.Ints) {
		v = s.Ints[s.intIdx]
		s.intIdx++
	}
	return min(max(v, 0), n-1)
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// probability/normalize.go
package probability

import (
	"cmp"
	"math"
	"slices"
)

// Normalize maps samples onto the dense range [0, numStates). Distinct values
// are ranked in ascending order and each sample receives the rank of its
// value. Two samples share a state only when their bit patterns are equal.
func Normalize(samples []float64) ([]uint32, uint32) {
	states := allocate[uint32](uint64(len(samples)), "normalized states")
	if len(samples) == 0 {
		return states, 0
	}

	distinct := Values(samples)
	rank := make(map[uint64]uint32, len(distinct))
	for i, v := range distinct {
		rank[math.Float64bits(v)] = uint32(i)
	}
	for i, v := range samples {
		states[i] = rank[math.Float64bits(v)]
	}
	return states, uint32(len(distinct))
}

// Values returns the distinct values of samples in state order, so Values(x)[i]
// is the value Normalize assigns to state i.
func Values(samples []float64) []float64 {
	seen := make(map[uint64]struct{}, len(samples))
	distinct := make([]float64, 0, len(samples))
	for _, v := range samples {
		bits := math.Float64bits(v)
		if _, ok := seen[bits]; ok {
			continue
		}
		seen[bits] = struct{}{}
		distinct = append(distinct, v)
	}
	slices.SortFunc(distinct, compareValues)
	return distinct
}

// compareValues orders ascending by value. Values equal under cmp.Compare
// (-0/+0, NaNs) fall back to their bit patterns so the order stays total.
func compareValues(a, b float64) int {
	if c := cmp.Compare(a, b); c != 0 {
		return c
	}
	ab, bb := math.Float64bits(a), math.Float64bits(b)
	// -0 has the sign bit set and must sort before +0.
	if a == 0 && b == 0 {
		return cmp.Compare(bb, ab)
	}
	return cmp.Compare(ab, bb)
}

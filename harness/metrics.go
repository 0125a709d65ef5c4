// harness/metrics.go
// Package: harness
package harness

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// quantile returns the q-quantile (0..1) of values, linearly interpolated
// over the empirical distribution. values is not modified.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return stat.Quantile(min(max(q, 0), 1), stat.LinInterp, sorted, nil)
}

// meanStd returns the mean and population standard deviation.
func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean, variance := stat.PopMeanVariance(values, nil)
	return mean, math.Sqrt(variance)
}

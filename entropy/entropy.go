// Package entropy computes information-theoretic measures over discrete
// sample vectors using the distributions tabulated by package probability.
package entropy

import (
	"math"

	"github.com/mwiater/mitoolbox/probability"
	"gonum.org/v1/gonum/stat"
)

// Common logarithm bases.
const (
	Bits = 2.0
	Nats = math.E
	Bans = 10.0
)

// Entropy returns H(X) of the samples in the given log base.
func Entropy(x []float64, base float64) float64 {
	return inBase(stat.Entropy(probability.Probability(x).PMF), base)
}

// JointEntropy returns H(X,Y).
func JointEntropy(x, y []float64, base float64) (float64, error) {
	state, err := probability.JointProbability(x, y)
	if err != nil {
		return 0, err
	}
	return inBase(stat.Entropy(state.JointPMF), base), nil
}

// ConditionalEntropy returns H(X|Y) = H(X,Y) - H(Y).
func ConditionalEntropy(x, y []float64, base float64) (float64, error) {
	state, err := probability.JointProbability(x, y)
	if err != nil {
		return 0, err
	}
	h := stat.Entropy(state.JointPMF) - stat.Entropy(state.SecondPMF)
	return clampZero(inBase(h, base)), nil
}

// MutualInformation returns I(X;Y).
func MutualInformation(x, y []float64, base float64) (float64, error) {
	state, err := probability.JointProbability(x, y)
	if err != nil {
		return 0, err
	}

	var mi float64
	for s := uint32(0); s < state.NumSecondStates; s++ {
		py := state.SecondPMF[s]
		for f := uint32(0); f < state.NumFirstStates; f++ {
			pxy := state.At(f, s)
			if pxy == 0 {
				continue
			}
			mi += pxy * math.Log(pxy/(state.FirstPMF[f]*py))
		}
	}
	return clampZero(inBase(mi, base)), nil
}

// ConditionalMutualInformation returns I(X;Y|Z) = H(X|Z) - H(X|Y,Z).
func ConditionalMutualInformation(x, y, z []float64, base float64) (float64, error) {
	hxz, err := ConditionalEntropy(x, z, base)
	if err != nil {
		return 0, err
	}
	yz, _, err := probability.Merge(y, z)
	if err != nil {
		return 0, err
	}
	hxyz, err := ConditionalEntropy(x, yz, base)
	if err != nil {
		return 0, err
	}
	return clampZero(hxz - hxyz), nil
}

func inBase(nats, base float64) float64 {
	if base == Nats {
		return nats
	}
	return nats / math.Log(base)
}

// clampZero removes the tiny negative values left by cancellation in
// quantities that are non-negative by definition.
func clampZero(v float64) float64 {
	if v < 0 && v > -1e-12 {
		return 0
	}
	return v
}

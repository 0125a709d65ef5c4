// Package probability tabulates empirical probability mass functions over
// discrete-valued sample vectors. Values are treated as category labels and
// mapped to dense state ids before counting.
package probability

import "math"

// ProbabilityState is the distribution of a single vector.
type ProbabilityState struct {
	// PMF holds the probability of each state, indexed by state id.
	PMF []float64
	// NumStates is the number of distinct values observed.
	NumStates uint32
}

// JointProbabilityState is the joint distribution of two vectors together
// with both marginals. JointPMF is indexed by second*NumFirstStates + first.
type JointProbabilityState struct {
	JointPMF        []float64
	NumJointStates  uint32
	FirstPMF        []float64
	NumFirstStates  uint32
	SecondPMF       []float64
	NumSecondStates uint32
}

// Probability computes the PMF of samples. An empty vector yields zero states
// and an empty PMF.
func Probability(samples []float64) ProbabilityState {
	states, numStates := Normalize(samples)

	counts := allocate[int](uint64(numStates), "state counts")
	for _, s := range states {
		counts[s]++
	}

	return ProbabilityState{
		PMF:       toPMF(counts, len(samples)),
		NumStates: numStates,
	}
}

// JointProbability computes the joint PMF of first and second along with
// their marginals. The vectors must have the same length.
func JointProbability(first, second []float64) (JointProbabilityState, error) {
	if len(first) != len(second) {
		return JointProbabilityState{}, lengthMismatch(len(first), len(second))
	}

	firstStates, firstK := Normalize(first)
	secondStates, secondK := Normalize(second)
	jointK, err := jointStates(firstK, secondK)
	if err != nil {
		return JointProbabilityState{}, err
	}

	firstCounts := allocate[int](uint64(firstK), "first state counts")
	secondCounts := allocate[int](uint64(secondK), "second state counts")
	jointCounts := allocate[int](uint64(jointK), "joint state counts")

	for i := range firstStates {
		f, s := firstStates[i], secondStates[i]
		firstCounts[f]++
		secondCounts[s]++
		jointCounts[s*firstK+f]++
	}

	n := len(first)
	return JointProbabilityState{
		JointPMF:        toPMF(jointCounts, n),
		NumJointStates:  jointK,
		FirstPMF:        toPMF(firstCounts, n),
		NumFirstStates:  firstK,
		SecondPMF:       toPMF(secondCounts, n),
		NumSecondStates: secondK,
	}, nil
}

// At returns the joint probability of first state f and second state s.
func (j JointProbabilityState) At(f, s uint32) float64 {
	return j.JointPMF[s*j.NumFirstStates+f]
}

// FirstMarginal sums the joint PMF over the second axis.
func (j JointProbabilityState) FirstMarginal() []float64 {
	out := make([]float64, j.NumFirstStates)
	for s := uint32(0); s < j.NumSecondStates; s++ {
		for f := uint32(0); f < j.NumFirstStates; f++ {
			out[f] += j.At(f, s)
		}
	}
	return out
}

// SecondMarginal sums the joint PMF over the first axis.
func (j JointProbabilityState) SecondMarginal() []float64 {
	out := make([]float64, j.NumSecondStates)
	for s := uint32(0); s < j.NumSecondStates; s++ {
		for f := uint32(0); f < j.NumFirstStates; f++ {
			out[s] += j.At(f, s)
		}
	}
	return out
}

// Merge combines first and second into a single vector whose values are the
// dense ids of their joint states. The result can be fed back into any
// function in this package to treat the pair as one variable.
func Merge(first, second []float64) ([]float64, uint32, error) {
	if len(first) != len(second) {
		return nil, 0, lengthMismatch(len(first), len(second))
	}

	firstStates, firstK := Normalize(first)
	secondStates, secondK := Normalize(second)
	if _, err := jointStates(firstK, secondK); err != nil {
		return nil, 0, err
	}

	combined := allocate[float64](uint64(len(first)), "merged states")
	for i := range combined {
		combined[i] = float64(secondStates[i]*firstK + firstStates[i])
	}

	// Joint ids are sparse; renormalize so the merged vector is dense.
	dense, k := Normalize(combined)
	for i, s := range dense {
		combined[i] = float64(s)
	}
	return combined, k, nil
}

func jointStates(firstK, secondK uint32) (uint32, error) {
	joint := uint64(firstK) * uint64(secondK)
	if joint > math.MaxUint32 {
		return 0, ErrTooManyStates
	}
	return uint32(joint), nil
}

// toPMF divides integer counts by n. Counting first and dividing once per
// state keeps rounding error independent of the sample count.
func toPMF(counts []int, n int) []float64 {
	pmf := allocate[float64](uint64(len(counts)), "probabilities")
	length := float64(n)
	for i, c := range counts {
		pmf[i] = float64(c) / length
	}
	return pmf
}

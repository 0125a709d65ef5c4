package selection

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/mwiater/mitoolbox/dataset"
	"github.com/mwiater/mitoolbox/entropy"
	"github.com/mwiater/mitoolbox/probability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformData(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Uniform(rand.New(rand.NewSource(11)), 3000, 8, 3)
	require.NoError(t, err)
	return ds
}

func selectedFeatures(results []Result) []int {
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.Feature
	}
	return out
}

func TestSelect_FindsRelevantFeatures(t *testing.T) {
	ds := uniformData(t)

	for _, criterion := range Criteria {
		t.Run(criterion, func(t *testing.T) {
			results, err := Select(context.Background(), ds.Features, ds.Labels, Options{Criterion: criterion, Count: 3, Workers: 3})
			require.NoError(t, err)
			require.Len(t, results, 3)

			got := selectedFeatures(results)
			sort.Ints(got)
			assert.Equal(t, []int{0, 1, 2}, got)
		})
	}
}

// redundantData holds a, an exact copy of a, and b, a weaker feature that is
// independent of a but still informative about the labels given a.
func redundantData() ([][]float64, []float64) {
	a := []float64{0, 0, 0, 0, 1, 1, 1, 1}
	b := []float64{0, 0, 1, 1, 0, 0, 1, 1}
	y := []float64{0, 0, 0, 1, 1, 1, 1, 1}
	return [][]float64{a, append([]float64(nil), a...), b}, y
}

func TestSelect_RedundantFeature(t *testing.T) {
	features, labels := redundantData()

	tests := []struct {
		opts Options
		want []int
	}{
		{Options{Criterion: MIM}, []int{0, 1, 2}},
		{Options{Criterion: JMI}, []int{0, 2, 1}},
		{Options{Criterion: CMIM}, []int{0, 2, 1}},
		{Options{Criterion: MRMR}, []int{0, 2, 1}},
		{Options{Criterion: ICAP}, []int{0, 2, 1}},
		{Options{Criterion: DISR}, []int{0, 1, 2}},
		{Options{Criterion: CondMI}, []int{0, 2, 1}},
		{Options{Criterion: CIFE}, []int{0, 2, 1}},
		{Options{Criterion: MIFS}, []int{0, 2, 1}},
		{Options{Criterion: Condred}, []int{0, 1, 2}},
		{Options{Criterion: BetaGamma, Beta: 0, Gamma: 0}, []int{0, 1, 2}},
		{Options{Criterion: BetaGamma, Beta: 1, Gamma: 1}, []int{0, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.opts.Criterion, func(t *testing.T) {
			tt.opts.Count = 3
			tt.opts.Workers = 2
			results, err := Select(context.Background(), features, labels, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, selectedFeatures(results))
		})
	}
}

func TestSelect_RedundantScores(t *testing.T) {
	features, labels := redundantData()
	a, dup, b := features[0], features[1], features[2]

	mi := func(x, y []float64) float64 {
		v, err := entropy.MutualInformation(x, y, entropy.Bits)
		require.NoError(t, err)
		return v
	}
	cmi := func(x, y, z []float64) float64 {
		v, err := entropy.ConditionalMutualInformation(x, y, z, entropy.Bits)
		require.NoError(t, err)
		return v
	}
	merged := func(x, y []float64) []float64 {
		m, _, err := probability.Merge(x, y)
		require.NoError(t, err)
		return m
	}
	run := func(criterion string) []Result {
		results, err := Select(context.Background(), features, labels, Options{Criterion: criterion, Count: 3})
		require.NoError(t, err)
		return results
	}

	// b adds 0.4056 - 0.25 bits about y once a is known.
	assert.InDelta(t, 0.155639, cmi(b, labels, a), 1e-6)
	assert.InDelta(t, 0.0, cmi(dup, labels, a), 1e-12)

	jmi := run(JMI)
	assert.InDelta(t, mi(a, labels), jmi[0].Score, 1e-12)
	assert.InDelta(t, mi(merged(b, a), labels), jmi[1].Score, 1e-12)
	assert.InDelta(t, mi(merged(dup, a), labels)+mi(merged(dup, b), labels), jmi[2].Score, 1e-12)

	cmim := run(CMIM)
	assert.InDelta(t, math.Min(mi(b, labels), cmi(b, labels, a)), cmim[1].Score, 1e-12)
	assert.InDelta(t, 0.0, cmim[2].Score, 1e-12)

	mrmr := run(MRMR)
	assert.InDelta(t, mi(b, labels)-mi(b, a), mrmr[1].Score, 1e-12)
	assert.InDelta(t, mi(dup, labels)-(mi(dup, a)+mi(dup, b))/2, mrmr[2].Score, 1e-12)

	icap := run(ICAP)
	assert.InDelta(t, mi(b, labels)-math.Max(0, mi(b, a)-cmi(b, a, labels)), icap[1].Score, 1e-12)

	cife := run(CIFE)
	assert.InDelta(t, mi(b, labels)-mi(b, a)+cmi(b, a, labels), cife[1].Score, 1e-12)

	condmi := run(CondMI)
	assert.InDelta(t, cmi(b, labels, a), condmi[1].Score, 1e-12)
	assert.InDelta(t, cmi(dup, labels, merged(a, b)), condmi[2].Score, 1e-12)
}

func TestSelect_BetaGammaPresets(t *testing.T) {
	features, labels := redundantData()

	for preset, weights := range map[string][2]float64{CIFE: {1, 1}, MIFS: {1, 0}, Condred: {0, 1}} {
		t.Run(preset, func(t *testing.T) {
			named, err := Select(context.Background(), features, labels, Options{Criterion: preset, Count: 3})
			require.NoError(t, err)
			general, err := Select(context.Background(), features, labels, Options{Criterion: BetaGamma, Count: 3, Beta: weights[0], Gamma: weights[1]})
			require.NoError(t, err)
			assert.Equal(t, general, named)
		})
	}
}

func TestSelect_MIMOrdersByScore(t *testing.T) {
	ds := uniformData(t)

	results, err := Select(context.Background(), ds.Features, ds.Labels, Options{Criterion: "MIM", Count: 8})
	require.NoError(t, err)
	require.Len(t, results, 8)

	seen := map[int]bool{}
	for i, r := range results {
		assert.False(t, seen[r.Feature], "feature %d selected twice", r.Feature)
		seen[r.Feature] = true
		if i > 0 {
			assert.LessOrEqual(t, r.Score, results[i-1].Score)
		}
	}
}

func TestSelect_Deterministic(t *testing.T) {
	ds := uniformData(t)
	opts := Options{Criterion: CMIM, Count: 5}

	a, err := Select(context.Background(), ds.Features, ds.Labels, opts)
	require.NoError(t, err)
	opts.Workers = 1
	b, err := Select(context.Background(), ds.Features, ds.Labels, opts)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSelect_Validation(t *testing.T) {
	features := [][]float64{{1, 2}, {1, 1}}
	labels := []float64{0, 1}

	tests := []struct {
		name     string
		features [][]float64
		labels   []float64
		opts     Options
	}{
		{"unknown criterion", features, labels, Options{Criterion: "relief", Count: 1}},
		{"non finite beta", features, labels, Options{Criterion: BetaGamma, Count: 1, Beta: math.Inf(1)}},
		{"no features", nil, labels, Options{Count: 1}},
		{"count zero", features, labels, Options{Count: 0}},
		{"count too large", features, labels, Options{Count: 3}},
		{"ragged", [][]float64{{1, 2}, {1}}, labels, Options{Count: 1}},
		{"bad base", features, labels, Options{Count: 1, Base: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Select(context.Background(), tt.features, tt.labels, tt.opts)
			assert.ErrorIs(t, err, probability.ErrInvalidArgument)
		})
	}
}

func TestSelect_Cancelled(t *testing.T) {
	ds := uniformData(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Select(ctx, ds.Features, ds.Labels, Options{Criterion: JMI, Count: 3})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScoreAll_PreservesOrder(t *testing.T) {
	scores, err := scoreAll(context.Background(), 50, 4, func(k int) (float64, error) {
		return float64(k * k), nil
	})
	require.NoError(t, err)
	for k, s := range scores {
		assert.Equal(t, float64(k*k), s)
	}
}

func TestArgmax(t *testing.T) {
	assert.Equal(t, 1, argmax([]float64{1, 3, 3, 2}, nil))
	assert.Equal(t, 2, argmax([]float64{1, 3, 3, 2}, map[int]bool{1: true}))
	assert.Equal(t, -1, argmax(nil, nil))
}

// Package selection ranks features by their information about a label
// vector using greedy mutual-information criteria.
package selection

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/mwiater/mitoolbox/entropy"
	"github.com/mwiater/mitoolbox/probability"
)

// Supported criteria.
const (
	MIM       = "mim"
	JMI       = "jmi"
	CMIM      = "cmim"
	MRMR      = "mrmr"
	ICAP      = "icap"
	DISR      = "disr"
	CondMI    = "condmi"
	BetaGamma = "betagamma"
	CIFE      = "cife"
	MIFS      = "mifs"
	Condred   = "condred"
)

// Criteria lists the accepted values of Options.Criterion.
var Criteria = []string{MIM, JMI, CMIM, MRMR, ICAP, DISR, CondMI, BetaGamma, CIFE, MIFS, Condred}

// presets fix beta and gamma for the named members of the betagamma family.
var presets = map[string][2]float64{
	CIFE:    {1, 1},
	MIFS:    {1, 0},
	Condred: {0, 1},
}

// Options configures a selection run.
type Options struct {
	// Criterion is one of Criteria, case-insensitive. Empty means "mim".
	Criterion string
	// Count is the number of features to select.
	Count int
	// Base is the logarithm base for reported scores. Zero means bits.
	Base float64
	// Workers bounds concurrent candidate scoring. Zero means GOMAXPROCS.
	Workers int
	// Beta weights the redundancy I(X;Xj) for betagamma.
	Beta float64
	// Gamma weights the conditional redundancy I(X;Xj|Y) for betagamma.
	Gamma float64
}

// Result is one selected feature in selection order.
type Result struct {
	Feature int     `json:"feature"`
	Score   float64 `json:"score"`
}

// Select runs the configured criterion over features, a column-major matrix
// with one slice per feature, against labels. Every criterion starts from the
// feature with the highest I(X;Y) and then adds one feature per round.
func Select(ctx context.Context, features [][]float64, labels []float64, opts Options) ([]Result, error) {
	opts, err := validate(features, labels, opts)
	if err != nil {
		return nil, err
	}

	relevance, err := scoreAll(ctx, len(features), opts.Workers, func(k int) (float64, error) {
		return entropy.MutualInformation(features[k], labels, opts.Base)
	})
	if err != nil {
		return nil, err
	}

	first := argmax(relevance, nil)
	selected := []Result{{Feature: first, Score: relevance[first]}}
	taken := map[int]bool{first: true}
	if opts.Criterion == MIM {
		for len(selected) < opts.Count {
			k := argmax(relevance, taken)
			taken[k] = true
			selected = append(selected, Result{Feature: k, Score: relevance[k]})
		}
		return selected, nil
	}

	// acc folds the per-round terms of each candidate; cmim keeps a running
	// minimum seeded with the relevance.
	acc := make([]float64, len(features))
	if opts.Criterion == CMIM {
		copy(acc, relevance)
	}
	// condmi conditions on the joint state of everything selected so far.
	cond := features[first]

	scores := make([]float64, len(features))
	for len(selected) < opts.Count {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chosen := features[selected[len(selected)-1].Feature]
		if opts.Criterion == CondMI {
			chosen = cond
		}

		terms, err := scoreAll(ctx, len(features), opts.Workers, func(k int) (float64, error) {
			if taken[k] {
				return 0, nil
			}
			return pairScore(opts, features[k], chosen, labels)
		})
		if err != nil {
			return nil, err
		}

		for k, t := range terms {
			if taken[k] {
				continue
			}
			switch opts.Criterion {
			case CMIM:
				acc[k] = math.Min(acc[k], t)
			case CondMI:
				acc[k] = t
			default:
				acc[k] += t
			}
			scores[k] = combine(opts.Criterion, relevance[k], acc[k], len(selected))
		}

		k := argmax(scores, taken)
		taken[k] = true
		selected = append(selected, Result{Feature: k, Score: scores[k]})
		if opts.Criterion == CondMI && len(selected) < opts.Count {
			if cond, _, err = probability.Merge(cond, features[k]); err != nil {
				return nil, err
			}
		}
	}
	return selected, nil
}

// pairScore is the term candidate contributes against chosen, the most
// recently selected feature (or, for condmi, all selected features merged).
func pairScore(opts Options, candidate, chosen, labels []float64) (float64, error) {
	switch opts.Criterion {
	case JMI, DISR:
		merged, _, err := probability.Merge(candidate, chosen)
		if err != nil {
			return 0, err
		}
		mi, err := entropy.MutualInformation(merged, labels, opts.Base)
		if err != nil || opts.Criterion == JMI {
			return mi, err
		}
		h, err := entropy.JointEntropy(merged, labels, opts.Base)
		if err != nil || h == 0 {
			return 0, err
		}
		return mi / h, nil
	case CMIM, CondMI:
		return entropy.ConditionalMutualInformation(candidate, labels, chosen, opts.Base)
	case MRMR:
		return entropy.MutualInformation(candidate, chosen, opts.Base)
	case ICAP, BetaGamma, CIFE, MIFS, Condred:
		redundancy, err := entropy.MutualInformation(candidate, chosen, opts.Base)
		if err != nil {
			return 0, err
		}
		conditional, err := entropy.ConditionalMutualInformation(candidate, chosen, labels, opts.Base)
		if err != nil {
			return 0, err
		}
		if opts.Criterion == ICAP {
			return math.Max(0, redundancy-conditional), nil
		}
		return opts.Beta*redundancy - opts.Gamma*conditional, nil
	}
	return 0, fmt.Errorf("%w: criterion %q", probability.ErrInvalidArgument, opts.Criterion)
}

// combine turns a candidate's relevance and folded terms into its score after
// selected features have been chosen.
func combine(criterion string, relevance, acc float64, selected int) float64 {
	switch criterion {
	case MRMR:
		return relevance - acc/float64(selected)
	case ICAP, BetaGamma, CIFE, MIFS, Condred:
		return relevance - acc
	}
	return acc
}

func validate(features [][]float64, labels []float64, opts Options) (Options, error) {
	opts.Criterion = strings.ToLower(strings.TrimSpace(opts.Criterion))
	if opts.Criterion == "" {
		opts.Criterion = MIM
	}
	if !slices.Contains(Criteria, opts.Criterion) {
		return opts, fmt.Errorf("%w: unknown criterion %q (want one of %s)",
			probability.ErrInvalidArgument, opts.Criterion, strings.Join(Criteria, ", "))
	}
	if p, ok := presets[opts.Criterion]; ok {
		opts.Beta, opts.Gamma = p[0], p[1]
	}
	if math.IsNaN(opts.Beta) || math.IsInf(opts.Beta, 0) || math.IsNaN(opts.Gamma) || math.IsInf(opts.Gamma, 0) {
		return opts, fmt.Errorf("%w: beta %v and gamma %v must be finite", probability.ErrInvalidArgument, opts.Beta, opts.Gamma)
	}
	if len(features) == 0 {
		return opts, fmt.Errorf("%w: no features", probability.ErrInvalidArgument)
	}
	if opts.Count < 1 || opts.Count > len(features) {
		return opts, fmt.Errorf("%w: count %d outside [1, %d]", probability.ErrInvalidArgument, opts.Count, len(features))
	}
	for i, f := range features {
		if len(f) != len(labels) {
			return opts, fmt.Errorf("feature %d has %d rows, labels have %d: %w",
				i, len(f), len(labels), probability.ErrLengthMismatch)
		}
	}
	if opts.Base == 0 {
		opts.Base = entropy.Bits
	}
	if opts.Base <= 0 || opts.Base == 1 {
		return opts, fmt.Errorf("%w: log base %v", probability.ErrInvalidArgument, opts.Base)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return opts, nil
}

// scoreAll evaluates score for every index in [0, n) on a bounded pool of
// goroutines and returns the scores in index order.
func scoreAll(ctx context.Context, n, workers int, score func(int) (float64, error)) ([]float64, error) {
	out := make([]float64, n)
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for w := 0; w < min(workers, n); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				s, err := score(k)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				out[k] = s
			}
		}()
	}

feed:
	for k := 0; k < n; k++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- k:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, firstErr
}

// argmax returns the highest-scoring index not in skip. Ties go to the lower
// index.
func argmax(scores []float64, skip map[int]bool) int {
	best := -1
	for k, s := range scores {
		if skip[k] {
			continue
		}
		if best < 0 || s > scores[best] {
			best = k
		}
	}
	return best
}

// harness/runner.go
// Package: harness
package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mwiater/mitoolbox/probability"
)

// RunSuite is the single exported entrypoint.
// Provide a SuiteConfig, and it returns detailed results.
func RunSuite(ctx context.Context, cfg SuiteConfig) (SuiteResult, error) {
	if len(cfg.Sizes) == 0 {
		return SuiteResult{}, errors.New("at least one size is required")
	}
	if len(cfg.States) == 0 {
		return SuiteResult{}, errors.New("at least one state count is required")
	}
	if cfg.Trials <= 0 {
		cfg.Trials = 5
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	var all []TrialResult

	for _, sc := range Scenarios(cfg) {
		first := draw(rng, sc.Size, sc.States)
		second := draw(rng, sc.Size, sc.States)

		if cfg.Warmup {
			slog.Debug("warming up", "scenario", sc.ID)
			if _, err := Measure(sc, first, second, 0); err != nil {
				return SuiteResult{}, err
			}
		}

		for i := 0; i < cfg.Trials; i++ {
			if err := ctx.Err(); err != nil {
				return SuiteResult{}, err
			}
			tr, err := Measure(sc, first, second, i)
			if err != nil {
				return SuiteResult{}, err
			}
			all = append(all, tr)
		}
		slog.Debug("scenario done", "scenario", sc.ID, "trials", cfg.Trials)
	}

	return buildSuiteResult(cfg, all), nil
}

// Scenarios expands the config into the cross product of operation, size
// and state count.
func Scenarios(cfg SuiteConfig) []Scenario {
	var out []Scenario
	for _, op := range []Operation{OpProbability, OpJoint} {
		for _, n := range cfg.Sizes {
			for _, k := range cfg.States {
				out = append(out, Scenario{
					ID:        fmt.Sprintf("%s/n=%d/k=%d", op, n, k),
					Operation: op,
					Size:      n,
					States:    k,
				})
			}
		}
	}
	return out
}

// Measure times one call of the scenario's operation.
func Measure(sc Scenario, first, second []float64, trial int) (TrialResult, error) {
	tr := TrialResult{
		ScenarioID: sc.ID,
		Operation:  sc.Operation,
		Size:       sc.Size,
		States:     sc.States,
		Trial:      trial,
	}

	start := time.Now()
	switch sc.Operation {
	case OpProbability:
		state := probability.Probability(first)
		tr.Elapsed = time.Since(start)
		tr.NumStates = state.NumStates
	case OpJoint:
		state, err := probability.JointProbability(first, second)
		tr.Elapsed = time.Since(start)
		if err != nil {
			return tr, err
		}
		tr.NumStates = state.NumFirstStates
		tr.NumJointStates = state.NumJointStates
	default:
		return tr, fmt.Errorf("unknown operation %q", sc.Operation)
	}

	if tr.Elapsed > 0 {
		tr.SamplesPerSec = float64(sc.Size) / tr.Elapsed.Seconds()
	}
	return tr, nil
}

// draw returns n samples with integer labels in [0, states).
func draw(rng *rand.Rand, n, states int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(rng.Intn(states))
	}
	return out
}

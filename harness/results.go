// harness/results.go
// Package: harness
package harness

import (
	"time"
)

// summarize builds per-scenario summaries from TrialResult rows, keeping the
// order in which scenarios first appear.
func summarize(trials []TrialResult) []ScenarioSummary {
	var order []string
	byScenario := map[string][]TrialResult{}
	for _, t := range trials {
		if _, ok := byScenario[t.ScenarioID]; !ok {
			order = append(order, t.ScenarioID)
		}
		byScenario[t.ScenarioID] = append(byScenario[t.ScenarioID], t)
	}

	out := make([]ScenarioSummary, 0, len(order))
	for _, id := range order {
		rows := byScenario[id]
		var elapsed, rates []float64
		for _, r := range rows {
			elapsed = append(elapsed, float64(r.Elapsed)/float64(time.Microsecond))
			if r.SamplesPerSec > 0 {
				rates = append(rates, r.SamplesPerSec)
			}
		}

		s := ScenarioSummary{
			ScenarioID: id,
			Operation:  rows[0].Operation,
			Size:       rows[0].Size,
			States:     rows[0].States,
			ElapsedP50: quantile(elapsed, 0.50),
			ElapsedP95: quantile(elapsed, 0.95),
		}
		s.SamplesPerSecMean, s.SamplesPerSecStd = meanStd(rates)
		out = append(out, s)
	}
	return out
}

// buildSuiteResult packs everything with a timestamp.
func buildSuiteResult(cfg SuiteConfig, trials []TrialResult) SuiteResult {
	return SuiteResult{
		Config:      cfg,
		Trials:      trials,
		Summaries:   summarize(trials),
		GeneratedAt: time.Now(),
	}
}

// harness/types.go
// Package: harness
package harness

import "time"

// Operation names a timed function.
type Operation string

const (
	// OpProbability times probability.Probability on one vector.
	OpProbability Operation = "probability"
	// OpJoint times probability.JointProbability on a pair of vectors.
	OpJoint Operation = "joint"
)

// Scenario is one input shape to time.
type Scenario struct {
	ID        string    `json:"id"`        // e.g. "joint/n=10000/k=16"
	Operation Operation `json:"operation"` // which function runs
	Size      int       `json:"size"`      // samples per vector
	States    int       `json:"states"`    // distinct values drawn per vector
}

// SuiteConfig configures the entire run.
type SuiteConfig struct {
	// Sample counts to time.
	Sizes []int `json:"sizes"`

	// Distinct-value counts to draw inputs from.
	States []int `json:"states"`

	// Timed repetitions per scenario.
	Trials int `json:"trials"`

	// Whether to run each scenario once untimed first.
	Warmup bool `json:"warmup"`

	// Seed for the input generator, so runs are comparable.
	Seed int64 `json:"seed"`
}

// TrialResult captures a single timed call.
type TrialResult struct {
	ScenarioID string        `json:"scenario_id"`
	Operation  Operation     `json:"operation"`
	Size       int           `json:"size"`
	States     int           `json:"states"`
	Trial      int           `json:"trial"`
	Elapsed    time.Duration `json:"elapsed_ns"`

	// Observed state counts, a sanity check that inputs had the intended shape.
	NumStates      uint32 `json:"num_states"`
	NumJointStates uint32 `json:"num_joint_states,omitempty"`

	// Derived rate
	SamplesPerSec float64 `json:"samples_per_sec"`
}

// ScenarioSummary aggregates trials of one scenario for reporting.
type ScenarioSummary struct {
	ScenarioID string    `json:"scenario_id"`
	Operation  Operation `json:"operation"`
	Size       int       `json:"size"`
	States     int       `json:"states"`

	// p50/p95 of elapsed time in microseconds
	ElapsedP50 float64 `json:"elapsed_p50_us"`
	ElapsedP95 float64 `json:"elapsed_p95_us"`

	// Mean +/- std of throughput
	SamplesPerSecMean float64 `json:"samples_per_sec_mean"`
	SamplesPerSecStd  float64 `json:"samples_per_sec_std"`
}

// SuiteResult is the top-level artifact returned by RunSuite.
type SuiteResult struct {
	Config      SuiteConfig       `json:"config"`
	Trials      []TrialResult     `json:"trials"`
	Summaries   []ScenarioSummary `json:"summaries"`
	GeneratedAt time.Time         `json:"generated_at"`
}

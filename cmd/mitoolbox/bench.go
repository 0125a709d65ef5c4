// cmd/mitoolbox/bench.go
package mitoolbox

import (
	"github.com/mwiater/mitoolbox/harness"
	"github.com/spf13/cobra"
)

var (
	benchJSON bool
	benchSeed int64
)

// benchCmd implements 'bench', which times the probability tabulators.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time the probability tabulators",
	Long:  `The 'bench' command times marginal and joint tabulation over every configured combination of sample count and state count and reports latency percentiles and throughput.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		suite := harness.SuiteConfig{
			Sizes:  cfg.Bench.Sizes,
			States: cfg.Bench.States,
			Trials: cfg.Bench.Trials,
			Warmup: cfg.Bench.Warmup,
			Seed:   benchSeed,
		}
		return harness.Run(cmd.Context(), suite, cmd.OutOrStdout(), cfg.Debug, benchJSON)
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().Int("trials", 5, "timed trials per scenario")
	benchCmd.Flags().Bool("warmup", true, "run each scenario once before timing")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "input generator seed")
	benchCmd.Flags().BoolVar(&benchJSON, "json", false, "print the full result as JSON")
	bindFlags(benchCmd, map[string]string{
		"bench.trials": "trials",
		"bench.warmup": "warmup",
	})
}

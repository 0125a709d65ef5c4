// cmd/mitoolbox/prob.go
package mitoolbox

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mwiater/mitoolbox/cli"
	"github.com/mwiater/mitoolbox/entropy"
	"github.com/mwiater/mitoolbox/probability"
	"github.com/spf13/cobra"
)

var (
	probColumn int
	probJSON   bool
)

// pmfOutput is the JSON form of a single distribution.
type pmfOutput struct {
	Column    string    `json:"column"`
	Values    []float64 `json:"values"`
	PMF       []float64 `json:"pmf"`
	NumStates uint32    `json:"num_states"`
	Entropy   float64   `json:"entropy"`
}

// probCmd implements 'prob', which prints the marginal distribution of one column.
var probCmd = &cobra.Command{
	Use:   "prob <file>",
	Short: "Print the probability mass function of a column",
	Long:  `The 'prob' command normalizes one column of a dataset to dense states and prints the probability of each state, ordered by ascending value.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		x, name, err := column(ds, probColumn)
		if err != nil {
			return err
		}

		state := probability.Probability(x)
		out := pmfOutput{
			Column:    name,
			Values:    probability.Values(x),
			PMF:       state.PMF,
			NumStates: state.NumStates,
			Entropy:   entropy.Entropy(x, cfg.Base),
		}

		if probJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		fmt.Fprintln(cmd.OutOrStdout(), out.Column)
		fmt.Fprint(cmd.OutOrStdout(), cli.RenderPMF(out.Values, out.PMF))
		fmt.Fprint(cmd.OutOrStdout(), cli.RenderMeasures([][2]string{
			{"states", strconv.Itoa(int(out.NumStates))},
			{"H(X)", strconv.FormatFloat(out.Entropy, 'f', 6, 64)},
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probCmd)
	probCmd.Flags().IntVar(&probColumn, "column", 0, "column index (-1 for labels)")
	probCmd.Flags().BoolVar(&probJSON, "json", false, "print JSON")
}

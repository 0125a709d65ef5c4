// cmd/mitoolbox/joint.go
package mitoolbox

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mwiater/mitoolbox/cli"
	"github.com/mwiater/mitoolbox/probability"
	"github.com/spf13/cobra"
)

var (
	jointFirst  int
	jointSecond int
	jointJSON   bool
)

// jointCmd implements 'joint', which prints the joint distribution of two columns.
var jointCmd = &cobra.Command{
	Use:   "joint <file>",
	Short: "Print the joint probability mass function of two columns",
	Long:  `The 'joint' command tabulates the joint distribution of two columns along with both marginals. Columns are laid out with the first column's values across and the second's down.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		x, xName, err := column(ds, jointFirst)
		if err != nil {
			return err
		}
		y, yName, err := column(ds, jointSecond)
		if err != nil {
			return err
		}

		state, err := probability.JointProbability(x, y)
		if err != nil {
			return err
		}

		if jointJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				First  string `json:"first"`
				Second string `json:"second"`
				probability.JointProbabilityState
			}{xName, yName, state})
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s × %s\n", xName, yName)
		fmt.Fprint(cmd.OutOrStdout(), cli.RenderJoint(probability.Values(x), probability.Values(y), state))
		fmt.Fprint(cmd.OutOrStdout(), cli.RenderMeasures([][2]string{
			{"first states", strconv.Itoa(int(state.NumFirstStates))},
			{"second states", strconv.Itoa(int(state.NumSecondStates))},
			{"joint states", strconv.Itoa(int(state.NumJointStates))},
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jointCmd)
	jointCmd.Flags().IntVar(&jointFirst, "first", 0, "first column index (-1 for labels)")
	jointCmd.Flags().IntVar(&jointSecond, "second", -1, "second column index (-1 for labels)")
	jointCmd.Flags().BoolVar(&jointJSON, "json", false, "print JSON")
}

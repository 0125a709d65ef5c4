// cmd/mitoolbox/entropy.go
package mitoolbox

import (
	"fmt"

	"github.com/mwiater/mitoolbox/entropy"
	"github.com/spf13/cobra"
)

var (
	entropyColumn int
	entropyGiven  int
)

// entropyCmd implements 'entropy', which prints H(X) or, with --given, H(X|Y).
var entropyCmd = &cobra.Command{
	Use:   "entropy <file>",
	Short: "Print the entropy of a column",
	Long:  `The 'entropy' command prints the Shannon entropy of a column in the configured log base. With --given it prints the conditional entropy given another column.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		x, xName, err := column(ds, entropyColumn)
		if err != nil {
			return err
		}

		if !cmd.Flags().Changed("given") {
			fmt.Fprintf(cmd.OutOrStdout(), "H(%s) = %.6f\n", xName, entropy.Entropy(x, cfg.Base))
			return nil
		}

		y, yName, err := column(ds, entropyGiven)
		if err != nil {
			return err
		}
		h, err := entropy.ConditionalEntropy(x, y, cfg.Base)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "H(%s|%s) = %.6f\n", xName, yName, h)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(entropyCmd)
	entropyCmd.Flags().IntVar(&entropyColumn, "column", 0, "column index (-1 for labels)")
	entropyCmd.Flags().IntVar(&entropyGiven, "given", -1, "condition on this column (-1 for labels)")
}

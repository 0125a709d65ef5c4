// cmd/mitoolbox/mi.go
package mitoolbox

import (
	"fmt"

	"github.com/mwiater/mitoolbox/entropy"
	"github.com/spf13/cobra"
)

var (
	miFirst  int
	miSecond int
	miGiven  int
)

// miCmd implements 'mi', which prints I(X;Y) or, with --given, I(X;Y|Z).
var miCmd = &cobra.Command{
	Use:   "mi <file>",
	Short: "Print the mutual information of two columns",
	Long:  `The 'mi' command prints the mutual information between two columns in the configured log base. With --given it prints the conditional mutual information given a third column.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		x, xName, err := column(ds, miFirst)
		if err != nil {
			return err
		}
		y, yName, err := column(ds, miSecond)
		if err != nil {
			return err
		}

		if !cmd.Flags().Changed("given") {
			mi, err := entropy.MutualInformation(x, y, cfg.Base)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "I(%s;%s) = %.6f\n", xName, yName, mi)
			return nil
		}

		z, zName, err := column(ds, miGiven)
		if err != nil {
			return err
		}
		cmi, err := entropy.ConditionalMutualInformation(x, y, z, cfg.Base)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "I(%s;%s|%s) = %.6f\n", xName, yName, zName, cmi)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(miCmd)
	miCmd.Flags().IntVar(&miFirst, "first", 0, "first column index (-1 for labels)")
	miCmd.Flags().IntVar(&miSecond, "second", -1, "second column index (-1 for labels)")
	miCmd.Flags().IntVar(&miGiven, "given", -1, "condition on this column (-1 for labels)")
}

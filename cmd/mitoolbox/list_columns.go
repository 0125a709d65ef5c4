// cmd/mitoolbox/list_columns.go
package mitoolbox

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/mitoolbox/entropy"
	"github.com/mwiater/mitoolbox/probability"
	"github.com/spf13/cobra"
)

// listColumnsCmd implements 'list columns', which summarizes every column of
// a dataset.
var listColumnsCmd = &cobra.Command{
	Use:   "columns <file>",
	Short: "List dataset columns with state counts and entropy",
	Long:  `The 'columns' subcommand lists every column of a dataset with its index, distinct state count, entropy and mutual information with the labels. The label column is listed last with index -1.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}

		heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
		labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
		w := cmd.OutOrStdout()

		fmt.Fprintln(w, heading.Render(fmt.Sprintf("%5s  %-16s  %7s  %10s  %10s", "index", "column", "states", "H", "I(;label)")))
		for i, x := range ds.Features {
			_, k := probability.Normalize(x)
			mi, err := entropy.MutualInformation(x, ds.Labels, cfg.Base)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%5d  %-16s  %7d  %10.6f  %10.6f\n", i, ds.ColumnName(i), k, entropy.Entropy(x, cfg.Base), mi)
		}
		_, k := probability.Normalize(ds.Labels)
		fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf("%5d  %-16s  %7d  %10.6f", -1, ds.LabelName, k, entropy.Entropy(ds.Labels, cfg.Base))))
		return nil
	},
}

func init() {
	listCmd.AddCommand(listColumnsCmd)
}

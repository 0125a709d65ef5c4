// cmd/mitoolbox/select.go
package mitoolbox

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/mitoolbox/selection"
	"github.com/spf13/cobra"
)

var selectJSON bool

// selectCmd implements 'select', which ranks features against the label column.
var selectCmd = &cobra.Command{
	Use:   "select <file>",
	Short: "Rank features by information about the labels",
	Long: `The 'select' command greedily selects features using one of the criteria ` + strings.Join(selection.Criteria, ", ") + `.
Every criterion starts from the feature with the highest I(X;Y). mim keeps ranking by I(X;Y); jmi, disr, cmim and condmi
reward information that is new given the selected features; mrmr, icap and betagamma (with the cife, mifs and condred
presets) penalize redundancy with them. --beta and --gamma weight the betagamma penalties.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}

		count := cfg.Selection.Count
		if count > len(ds.Features) {
			count = len(ds.Features)
		}
		results, err := selection.Select(cmd.Context(), ds.Features, ds.Labels, selection.Options{
			Criterion: cfg.Selection.Criterion,
			Count:     count,
			Base:      cfg.Base,
			Workers:   cfg.Selection.Workers,
			Beta:      cfg.Selection.Beta,
			Gamma:     cfg.Selection.Gamma,
		})
		if err != nil {
			return err
		}

		if selectJSON {
			type row struct {
				selection.Result
				Name string `json:"name"`
			}
			rows := make([]row, len(results))
			for i, r := range results {
				rows[i] = row{Result: r, Name: ds.ColumnName(r.Feature)}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}

		heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
		fmt.Fprintln(cmd.OutOrStdout(), heading.Render(fmt.Sprintf("%-4s  %-16s  %s", "rank", "feature", "score")))
		for i, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%-4d  %-16s  %.6f\n", i+1, ds.ColumnName(r.Feature), r.Score)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.Flags().String("criterion", "mim", "selection criterion: "+strings.Join(selection.Criteria, ", "))
	selectCmd.Flags().Int("count", 5, "number of features to select")
	selectCmd.Flags().Int("workers", 0, "concurrent scorers (0 uses GOMAXPROCS)")
	selectCmd.Flags().Float64("beta", 1, "betagamma weight of I(X;Xj)")
	selectCmd.Flags().Float64("gamma", 1, "betagamma weight of I(X;Xj|Y)")
	selectCmd.Flags().BoolVar(&selectJSON, "json", false, "print JSON")
	bindFlags(selectCmd, map[string]string{
		"selection.criterion": "criterion",
		"selection.count":     "count",
		"selection.workers":   "workers",
		"selection.beta":      "beta",
		"selection.gamma":     "gamma",
	})
}

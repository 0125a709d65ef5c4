// cmd/mitoolbox/plot.go
package mitoolbox

import (
	"fmt"
	"log/slog"

	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/mwiater/mitoolbox/chart"
	"github.com/spf13/cobra"
)

var (
	plotColumn int
	plotSecond int
)

// plotCmd implements 'plot', which renders a distribution to an HTML chart.
var plotCmd = &cobra.Command{
	Use:   "plot <file>",
	Short: "Render a column distribution as an HTML chart",
	Long:  `The 'plot' command writes a bar chart of a column's probability mass function. With --second it writes a heat map of the joint distribution of the two columns instead.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		x, xName, err := column(ds, plotColumn)
		if err != nil {
			return err
		}

		var c components.Charter
		if cmd.Flags().Changed("second") {
			y, yName, err := column(ds, plotSecond)
			if err != nil {
				return err
			}
			title := cfg.Chart.Title
			if title == "" {
				title = fmt.Sprintf("%s × %s", xName, yName)
			}
			hm, err := chart.Joint(title, x, y)
			if err != nil {
				return err
			}
			c = hm
		} else {
			title := cfg.Chart.Title
			if title == "" {
				title = xName
			}
			c = chart.PMF(title, xName, x)
		}

		if err := chart.WriteFile(cfg.Chart.Output, c); err != nil {
			return err
		}
		slog.Info("chart written", "path", cfg.Chart.Output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().IntVar(&plotColumn, "column", 0, "column index (-1 for labels)")
	plotCmd.Flags().IntVar(&plotSecond, "second", -1, "plot the joint distribution with this column (-1 for labels)")
	plotCmd.Flags().String("out", "pmf.html", "output HTML file")
	plotCmd.Flags().String("title", "", "chart title")
	bindFlags(plotCmd, map[string]string{
		"chart.output": "out",
		"chart.title":  "title",
	})
}

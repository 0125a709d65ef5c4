// cmd/mitoolbox/explore.go
package mitoolbox

import (
	"github.com/mwiater/mitoolbox/cli"
	"github.com/spf13/cobra"
)

var startGUI = cli.StartGUI

// exploreCmd represents the 'explore' command.
var exploreCmd = &cobra.Command{
	Use:   "explore <file>",
	Short: "Browse column distributions interactively",
	Long:  `The 'explore' command starts an interactive terminal UI listing every column of a dataset. Selecting a column shows its distribution, entropy and mutual information with the labels; 'p' pairs it with a second column.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		return startGUI(ds, cli.Options{Title: args[0], Base: cfg.Base, Debug: cfg.Debug})
	},
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

// cmd/mitoolbox/list_commands.go
package mitoolbox

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// commandsCmd implements 'list commands', which prints the available
// commands and subcommands in a hierarchical, indented, two-column format.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Long:  `The 'commands' subcommand lists all commands and subcommands in a hierarchical, indented format, with the command path in the first column and its short description in the second column.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listAllCommands(cmd.OutOrStdout(), rootCmd)
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
}

// listAllCommands walks the command tree from root and writes each command
// path and short description in a padded, two-column layout.
func listAllCommands(w io.Writer, root *cobra.Command) {
	rows := collectCommandData(root, "", "")

	width := 0
	for _, r := range rows {
		width = max(width, len(r.path))
	}

	fmt.Fprintln(w, "Commands and Subcommands:")
	for _, r := range rows {
		fmt.Fprintf(w, "  %s%s%s\n", r.path, strings.Repeat(" ", width-len(r.path)+2), r.description)
	}
}

type commandInfo struct {
	path        string
	description string
}

// collectCommandData flattens the command tree into path/description pairs,
// skipping cobra's generated help and completion commands.
func collectCommandData(cmd *cobra.Command, parent string, indent string) []commandInfo {
	path := cmd.Name()
	if parent != "" {
		path = parent + " " + cmd.Name()
	}

	rows := []commandInfo{{path: indent + path, description: cmd.Short}}
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() || sub.Name() == "help" {
			continue
		}
		rows = append(rows, collectCommandData(sub, path, indent+"  ")...)
	}
	return rows
}

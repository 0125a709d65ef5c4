// cmd/mitoolbox/root.go
package mitoolbox

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/k0kubun/pp"
	"github.com/mwiater/mitoolbox/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cfgFile is the path given with --config.
var cfgFile string

// cfg holds the effective settings of the running command. It is populated
// before any subcommand runs.
var cfg *config.Config

// rootCmd is the base Cobra command for the mitoolbox application.
// All subcommands are attached to this root to form the complete CLI.
var rootCmd = &cobra.Command{
	Use:   "mitoolbox",
	Short: "Empirical distributions and mutual information for discrete data",
	Long: `mitoolbox tabulates marginal and joint probability mass functions of discrete-valued
columns, derives entropy and mutual information from them, and ranks features against a label column.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the root Cobra command and all registered subcommands.
// It prints any returned error and exits the process with a non-zero
// status code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (JSON or YAML)")
	pf.Bool("debug", false, "enable debug logging")
	pf.String("delimiter", "\t", "field delimiter of dataset files")
	pf.Bool("header", false, "dataset files start with a header row")
	pf.Int("label-column", -1, "index of the label column (-1 is the last column)")
	pf.Float64("base", 2, "logarithm base for entropy and information")
}

// loadSettings merges defaults, the config file, the environment and flags
// into cfg, then installs the logger.
func loadSettings(cmd *cobra.Command, args []string) error {
	v := config.New()
	for key, flag := range map[string]string{
		"debug":        "debug",
		"delimiter":    "delimiter",
		"header":       "header",
		"label_column": "label-column",
		"base":         "base",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	if err := bindLocal(cmd, v); err != nil {
		return err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("could not read config file: %w", err)
		}
	}

	c, err := config.FromViper(v)
	if err != nil {
		return err
	}
	cfg = c

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	if cfg.Debug {
		pp.Fprintln(cmd.ErrOrStderr(), cfg)
	}
	return nil
}

// localBindings maps command names to the config keys their own flags
// override.
var localBindings = map[string]map[string]string{}

// bindFlags registers config keys that flags of cmd override.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	localBindings[cmd.Name()] = keys
}

// bindLocal binds the running command's flags to their config keys.
func bindLocal(cmd *cobra.Command, v *viper.Viper) error {
	for key, name := range localBindings[cmd.Name()] {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

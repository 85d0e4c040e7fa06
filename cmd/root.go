package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	version  = "dev"
	commit   = "none"
	date     = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "autoform",
	Short: "Autoform — form configuration generator for relational tables",
	Long: `Autoform inspects a table's schema — columns, nullability, foreign keys —
and derives an editor-widget configuration for each column, loading every
table reachable through foreign keys alongside it.

Running without a subcommand opens the interactive table picker.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate("")
	},
}

func Execute() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.autoform/autoform.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

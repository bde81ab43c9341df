// Package cmd contains all CLI commands for the haulkit binary.
package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fleetworks/haulkit/cmd/completion"
	cmdconfig "github.com/fleetworks/haulkit/cmd/config"
	"github.com/fleetworks/haulkit/cmd/distinct"
	"github.com/fleetworks/haulkit/cmd/filter"
	"github.com/fleetworks/haulkit/cmd/report"
	"github.com/fleetworks/haulkit/cmd/summary"
	"github.com/fleetworks/haulkit/cmd/version"
	cmdwatch "github.com/fleetworks/haulkit/cmd/watch"
	"github.com/fleetworks/haulkit/internal/output"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all
// subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "haulkit",
		Short: "Filter and summarize trucking payroll spreadsheets",
		Long: `Haulkit — payroll spreadsheets without the spreadsheet.

Filter .xlsx payroll data by truck, append per-truck and grand totals,
and discover truck names, straight from your terminal. Cell types,
date formats, and styles survive every transformation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(filter.NewCommand())
	rootCmd.AddCommand(summary.NewCommand())
	rootCmd.AddCommand(distinct.NewCommand())
	rootCmd.AddCommand(report.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		output.WriteError("%s", err)
		os.Exit(output.ExitUserError)
	}
}

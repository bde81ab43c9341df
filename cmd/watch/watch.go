// Package watch provides the "haulkit watch" command for automatic report
// rebuilds.
package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fleetworks/haulkit/internal/config"
	"github.com/fleetworks/haulkit/internal/report"
	w "github.com/fleetworks/haulkit/internal/watch"
)

// NewCommand returns the watch subcommand.
func NewCommand() *cobra.Command {
	var (
		outDir    string
		sheet     string
		column    string
		columns   []string
		outSheet  string
		recursive bool
		debounce  int
	)

	cmd := &cobra.Command{
		Use:   "watch <directory> [directory...]",
		Short: "Rebuild per-truck reports whenever a payroll spreadsheet changes",
		Long: `Monitors directories for new or modified .xlsx files and reruns the
report pipeline on each change: distinct trucks are discovered, and one
filtered, totaled report per truck is written into --out-dir.

Excel lock files (~$...) and hidden files are ignored. Changes are
debounced so a file saved in bursts is processed once.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				return fmt.Errorf("--out-dir is required — where should the rebuilt reports go?")
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("could not create %s: %w", outDir, err)
			}

			watcher, err := w.New(w.Config{
				Directories: args,
				Pattern:     "*.xlsx",
				Recursive:   recursive,
				Debounce:    debounce,
			})
			if err != nil {
				return err
			}

			watcher.Handler = func(path string) error {
				return rebuild(path, outDir, sheet, column, outSheet, columns)
			}

			fmt.Printf("Watching %s for spreadsheet changes\n", strings.Join(args, ", "))
			fmt.Println("Press Ctrl+C to stop")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				fmt.Println("\nStopping watcher...")
				cancel()
			}()

			return watcher.Start(ctx)
		},
	}

	cfg := config.LoadOrDefault()
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for rebuilt reports (required)")
	cmd.Flags().StringVar(&sheet, "sheet", cfg.Sheet, "Sheet to read from changed files")
	cmd.Flags().StringVar(&column, "column", cfg.Filter.Column, "Key column holding the truck names")
	cmd.Flags().StringVar(&outSheet, "output-sheet", cfg.OutputSheet, "Sheet name in the report files")
	cmd.Flags().StringSliceVar(&columns, "columns", cfg.Summary.Columns, "Numeric columns to sum")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Watch directories recursively")
	cmd.Flags().IntVar(&debounce, "debounce", 500, "Debounce interval in milliseconds")

	return cmd
}

// rebuild runs the per-truck report pipeline for one changed spreadsheet.
// Soft conditions (missing column, no trucks) skip the file quietly; only
// I/O failures propagate to the watcher log.
func rebuild(path, outDir, sheet, column, outSheet string, columns []string) error {
	trucks, err := report.DistinctValues(path, sheet, column)
	if err != nil {
		if report.IsSoft(err) {
			return nil
		}
		return err
	}

	stem := strings.TrimSuffix(filepath.Base(path), ".xlsx")
	for _, truck := range trucks {
		dest := filepath.Join(outDir, fmt.Sprintf("%s-%s.xlsx", stem, sanitize(truck)))
		if _, err := report.Filter(path, dest, report.FilterOptions{
			Sheet:       sheet,
			Column:      column,
			Value:       truck,
			OutputSheet: outSheet,
		}); err != nil {
			if report.IsSoft(err) {
				continue
			}
			return err
		}
		if _, err := report.Summarize(dest, report.SummaryOptions{
			Sheet:   outSheet,
			Columns: columns,
		}); err != nil {
			if report.IsSoft(err) {
				continue
			}
			return err
		}
	}
	return nil
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}

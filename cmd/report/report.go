// Package report provides the "haulkit report" command, the end-to-end
// filter-then-summarize pipeline.
package report

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fleetworks/haulkit/internal/config"
	"github.com/fleetworks/haulkit/internal/output"
	"github.com/fleetworks/haulkit/internal/progress"
	"github.com/fleetworks/haulkit/internal/report"
)

// pipelineResult is the JSON shape for one produced report file.
type pipelineResult struct {
	Truck      string             `json:"truck"`
	OutputPath string             `json:"outputPath"`
	Rows       int                `json:"rows"`
	Totals     map[string]float64 `json:"totals"`
}

// NewCommand returns the report subcommand.
func NewCommand() *cobra.Command {
	var (
		sheet       string
		column      string
		truck       string
		out         string
		outputSheet string
		columns     []string
	)

	cmd := &cobra.Command{
		Use:   "report <file.xlsx>",
		Short: "Build per-truck payroll reports (filter + totals)",
		Long: `Runs the full pipeline: discover the distinct truck names, filter the
payroll rows for each truck into its own .xlsx file, and append a row
with the summed "Rate", "Gross Pay", and "Total" columns.

With --truck, only that truck's report is built. Without it, one report
file is written per discovered truck, named <out>-<truck>.xlsx.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			verbose, _ := cmd.Flags().GetBool("verbose")

			if out == "" {
				return fmt.Errorf("--out is required — specify the output .xlsx path (per-truck files get the truck name appended)")
			}

			trucks := []string{truck}
			if truck == "" {
				discovered, err := report.DistinctValues(args[0], sheet, column)
				if err != nil {
					return soft(err, jsonFlag)
				}
				if len(discovered) == 0 {
					if jsonFlag {
						return output.PrintJSONNotice("report", "no truck names found")
					}
					output.Noticef("no truck names found in column %q — nothing to report", column)
					return nil
				}
				trucks = discovered
			}

			bar := progress.New("Building reports", len(trucks))
			if jsonFlag {
				bar.Enabled = false
			}

			var results []pipelineResult
			for _, name := range trucks {
				bar.Increment(name)
				dest := out
				if truck == "" {
					dest = perTruckPath(out, name)
				}
				if verbose {
					log.Printf("filtering %q into %s", name, dest)
				}

				fres, err := report.Filter(args[0], dest, report.FilterOptions{
					Sheet:       sheet,
					Column:      column,
					Value:       name,
					OutputSheet: outputSheet,
				})
				if err != nil {
					return soft(err, jsonFlag)
				}

				sres, err := report.Summarize(dest, report.SummaryOptions{
					Sheet:   outputSheet,
					Columns: columns,
				})
				if err != nil {
					return soft(err, jsonFlag)
				}

				results = append(results, pipelineResult{
					Truck:      name,
					OutputPath: fres.OutputPath,
					Rows:       sres.Rows,
					Totals:     sres.Totals,
				})
			}

			bar.Finish(fmt.Sprintf("%d report(s) built", len(results)))

			if jsonFlag {
				return output.PrintJSON("report", results)
			}
			for _, r := range results {
				output.Successf("Wrote %s — %d rows for %s", r.OutputPath, r.Rows, r.Truck)
			}
			return nil
		},
	}

	cfg := config.LoadOrDefault()
	cmd.Flags().StringVar(&sheet, "sheet", cfg.Sheet, "Sheet to read from the input file")
	cmd.Flags().StringVar(&column, "column", cfg.Filter.Column, "Key column holding the truck names")
	cmd.Flags().StringVar(&truck, "truck", "", "Build the report for this truck only")
	cmd.Flags().StringVar(&out, "out", "", "Output .xlsx path (required)")
	cmd.Flags().StringVar(&outputSheet, "output-sheet", cfg.OutputSheet, "Sheet name in the output files")
	cmd.Flags().StringSliceVar(&columns, "columns", cfg.Summary.Columns, "Numeric columns to sum")

	return cmd
}

func soft(err error, jsonFlag bool) error {
	if report.IsSoft(err) {
		if jsonFlag {
			return output.PrintJSONNotice("report", err.Error())
		}
		output.Noticef("%s — report not built", err)
		return nil
	}
	return err
}

// perTruckPath derives "<out>-<truck>.xlsx" from the base output path,
// replacing characters that do not belong in file names.
func perTruckPath(out, truck string) string {
	base := strings.TrimSuffix(out, ".xlsx")
	slug := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, truck)
	return base + "-" + slug + ".xlsx"
}

// Package filter provides the "haulkit filter" command.
package filter

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fleetworks/haulkit/internal/config"
	"github.com/fleetworks/haulkit/internal/output"
	"github.com/fleetworks/haulkit/internal/report"
)

// NewCommand returns the filter subcommand.
func NewCommand() *cobra.Command {
	var (
		sheet       string
		column      string
		value       string
		out         string
		outputSheet string
	)

	cmd := &cobra.Command{
		Use:   "filter <file.xlsx>",
		Short: "Copy rows matching a key column value into a new spreadsheet",
		Long: `Filters a sheet by a key column (default "Truck") and writes the header
plus every matching row into a new .xlsx file. Matching ignores case.
Cell types, date formats, and styles are preserved.

A missing key column is reported and no output file is created; zero
matching rows still produce a valid header-only file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			if value == "" {
				return fmt.Errorf("--value is required — which truck should the rows match?\n\nExample: haulkit filter payroll.xlsx --value \"Big Red\" --out filtered.xlsx")
			}
			if out == "" {
				return fmt.Errorf("--out is required — specify the output .xlsx path")
			}
			if !strings.HasSuffix(strings.ToLower(out), ".xlsx") {
				out += ".xlsx"
			}

			res, err := report.Filter(args[0], out, report.FilterOptions{
				Sheet:       sheet,
				Column:      column,
				Value:       value,
				OutputSheet: outputSheet,
			})
			if err != nil {
				if report.IsSoft(err) {
					if jsonFlag {
						return output.PrintJSONNotice("filter", err.Error())
					}
					output.Noticef("%s — no output file written", err)
					return nil
				}
				return err
			}

			if jsonFlag {
				return output.PrintJSON("filter", res)
			}
			output.Successf("Wrote %s (%d matching rows)", res.OutputPath, res.Matched)
			return nil
		},
	}

	cfg := config.LoadOrDefault()
	cmd.Flags().StringVar(&sheet, "sheet", cfg.Sheet, "Sheet to read")
	cmd.Flags().StringVar(&column, "column", cfg.Filter.Column, "Key column to match against")
	cmd.Flags().StringVar(&value, "value", "", "Value the key column must equal (required)")
	cmd.Flags().StringVar(&out, "out", "", "Output .xlsx file path (required)")
	cmd.Flags().StringVar(&outputSheet, "output-sheet", cfg.OutputSheet, "Sheet name in the output file")

	return cmd
}

// Package summary provides the "haulkit summary" command.
package summary

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/fleetworks/haulkit/internal/config"
	"github.com/fleetworks/haulkit/internal/output"
	"github.com/fleetworks/haulkit/internal/report"
)

// NewCommand returns the summary subcommand.
func NewCommand() *cobra.Command {
	var (
		sheet   string
		columns []string
		groupBy string
		keys    []string
	)

	cmd := &cobra.Command{
		Use:   "summary <file.xlsx>",
		Short: "Append sum rows for the numeric payroll columns",
		Long: `Sums the numeric columns (default "Rate", "Gross Pay", "Total") across
all data rows and appends the results to the sheet, rewriting the file
in place. Cells that are not numeric count as zero.

Without --by, one grand-total row is appended directly after the data.
With --by, one row per group key is appended after a blank row, labeled
"Total for <key>". Keys default to the distinct values of the group
column, sorted; pass --keys to control their order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			if groupBy == "" {
				res, err := report.Summarize(args[0], report.SummaryOptions{
					Sheet:   sheet,
					Columns: columns,
				})
				if err != nil {
					return softOrFail(err, jsonFlag)
				}
				if jsonFlag {
					return output.PrintJSON("summary", res)
				}
				output.Successf("Appended totals row %d to %s (%d data rows)", res.Row, args[0], res.Rows)
				return nil
			}

			if len(keys) == 0 {
				discovered, err := report.DistinctValues(args[0], sheet, groupBy)
				if err != nil {
					return softOrFail(err, jsonFlag)
				}
				keys = discovered
			}

			res, err := report.SummarizeGroups(args[0], report.GroupSummaryOptions{
				Sheet:       sheet,
				GroupColumn: groupBy,
				Keys:        keys,
				Columns:     columns,
			})
			if err != nil {
				return softOrFail(err, jsonFlag)
			}
			if jsonFlag {
				return output.PrintJSON("summary", res)
			}
			output.Successf("Appended %d group total rows to %s (%d data rows)", len(res.Groups), args[0], res.Rows)
			return nil
		},
	}

	cfg := config.LoadOrDefault()
	cmd.Flags().StringVar(&sheet, "sheet", cfg.OutputSheet, "Sheet to summarize")
	cmd.Flags().StringSliceVar(&columns, "columns", cfg.Summary.Columns, "Numeric columns to sum")
	cmd.Flags().StringVar(&groupBy, "by", "", "Group column for per-key totals (e.g. Truck)")
	cmd.Flags().StringSliceVar(&keys, "keys", nil, "Group keys, in output order (default: discovered, sorted)")

	return cmd
}

// softOrFail reports soft conditions without failing the command.
func softOrFail(err error, jsonFlag bool) error {
	if report.IsSoft(err) {
		if jsonFlag {
			return output.PrintJSONNotice("summary", err.Error())
		}
		output.Noticef("%s — file left unchanged", strings.TrimSpace(err.Error()))
		return nil
	}
	return err
}

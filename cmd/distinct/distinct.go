// Package distinct provides the "haulkit distinct" command.
package distinct

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetworks/haulkit/internal/config"
	"github.com/fleetworks/haulkit/internal/output"
	"github.com/fleetworks/haulkit/internal/report"
)

// NewCommand returns the distinct subcommand.
func NewCommand() *cobra.Command {
	var (
		sheet  string
		column string
	)

	cmd := &cobra.Command{
		Use:   "distinct <file.xlsx>",
		Short: "List the distinct values of a column",
		Long: `Scans a column (default "Truck") and prints its distinct non-empty text
values, sorted. Numeric and blank cells are skipped. Useful for
discovering the group keys before a grouped summary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			values, err := report.DistinctValues(args[0], sheet, column)
			if err != nil {
				if report.IsSoft(err) {
					if jsonFlag {
						return output.PrintJSONNotice("distinct", err.Error())
					}
					output.Noticef("%s", err)
					return nil
				}
				return err
			}

			if jsonFlag {
				return output.PrintJSON("distinct", values)
			}
			for _, v := range values {
				fmt.Println(v)
			}
			return nil
		},
	}

	cfg := config.LoadOrDefault()
	cmd.Flags().StringVar(&sheet, "sheet", cfg.Sheet, "Sheet to read")
	cmd.Flags().StringVar(&column, "column", cfg.Summary.GroupColumn, "Column to collect values from")

	return cmd
}

// Package version provides the version command for the haulkit CLI.
package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewCommand returns the version subcommand.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the haulkit version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("haulkit %s\n", Version)
		},
	}
}

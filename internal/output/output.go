// Package output provides formatting utilities for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/fleetworks/haulkit/cmd/version"
)

// Exit codes for consistent error reporting.
const (
	ExitOK        = 0 // success, including soft no-op conditions
	ExitUserError = 1 // bad flags, missing file, unreadable input, write failure
)

// JSONResult is the standard JSON output envelope for all commands.
type JSONResult struct {
	OK      bool        `json:"ok"`
	Command string      `json:"command"`
	Version string      `json:"version"`
	Data    interface{} `json:"data,omitempty"`
	Notice  string      `json:"notice,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PrintJSON writes a standard success JSON result to stdout.
func PrintJSON(cmd string, data interface{}) error {
	return encode(JSONResult{
		OK:      true,
		Command: cmd,
		Version: version.Version,
		Data:    data,
	})
}

// PrintJSONNotice writes a success result carrying a notice instead of data.
// Used for soft conditions like a missing column, which are not failures.
func PrintJSONNotice(cmd, notice string) error {
	return encode(JSONResult{
		OK:      true,
		Command: cmd,
		Version: version.Version,
		Notice:  notice,
	})
}

func encode(result JSONResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// Noticef prints a highlighted notice for soft conditions.
func Noticef(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(os.Stderr, format+"\n", args...)
}

// Successf prints a success line.
func Successf(format string, args ...interface{}) {
	color.New(color.FgGreen).Printf(format+"\n", args...)
}

// WriteError writes an error message to stderr.
func WriteError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

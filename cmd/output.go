// Package cmd provides command-line interface helpers for console output.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// statusOut receives progress messages. When stdout is redirected they go
// to stderr so that `scan --dry-run > LIST.INI` captures only the list.
var statusOut io.Writer = os.Stdout

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		statusOut = os.Stderr
	}
}

// statusf prints a progress message.
func statusf(format string, args ...interface{}) {
	fmt.Fprintf(statusOut, format, args...)
}

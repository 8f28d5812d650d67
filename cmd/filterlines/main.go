// Command filterlines filters a document down to the lines, or custom
// separated segments, that match a regular expression.
package main

import (
	"os"

	"github.com/Iron-Ham/filterlines/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}

// Command plantmatch is the CLI wrapper around the core matching and
// enumeration engine: it wires the collaborators (recipe/capability/cost
// loaders), the core's Run entrypoint, the Weighted Evaluator, and
// presents the result as a styled table or machine-readable export,
// grounded on the teacher's cmd/bd-examples/main.go cobra+lipgloss
// root-command idiom.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

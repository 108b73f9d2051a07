package common

import (
	"github.com/spf13/cobra"
)

// Mainify wraps a cobra entry point that returns an error, producing the
// standard signature cobra.Command.Run expects. It lets entry points rely on
// defer-based cleanup, which wouldn't run if they terminated the process
// directly on error.
func Mainify(entry func(*cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(command *cobra.Command, arguments []string) {
		if err := entry(command, arguments); err != nil {
			Fatal(err)
		}
	}
}

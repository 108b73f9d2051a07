// Command arbor is the command-line interface to the synchronization core:
// it loads a YAML configuration describing a set of replicas, and exposes
// the detect/reconcile/propagate pipeline as individual subcommands plus a
// convenience command that runs all three in sequence.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCommand = &cobra.Command{
	Use:   "arbor",
	Short: "arbor synchronizes a set of file-tree replicas",
	Run: func(command *cobra.Command, arguments []string) {
		command.Help()
	},
}

var rootConfiguration struct {
	configPath string
	verbose    bool
}

func init() {
	flags := rootCommand.PersistentFlags()
	flags.StringVarP(&rootConfiguration.configPath, "config", "c", "arbor.yaml", "Path to the synchronization configuration file")
	flags.BoolVarP(&rootConfiguration.verbose, "verbose", "v", false, "Enable verbose (debug-level) logging")

	cobra.EnableCommandSorting = false

	rootCommand.AddCommand(
		detectCommand,
		reconcileCommand,
		propagateCommand,
		syncCommand,
	)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/arbor-sync/arbor/cmd/common"
)

// syncMain is a convenience alias for propagate: a single synchronization
// pass is detect, reconcile, and propagate run back to back, which is
// exactly what propagateMain already does.
func syncMain(command *cobra.Command, arguments []string) error {
	return propagateMain(command, arguments)
}

var syncCommand = &cobra.Command{
	Use:   "sync",
	Short: "Run detect, reconcile, and propagate in one pass",
	Run:   common.Mainify(syncMain),
}

func init() {
	flags := syncCommand.Flags()
	flags.IntVar(&propagateConfiguration.assumeMaster, "master", -1, "Force this replica index as master for every difference the heuristic cannot resolve")
}

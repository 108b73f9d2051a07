package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arbor-sync/arbor/cmd/common"
	"github.com/arbor-sync/arbor/pkg/mirror/detect"
	"github.com/arbor-sync/arbor/pkg/mirror/propagate"
	"github.com/arbor-sync/arbor/pkg/mirror/reconcile"
	"github.com/arbor-sync/arbor/pkg/transfer"
)

var propagateConfiguration struct {
	assumeMaster int
}

func init() {
	flags := propagateCommand.Flags()
	flags.IntVar(&propagateConfiguration.assumeMaster, "master", -1, "Force this replica index as master for every difference the heuristic cannot resolve")
}

func propagateMain(command *cobra.Command, arguments []string) error {
	logger := rootLogger()

	info, arc, err := loadSyncInfo(logger)
	if err != nil {
		return err
	}
	defer arc.Close()

	printer := &common.StatusLinePrinter{}
	progress := statusProgress{print: printer.Print}

	search := detect.FromRoot()
	result, err := detect.FindUpdates(arc, &search, info, progress, logger)
	if err != nil {
		printer.BreakIfNonEmpty()
		return fmt.Errorf("detection failed: %w", err)
	}
	printer.Clear()

	if len(result.Differences) == 0 {
		fmt.Println("No differences found.")
		return nil
	}

	transferProgress := func(p transfer.Progress) {
		printer.Print(p.Human())
	}

	options := propagate.DefaultPropagationOptions{}
	propagated, skipped := 0, 0
	for _, difference := range result.Differences {
		operation := reconcile.Guess(difference)
		master, ok := operation.IsPropagateFromMaster()
		if !ok {
			if propagateConfiguration.assumeMaster < 0 {
				common.Warning(fmt.Sprintf("%s: %s; skipping (pass --master to force resolution)", difference.Path, operation))
				skipped++
				continue
			}
			master = propagateConfiguration.assumeMaster
		}

		if err := propagate.Propagate(difference, master, arc, options, transferProgress, logger); err != nil {
			printer.BreakIfNonEmpty()
			return fmt.Errorf("unable to propagate %s: %w", difference.Path, err)
		}
		propagated++
	}
	printer.Clear()

	fmt.Printf("Propagated %d difference(s), skipped %d.\n", propagated, skipped)
	return nil
}

var propagateCommand = &cobra.Command{
	Use:   "propagate",
	Short: "Detect, reconcile, and propagate the resulting operations",
	Run:   common.Mainify(propagateMain),
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arbor-sync/arbor/cmd/common"
	"github.com/arbor-sync/arbor/pkg/mirror/detect"
	"github.com/arbor-sync/arbor/pkg/mirror/reconcile"
)

func reconcileMain(command *cobra.Command, arguments []string) error {
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

	for _, difference := range result.Differences {
		operation := reconcile.Guess(difference)
		if master, ok := operation.IsPropagateFromMaster(); ok {
			fmt.Printf("%s: propagate from replica %d (%s)\n", difference.Path, master, info.Roots[master])
		} else {
			fmt.Printf("%s: %s (manual resolution required)\n", difference.Path, operation)
		}
	}

	return nil
}

var reconcileCommand = &cobra.Command{
	Use:   "reconcile",
	Short: "Detect differences and guess how each should be resolved",
	Run:   common.Mainify(reconcileMain),
}

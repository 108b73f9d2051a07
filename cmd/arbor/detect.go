package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arbor-sync/arbor/cmd/common"
	"github.com/arbor-sync/arbor/pkg/mirror/detect"
)

func detectMain(command *cobra.Command, arguments []string) error {
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

	fmt.Printf("Run %s: %d difference(s), %d archive hit(s), %d archive addition(s)\n",
		result.RunID, len(result.Differences), result.Statistics.ArchiveHits, result.Statistics.ArchiveAdditions)
	for _, difference := range result.Differences {
		fmt.Printf("  %s\n", difference.Path)
		for i, state := range difference.CurrentState {
			fmt.Printf("    replica %d: %s\n", i, state.Kind)
		}
	}

	return nil
}

var detectCommand = &cobra.Command{
	Use:   "detect",
	Short: "Scan replicas and report differences against the archive",
	Run:   common.Mainify(detectMain),
}

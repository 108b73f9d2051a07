package main

import (
	"fmt"

	"github.com/arbor-sync/arbor/pkg/config"
	"github.com/arbor-sync/arbor/pkg/logging"
	"github.com/arbor-sync/arbor/pkg/mirror/archive"
	"github.com/arbor-sync/arbor/pkg/mirror/detect"
	"github.com/arbor-sync/arbor/pkg/mirror/syncinfo"
)

// rootLogger returns the process-wide logger, gated to debug level when
// --verbose was given on the command line.
func rootLogger() *logging.Logger {
	level := logging.LevelInfo
	if rootConfiguration.verbose {
		level = logging.LevelDebug
	}
	return logging.NewRootLogger(level)
}

// loadSyncInfo loads the configuration named by --config and converts it to
// a SyncInfo, opening its archive alongside it.
func loadSyncInfo(logger *logging.Logger) (syncinfo.SyncInfo, *archive.Archive, error) {
	configuration, err := config.Load(rootConfiguration.configPath)
	if err != nil {
		return syncinfo.SyncInfo{}, nil, fmt.Errorf("unable to load configuration: %w", err)
	}

	info := configuration.SyncInfo()

	arc, err := archive.Open(configuration.ArchiveDirectory, logger.Sublogger("archive"))
	if err != nil {
		return syncinfo.SyncInfo{}, nil, fmt.Errorf("unable to open archive: %w", err)
	}

	return info, arc, nil
}

// statusProgress adapts a common.StatusLinePrinter to detect.ProgressCallback.
type statusProgress struct {
	print func(string)
}

// ReadingDirectory implements detect.ProgressCallback.
func (p statusProgress) ReadingDirectory(path string, checked, remaining int) {
	if path == "" {
		path = "."
	}
	p.print(fmt.Sprintf("scanning %s (%d checked, %d queued)", path, checked, remaining))
}

var _ detect.ProgressCallback = statusProgress{}

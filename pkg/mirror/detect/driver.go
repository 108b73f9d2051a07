package detect

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arbor-sync/arbor/pkg/logging"
	"github.com/arbor-sync/arbor/pkg/mirror/archive"
	"github.com/arbor-sync/arbor/pkg/mirror/compare"
	"github.com/arbor-sync/arbor/pkg/mirror/entry"
	"github.com/arbor-sync/arbor/pkg/mirror/scan"
	"github.com/arbor-sync/arbor/pkg/mirror/syncinfo"
	"github.com/arbor-sync/arbor/pkg/syncerrors"
)

// FindUpdates is the detection driver. It walks search's worklist (LIFO),
// scanning every directory it pops, consulting the archive for a fast path on
// every path it encounters, running the comparator only when the archive is
// silent or stale, and emitting a minimal set of Differences for paths that are genuinely out of
// sync. See SPEC_FULL.md §4.7 for the algorithm this mirrors exactly.
func FindUpdates(
	arc *archive.Archive,
	search *SearchDirectories,
	config syncinfo.SyncInfo,
	progress ProgressCallback,
	logger *logging.Logger,
) (*DetectionResult, error) {
	if err := checkRootsExist(config.Roots); err != nil {
		return nil, err
	}

	result := newDetectionResult()
	logger = logger.Sublogger(result.RunID)

	filtered := search.Directories[:0]
	for _, directory := range search.Directories {
		if !config.Ignore.IsIgnored(directory) {
			filtered = append(filtered, directory)
		}
	}
	search.Directories = filtered

	readDirectories := 0
	for {
		directory, ok := search.pop()
		if !ok {
			break
		}

		if filepath.IsAbs(directory) {
			return nil, &syncerrors.AbsolutePathProvided{Path: directory}
		}

		logger.Debugf("reading directory %q", directory)
		progress.ReadingDirectory(directory, readDirectories, len(search.Directories))
		readDirectories++

		archiveFile := arc.ForDirectory(directory)
		archiveEntries, err := archiveFile.Read(config.Replicas())
		if err != nil {
			return nil, fmt.Errorf("unable to read archive for %q: %w", directory, err)
		}

		current, err := scan.Directory(directory, config)
		if err != nil {
			return nil, err
		}

		logger.Debugf("analyzing %d item(s) in %q", len(current), directory)
		for path, currentState := range current {
			previous, hadPrevious := archiveEntries.Get(path)

			if hadPrevious && entry.Equal(previous, currentState) {
				result.Statistics.ArchiveHits++
			} else {
				inSync, err := compare.InSync(path, currentState, config.CompareFileContents, config.Roots, compare.FilesEqual)
				if err != nil {
					return nil, err
				}
				if inSync {
					archiveEntries.Insert(path, currentState)
					result.Statistics.ArchiveAdditions++
				} else {
					var previousCopy []entry.State
					if hadPrevious {
						previousCopy = append([]entry.State(nil), previous...)
					}
					result.addDifference(Difference{
						Path:          path,
						Roots:         config.Roots,
						PreviousState: previousCopy,
						CurrentState:  currentState,
					})
					continue
				}
			}

			// The path is identical on every replica; if it's a directory
			// and recursion was requested, queue it for further scanning.
			if search.Recurse {
				lastRoot := config.Roots[len(config.Roots)-1]
				if isDirectory(filepath.Join(lastRoot, path)) {
					search.push(path)
				}
			}
		}

		if archiveEntries.IsDirty() {
			if err := archiveFile.Write(archiveEntries); err != nil {
				return nil, fmt.Errorf("unable to write archive for %q: %w", directory, err)
			}
		}
	}

	return result, nil
}

func checkRootsExist(roots []string) error {
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			return &syncerrors.RootDoesntExist{Root: root}
		}
	}
	return nil
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

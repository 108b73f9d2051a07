package propagate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arbor-sync/arbor/pkg/logging"
	"github.com/arbor-sync/arbor/pkg/mirror/archive"
	"github.com/arbor-sync/arbor/pkg/mirror/detect"
	"github.com/arbor-sync/arbor/pkg/mirror/entry"
	"github.com/arbor-sync/arbor/pkg/mirror/hash"
)

// updateArchive brings the archive back in sync after a successful
// propagation. The difference's own entry is re-observed on every replica and
// rewritten directly into its parent directory's archive file. If difference.Path was previously a
// directory on some replica, whatever archive files exist for it and its
// descendants are stale the moment the master's state replaces it (the copy
// tool mirrors whole subtrees without going through the normal per-directory
// detection loop, so those records would otherwise never be revisited) and
// must be pruned before anything new is written. If the master turned out to
// be a directory, every descendant directory's archive record is then
// synthesized from scratch by walking the master's (now-identical) tree.
func updateArchive(difference detect.Difference, master int, arc *archive.Archive, logger *logging.Logger) error {
	replicas := len(difference.Roots)
	masterState := difference.CurrentState[master]

	if anyDirectory(difference.PreviousState) {
		if err := pruneDescendantArchives(difference.Path, replicas, arc, logger); err != nil {
			return err
		}
	}

	parentFile := arc.ForDirectory(parentDirectory(difference.Path))
	parentEntries, err := parentFile.Read(replicas)
	if err != nil {
		return fmt.Errorf("unable to read parent archive for %s: %w", difference.Path, err)
	}

	settled, err := entry.ObserveAll(difference.Roots, difference.Path)
	if err != nil {
		return fmt.Errorf("unable to re-observe %s after propagation: %w", difference.Path, err)
	}
	parentEntries.Insert(difference.Path, settled)
	if err := parentFile.Write(parentEntries); err != nil {
		return fmt.Errorf("unable to write parent archive for %s: %w", difference.Path, err)
	}

	if masterState.Kind != entry.KindDirectory {
		return nil
	}

	return rebuildSubtree(difference.Path, difference.Roots, arc, logger)
}

// anyDirectory reports whether any replica's recorded state is a directory.
func anyDirectory(states []entry.State) bool {
	for _, s := range states {
		if s.Kind == entry.KindDirectory {
			return true
		}
	}
	return false
}

// pruneDescendantArchives removes the archive file for path (identified by
// its hash) and every descendant archive file reachable by following
// directory entries within it, via an explicit-stack depth-first walk. It is
// invoked whenever a propagation replaces a previously-synced directory with
// something else (including Empty), since those archive files would
// otherwise reference children that no longer correspond to anything on any
// replica, violating the archive's no-stale-descendants invariant.
func pruneDescendantArchives(path string, replicas int, arc *archive.Archive, logger *logging.Logger) error {
	stack := []hash.Path{archive.Hash(path)}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		file := arc.ForHashedDirectory(current)
		entries, err := file.Read(replicas)
		if err != nil {
			return fmt.Errorf("unable to read archive %s while pruning: %w", current, err)
		}

		entries.Iter(func(childHash hash.Path, states []entry.State) {
			if anyDirectory(states) {
				stack = append(stack, childHash)
			}
		})

		if err := file.RemoveAll(); err != nil {
			return fmt.Errorf("unable to remove archive %s while pruning: %w", current, err)
		}
		logger.Debugf("pruned stale archive %s", current)
	}

	return nil
}

// rebuildSubtree performs an explicit-stack depth-first walk of directory,
// writing a fresh archive record for every descendant directory found. Using
// an explicit stack (rather than a recursive function) keeps stack depth
// bounded by a slice rather than by the host language's call stack, matching
// the traversal style used by the detection driver.
func rebuildSubtree(directory string, roots []string, arc *archive.Archive, logger *logging.Logger) error {
	stack := []string{directory}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		lastRoot := roots[len(roots)-1]
		children, err := os.ReadDir(filepath.Join(lastRoot, current))
		if err != nil {
			return fmt.Errorf("unable to list %s while rebuilding archive: %w", current, err)
		}

		entries := make(map[string][]entry.State, len(children))
		for _, child := range children {
			relativePath := filepath.Join(current, child.Name())
			states, err := entry.ObserveAll(roots, relativePath)
			if err != nil {
				return err
			}
			entries[relativePath] = states

			if states[len(states)-1].Kind == entry.KindDirectory {
				stack = append(stack, relativePath)
			}
		}

		file := arc.ForDirectory(current)
		record, err := file.Read(len(roots))
		if err != nil {
			return fmt.Errorf("unable to read archive for %s while rebuilding: %w", current, err)
		}
		for path, states := range entries {
			record.Insert(path, states)
		}
		if record.IsDirty() {
			if err := file.Write(record); err != nil {
				return fmt.Errorf("unable to write archive for %s while rebuilding: %w", current, err)
			}
		}
		logger.Debugf("rebuilt archive for %s (%d entries)", current, len(entries))
	}

	return nil
}

// parentDirectory returns the directory containing relativePath, treating a
// path with no separator as living directly under the root ("").
func parentDirectory(relativePath string) string {
	dir := filepath.Dir(filepath.ToSlash(relativePath))
	if dir == "." {
		return ""
	}
	return filepath.FromSlash(dir)
}

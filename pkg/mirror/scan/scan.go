// Package scan implements the (non-recursive) directory scanner: for one
// search directory, it unions child names across every replica and
// materializes their per-replica entry states.
package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arbor-sync/arbor/pkg/mirror/entry"
	"github.com/arbor-sync/arbor/pkg/mirror/syncinfo"
)

// Directory scans one directory (relative to every replica root) and
// returns a mapping from relative path to that path's per-replica states.
// It is not recursive: the caller (the detection driver) decides whether to
// push discovered subdirectories back onto its own worklist.
func Directory(directory string, config syncinfo.SyncInfo) (map[string][]entry.State, error) {
	current := make(map[string][]entry.State)

	presentEverywhere := true
	for _, root := range config.Roots {
		absoluteDirectory := filepath.Join(root, directory)
		info, err := os.Stat(absoluteDirectory)
		if err != nil || !info.IsDir() {
			presentEverywhere = false
			continue
		}

		children, err := os.ReadDir(absoluteDirectory)
		if err != nil {
			return nil, fmt.Errorf("unable to list %s: %w", absoluteDirectory, err)
		}

		for _, child := range children {
			relativePath := filepath.Join(directory, child.Name())
			if config.Ignore.IsIgnored(relativePath) {
				continue
			}
			if _, exists := current[relativePath]; exists {
				continue
			}
			states, err := entry.ObserveAll(config.Roots, relativePath)
			if err != nil {
				return nil, err
			}
			current[relativePath] = states
		}
	}

	// If the search directory itself isn't present (as a directory) on every
	// replica, force its own path into the result set so the mismatch is
	// surfaced as a difference rather than silently skipped.
	if !presentEverywhere {
		if _, exists := current[directory]; !exists {
			states, err := entry.ObserveAll(config.Roots, directory)
			if err != nil {
				return nil, err
			}
			current[directory] = states
		}
	}

	return current, nil
}

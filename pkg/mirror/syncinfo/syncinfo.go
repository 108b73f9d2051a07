// Package syncinfo carries the per-run configuration shared by scanning,
// comparison, detection and propagation: the ordered replica roots, the
// ignore predicate, and whether to compare file contents byte-for-byte.
package syncinfo

import "github.com/arbor-sync/arbor/pkg/ignore"

// SyncInfo describes one synchronization run's fixed configuration. The
// number of replicas, N, is len(Roots) for the lifetime of the run; every
// per-replica collection produced against this SyncInfo has that length.
type SyncInfo struct {
	// Roots are the ordered, absolute replica root paths.
	Roots []string
	// Ignore determines which relative paths are skipped entirely.
	Ignore ignore.Ignore
	// CompareFileContents, if true, makes the comparator byte-compare
	// file/symlink pairs in addition to comparing their sizes.
	CompareFileContents bool
}

// New constructs a SyncInfo with the given roots, no ignores, and content
// comparison enabled (the same defaults the prototype's SyncInfo::new uses).
func New(roots []string) SyncInfo {
	return SyncInfo{
		Roots:               roots,
		Ignore:              ignore.Nothing(),
		CompareFileContents: true,
	}
}

// Replicas returns N, the number of replicas in this run.
func (s SyncInfo) Replicas() int {
	return len(s.Roots)
}

// Package detect implements the update-detection driver: given an archive
// and a worklist of search directories, it discovers how each replica's
// current state relates to the persisted snapshot and emits differences.
package detect

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/arbor-sync/arbor/pkg/encoding"
	"github.com/arbor-sync/arbor/pkg/mirror/entry"
)

// Difference is a path at which replicas disagree, bundled with enough
// context (the prior archived state, if any, and the freshly observed
// current state) to be resolved without further filesystem I/O.
type Difference struct {
	// Path is the relative path at which the difference occurred.
	Path string
	// Roots are the replica roots in effect for this run.
	Roots []string
	// PreviousState is the archive's last-known state, if any existed.
	PreviousState []entry.State
	// CurrentState is the freshly observed per-replica state.
	CurrentState []entry.State
}

// AbsolutePathForRoot joins Path to the root at the given replica index.
func (d Difference) AbsolutePathForRoot(index int) string {
	return filepath.Join(d.Roots[index], d.Path)
}

// DetectionStatistics reports how effective the archive fast path was during
// one call to FindUpdates.
type DetectionStatistics struct {
	// ArchiveHits is the number of paths whose archived state matched the
	// freshly observed state exactly (no further comparison needed).
	ArchiveHits int
	// ArchiveAdditions is the number of paths newly promoted into the
	// archive because they were found to be in sync.
	ArchiveAdditions int
}

// DetectionResult is the output of one call to FindUpdates.
type DetectionResult struct {
	// RunID uniquely identifies this call, for log correlation. It has no
	// bearing on the archive or any persisted state (see SPEC_FULL.md §3.1).
	RunID string
	// Differences is the minimal set of unresolved differences found.
	Differences []Difference
	// Statistics reports archive fast-path effectiveness.
	Statistics DetectionStatistics
}

func newDetectionResult() *DetectionResult {
	return &DetectionResult{RunID: newRunID()}
}

// newRunID mints a short, log-friendly identifier for a detection run: a
// random UUID, Base62-encoded to keep log lines compact.
func newRunID() string {
	id := uuid.New()
	return encoding.EncodeBase62(id[:])
}

// addDifference inserts d into the result's difference set, maintaining the
// minimality invariant: if an existing difference's path starts with d's
// path, it is superseded and dropped; if d's path starts with an existing
// difference's path, d is subsumed and not added.
func (r *DetectionResult) addDifference(d Difference) {
	add := true
	kept := r.Differences[:0]
	for _, existing := range r.Differences {
		if startsWithPath(existing.Path, d.Path) {
			continue // existing is nested under (or equal to) d; drop it.
		}
		if startsWithPath(d.Path, existing.Path) {
			add = false // d is nested under an existing difference; skip it.
		}
		kept = append(kept, existing)
	}
	r.Differences = kept
	if add {
		r.Differences = append(r.Differences, d)
	}
}

// startsWithPath reports whether path is equal to, or a descendant of,
// prefix, matching filepath.Separator-aware path component boundaries.
func startsWithPath(path, prefix string) bool {
	path = filepath.ToSlash(path)
	prefix = filepath.ToSlash(prefix)
	if prefix == "" {
		return true
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

// SearchDirectories is the worklist of directories to examine, relative to
// every replica root.
type SearchDirectories struct {
	// Directories is the list of relative directories still to be examined.
	// It is mutated (popped from) as FindUpdates progresses.
	Directories []string
	// Recurse controls whether subdirectories discovered to be in sync are
	// pushed back onto Directories for further examination.
	Recurse bool
}

// FromRoot builds a SearchDirectories that recursively searches everything
// beneath the replica roots.
func FromRoot() SearchDirectories {
	return SearchDirectories{Directories: []string{""}, Recurse: true}
}

// New builds a SearchDirectories over an explicit directory list.
func New(directories []string, recurse bool) SearchDirectories {
	return SearchDirectories{Directories: directories, Recurse: recurse}
}

// pop removes and returns the last directory in the worklist (LIFO, matching
// the ordering guarantee in SPEC_FULL.md §5).
func (s *SearchDirectories) pop() (string, bool) {
	if len(s.Directories) == 0 {
		return "", false
	}
	last := len(s.Directories) - 1
	directory := s.Directories[last]
	s.Directories = s.Directories[:last]
	return directory, true
}

// push appends a directory to the worklist.
func (s *SearchDirectories) push(directory string) {
	s.Directories = append(s.Directories, directory)
}

// ProgressCallback reports detection progress between directories.
type ProgressCallback interface {
	// ReadingDirectory is called when a new directory is about to be
	// searched.
	ReadingDirectory(path string, checked, remaining int)
}

// EmptyProgressCallback is a ProgressCallback that does nothing.
type EmptyProgressCallback struct{}

// ReadingDirectory implements ProgressCallback.
func (EmptyProgressCallback) ReadingDirectory(string, int, int) {}

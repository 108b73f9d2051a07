package archive

import (
	"github.com/arbor-sync/arbor/pkg/mirror/entry"
	"github.com/arbor-sync/arbor/pkg/mirror/hash"
)

// Entries is the in-memory representation of one archive file's contents: a
// mapping from hashed child path to that child's per-replica state the last
// time every replica was observed identical.
type Entries struct {
	byHash   map[hash.Path][]entry.State
	replicas int
	dirty    bool
}

func newEntries(replicas int) *Entries {
	return &Entries{byHash: make(map[hash.Path][]entry.State), replicas: replicas}
}

// Get looks up the recorded state for relativePath, if any.
func (e *Entries) Get(relativePath string) ([]entry.State, bool) {
	states, ok := e.byHash[hash.Of(relativePath)]
	return states, ok
}

// GetHashed looks up the recorded state by an already-computed hash.
func (e *Entries) GetHashed(key hash.Path) ([]entry.State, bool) {
	states, ok := e.byHash[key]
	return states, ok
}

// Insert records states for relativePath and marks the entries dirty.
func (e *Entries) Insert(relativePath string, states []entry.State) {
	e.byHash[hash.Of(relativePath)] = states
	e.dirty = true
}

// Iter calls visit once for every (hash, states) pair currently recorded.
// Iteration order is unspecified.
func (e *Entries) Iter(visit func(hash.Path, []entry.State)) {
	for key, states := range e.byHash {
		visit(key, states)
	}
}

// PruneEmpty removes every entry in which every replica slot is Empty,
// preventing the archive from growing unboundedly as files are created,
// synced, and deleted over the life of a replica pair (invariant I4).
func (e *Entries) PruneEmpty() {
	for key, states := range e.byHash {
		if entry.AllEmpty(states) {
			delete(e.byHash, key)
		}
	}
}

// IsDirty reports whether Insert has been called since the last successful
// Write (or since construction, for a freshly read/empty Entries).
func (e *Entries) IsDirty() bool {
	return e.dirty
}

// Len returns the number of recorded entries.
func (e *Entries) Len() int {
	return len(e.byHash)
}

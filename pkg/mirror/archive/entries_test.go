package archive

import (
	"testing"

	"github.com/arbor-sync/arbor/pkg/mirror/entry"
	"github.com/arbor-sync/arbor/pkg/mirror/hash"
)

func TestInsertMarksDirty(t *testing.T) {
	entries := newEntries(1)
	if entries.IsDirty() {
		t.Fatal("expected a freshly constructed Entries to not be dirty")
	}
	entries.Insert("a", []entry.State{entry.Empty})
	if !entries.IsDirty() {
		t.Fatal("expected Insert to mark entries dirty")
	}
}

func TestPruneEmptyRemovesAllEmptyEntries(t *testing.T) {
	entries := newEntries(2)
	entries.Insert("gone", []entry.State{entry.Empty, entry.Empty})
	entries.Insert("present", []entry.State{{Kind: entry.KindFile}, entry.Empty})

	entries.PruneEmpty()

	if _, ok := entries.Get("gone"); ok {
		t.Fatal("expected all-empty entry to be pruned")
	}
	if _, ok := entries.Get("present"); !ok {
		t.Fatal("expected partially-populated entry to survive pruning")
	}
}

func TestIterVisitsEveryEntry(t *testing.T) {
	entries := newEntries(1)
	entries.Insert("a", []entry.State{entry.Empty})
	entries.Insert("b", []entry.State{entry.Empty})

	seen := make(map[hash.Path]bool)
	entries.Iter(func(key hash.Path, _ []entry.State) {
		seen[key] = true
	})
	if len(seen) != 2 {
		t.Fatalf("expected Iter to visit 2 entries, saw %d", len(seen))
	}
	if !seen[hash.Of("a")] || !seen[hash.Of("b")] {
		t.Fatal("expected Iter to visit both inserted keys")
	}
}

package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arbor-sync/arbor/pkg/ignore"
	"github.com/arbor-sync/arbor/pkg/mirror/entry"
	"github.com/arbor-sync/arbor/pkg/mirror/syncinfo"
)

func TestDirectoryUnionsChildrenAcrossReplicas(t *testing.T) {
	rootA, rootB := t.TempDir(), t.TempDir()
	if err := os.WriteFile(filepath.Join(rootA, "only-a"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(rootB, "only-b"), []byte("y"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(rootA, "both"), []byte("z"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(rootB, "both"), []byte("z"), 0644); err != nil {
		t.Fatal(err)
	}

	config := syncinfo.New([]string{rootA, rootB})
	current, err := Directory("", config)
	if err != nil {
		t.Fatalf("unable to scan: %v", err)
	}

	for _, name := range []string{"only-a", "only-b", "both"} {
		if _, ok := current[name]; !ok {
			t.Fatalf("expected %q to appear in the union", name)
		}
	}

	onlyA := current["only-a"]
	if onlyA[0].Kind != entry.KindFile || onlyA[1].Kind != entry.KindEmpty {
		t.Fatalf("unexpected states for only-a: %+v", onlyA)
	}
}

func TestDirectoryRespectsIgnores(t *testing.T) {
	rootA := t.TempDir()
	if err := os.WriteFile(filepath.Join(rootA, "skip.me"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(rootA, "keep.me"), []byte("y"), 0644); err != nil {
		t.Fatal(err)
	}

	config := syncinfo.New([]string{rootA})
	config.Ignore = ignore.Ignore{Paths: []string{"skip.me"}}

	current, err := Directory("", config)
	if err != nil {
		t.Fatalf("unable to scan: %v", err)
	}
	if _, ok := current["skip.me"]; ok {
		t.Fatal("expected ignored path to be excluded")
	}
	if _, ok := current["keep.me"]; !ok {
		t.Fatal("expected non-ignored path to be included")
	}
}

func TestDirectoryForcesItsOwnPathWhenMissingOnSomeReplica(t *testing.T) {
	rootA, rootB := t.TempDir(), t.TempDir()
	if err := os.Mkdir(filepath.Join(rootA, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	// rootB has no "sub" directory at all.

	config := syncinfo.New([]string{rootA, rootB})
	current, err := Directory("sub", config)
	if err != nil {
		t.Fatalf("unable to scan: %v", err)
	}

	states, ok := current["sub"]
	if !ok {
		t.Fatal("expected the search directory's own path to be forced into the result")
	}
	if states[0].Kind != entry.KindDirectory || states[1].Kind != entry.KindEmpty {
		t.Fatalf("unexpected states for sub: %+v", states)
	}
}

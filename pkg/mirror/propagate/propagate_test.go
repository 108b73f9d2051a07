package propagate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arbor-sync/arbor/pkg/logging"
	"github.com/arbor-sync/arbor/pkg/mirror/archive"
	"github.com/arbor-sync/arbor/pkg/mirror/detect"
	"github.com/arbor-sync/arbor/pkg/mirror/entry"
	"github.com/arbor-sync/arbor/pkg/syncerrors"
)

func testLogger() *logging.Logger {
	return logging.NewRootLogger(logging.LevelDisabled)
}

func testArchive(t *testing.T) *archive.Archive {
	t.Helper()
	arc, err := archive.Open(filepath.Join(t.TempDir(), "archive"), testLogger())
	if err != nil {
		t.Fatalf("unable to open archive: %v", err)
	}
	t.Cleanup(arc.Close)
	return arc
}

func observe(t *testing.T, path string) entry.State {
	t.Helper()
	state, err := entry.Observe(path)
	if err != nil {
		t.Fatalf("unable to observe %s: %v", path, err)
	}
	return state
}

func TestPropagateDetectsConcurrentModification(t *testing.T) {
	rootA, rootB := t.TempDir(), t.TempDir()
	if err := os.WriteFile(filepath.Join(rootA, "f"), []byte("master"), 0644); err != nil {
		t.Fatal(err)
	}

	difference := detect.Difference{
		Path:          "f",
		Roots:         []string{rootA, rootB},
		CurrentState:  []entry.State{observe(t, filepath.Join(rootA, "f")), entry.Empty},
	}

	// Mutate replica B after the difference was computed but before propagation.
	if err := os.WriteFile(filepath.Join(rootB, "f"), []byte("surprise"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Propagate(difference, 0, testArchive(t), DefaultPropagationOptions{}, nil, testLogger())
	if _, ok := err.(*syncerrors.PathModified); !ok {
		t.Fatalf("expected *syncerrors.PathModified, got %v", err)
	}
}

func TestPropagateCopiesFileToEmptyReplica(t *testing.T) {
	rootA, rootB := t.TempDir(), t.TempDir()
	if err := os.WriteFile(filepath.Join(rootA, "f"), []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}

	difference := detect.Difference{
		Path:         "f",
		Roots:        []string{rootA, rootB},
		CurrentState: []entry.State{observe(t, filepath.Join(rootA, "f")), entry.Empty},
	}

	if err := Propagate(difference, 0, testArchive(t), DefaultPropagationOptions{}, nil, testLogger()); err != nil {
		t.Skipf("propagation requires an external copy tool on PATH: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(rootB, "f"))
	if err != nil {
		t.Fatalf("expected file to be copied to replica B: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("expected copied content to match, got %q", data)
	}
}

func TestPropagateRemovesFileWhenMasterIsEmpty(t *testing.T) {
	rootA, rootB := t.TempDir(), t.TempDir()
	if err := os.WriteFile(filepath.Join(rootB, "f"), []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	difference := detect.Difference{
		Path:         "f",
		Roots:        []string{rootA, rootB},
		CurrentState: []entry.State{entry.Empty, observe(t, filepath.Join(rootB, "f"))},
	}

	if err := Propagate(difference, 0, testArchive(t), DefaultPropagationOptions{}, nil, testLogger()); err != nil {
		t.Fatalf("unable to propagate: %v", err)
	}

	if _, err := os.Stat(filepath.Join(rootB, "f")); !os.IsNotExist(err) {
		t.Fatal("expected stale file on replica B to be removed")
	}
}

func TestPropagateRefusesSymlinkMaster(t *testing.T) {
	rootA, rootB := t.TempDir(), t.TempDir()
	target := filepath.Join(rootA, "target")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(rootA, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported in this environment: %v", err)
	}

	difference := detect.Difference{
		Path:         "link",
		Roots:        []string{rootA, rootB},
		CurrentState: []entry.State{observe(t, link), entry.Empty},
	}

	err := Propagate(difference, 0, testArchive(t), DefaultPropagationOptions{}, nil, testLogger())
	if err == nil {
		t.Fatal("expected an error for symlink propagation")
	}
}

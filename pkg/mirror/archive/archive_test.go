package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arbor-sync/arbor/pkg/logging"
	"github.com/arbor-sync/arbor/pkg/mirror/entry"
)

func testLogger() *logging.Logger {
	return logging.NewRootLogger(logging.LevelDisabled)
}

func TestOpenCreatesDirectory(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "nested", "archive")
	arc, err := Open(directory, testLogger())
	if err != nil {
		t.Fatalf("unable to open archive: %v", err)
	}
	defer arc.Close()
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	arc, err := Open(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("unable to open archive: %v", err)
	}
	defer arc.Close()

	file := arc.ForDirectory("some/dir")
	entries, err := file.Read(2)
	if err != nil {
		t.Fatalf("unable to read fresh archive: %v", err)
	}
	if entries.Len() != 0 {
		t.Fatalf("expected an empty archive, got %d entries", entries.Len())
	}

	states := []entry.State{
		{Kind: entry.KindFile, Token: entry.Token{Inode: 1, Ctime: 100}},
		{Kind: entry.KindFile, Token: entry.Token{Inode: 2, Ctime: 200}},
	}
	entries.Insert("some/dir/file.txt", states)
	if err := file.Write(entries); err != nil {
		t.Fatalf("unable to write archive: %v", err)
	}

	reread, err := file.Read(2)
	if err != nil {
		t.Fatalf("unable to re-read archive: %v", err)
	}
	got, ok := reread.Get("some/dir/file.txt")
	if !ok {
		t.Fatal("expected entry to be present after reread")
	}
	if !entry.Equal(got, states) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, states)
	}
}

func TestWriteAllEmptyRemovesFile(t *testing.T) {
	arc, err := Open(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("unable to open archive: %v", err)
	}
	defer arc.Close()

	file := arc.ForDirectory("dir")
	entries, err := file.Read(1)
	if err != nil {
		t.Fatal(err)
	}
	entries.Insert("dir/gone", []entry.State{entry.Empty})
	if err := file.Write(entries); err != nil {
		t.Fatalf("unable to write archive: %v", err)
	}
	if _, err := os.Stat(file.path); !os.IsNotExist(err) {
		t.Fatalf("expected no archive file on disk after writing all-empty entries, got err=%v", err)
	}

	reread, err := file.Read(1)
	if err != nil {
		t.Fatalf("unable to re-read archive: %v", err)
	}
	if reread.Len() != 0 {
		t.Fatalf("expected all-empty entries to be pruned, got %d", reread.Len())
	}
}

func TestForHashedDirectoryCachesHandles(t *testing.T) {
	arc, err := Open(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("unable to open archive: %v", err)
	}
	defer arc.Close()

	a := arc.ForDirectory("same")
	b := arc.ForDirectory("same")
	if a != b {
		t.Fatal("expected repeated lookups of the same directory to return the cached handle")
	}
}

func TestReadAfterWriteIsStable(t *testing.T) {
	arc, err := Open(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("unable to open archive: %v", err)
	}
	defer arc.Close()

	file := arc.ForDirectory("dir")
	entries, err := file.Read(1)
	if err != nil {
		t.Fatal(err)
	}
	entries.Insert("dir/f", []entry.State{{Kind: entry.KindFile}})
	if err := file.Write(entries); err != nil {
		t.Fatal(err)
	}

	corrupted, err := file.Read(1)
	if err != nil {
		t.Fatalf("unexpected error reading back valid archive: %v", err)
	}
	if corrupted.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", corrupted.Len())
	}
}

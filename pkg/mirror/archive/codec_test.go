package archive

import (
	"encoding/binary"
	"testing"

	"github.com/arbor-sync/arbor/pkg/mirror/entry"
	"github.com/arbor-sync/arbor/pkg/mirror/hash"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	entries := newEntries(2)
	entries.Insert("a", []entry.State{
		{Kind: entry.KindFile, Token: entry.Token{Inode: 1, Ctime: 2}},
		entry.Empty,
	})
	entries.Insert("b/c", []entry.State{
		{Kind: entry.KindDirectory, Token: entry.Token{Inode: 3, Ctime: 4}},
		{Kind: entry.KindSymlink, Token: entry.Token{Inode: 5, Ctime: 6}},
	})

	data := encode(entries)
	decoded, err := decode(data, 2)
	if err != nil {
		t.Fatalf("unable to decode: %v", err)
	}
	if decoded.Len() != entries.Len() {
		t.Fatalf("expected %d entries, got %d", entries.Len(), decoded.Len())
	}
	for _, path := range []string{"a", "b/c"} {
		want, _ := entries.Get(path)
		got, ok := decoded.Get(path)
		if !ok {
			t.Fatalf("expected %q to be present after decode", path)
		}
		if !entry.Equal(want, got) {
			t.Fatalf("mismatch for %q: got %+v, want %+v", path, got, want)
		}
	}
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], Version+1)
	_, err := decode(data, 1)
	if err == nil {
		t.Fatal("expected a version mismatch error")
	}
	if _, ok := err.(*versionMismatchError); !ok {
		t.Fatalf("expected a *versionMismatchError, got %T", err)
	}
}

func TestDecodeRejectsTruncatedData(t *testing.T) {
	entries := newEntries(1)
	entries.Insert("a", []entry.State{{Kind: entry.KindFile, Token: entry.Token{Inode: 1, Ctime: 2}}})
	data := encode(entries)

	if _, err := decode(data[:len(data)-1], 1); err != errTruncated {
		t.Fatalf("expected errTruncated, got %v", err)
	}
}

func TestDecodeEmptyEntryHasNoToken(t *testing.T) {
	entries := newEntries(1)
	entries.Insert("a", []entry.State{entry.Empty})
	data := encode(entries)

	// version(4) + count(8) + hash(8) + discriminant(1), no token bytes.
	if len(data) != 21 {
		t.Fatalf("expected 21 encoded bytes for a single Empty entry, got %d", len(data))
	}

	decoded, err := decode(data, 1)
	if err != nil {
		t.Fatalf("unable to decode: %v", err)
	}
	got, ok := decoded.GetHashed(hash.Of("a"))
	if !ok {
		t.Fatal("expected entry to decode")
	}
	if got[0] != entry.Empty {
		t.Fatalf("expected Empty state, got %+v", got[0])
	}
}

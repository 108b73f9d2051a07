package archive

import (
	"encoding/binary"
	"fmt"

	"github.com/arbor-sync/arbor/pkg/mirror/entry"
	"github.com/arbor-sync/arbor/pkg/mirror/hash"
)

// The on-disk layout (see SPEC_FULL.md §6):
//
//	bytes 0-3:   little-endian uint32 version
//	bytes 4-end: little-endian uint64 entry count, then for each entry:
//	               8 bytes: little-endian hashed path
//	               for each replica: 1-byte kind discriminant
//	                 (0=Empty, 1=Directory, 2=File, 3=Symlink), followed by
//	                 {inode uint64, ctime int64} little-endian for non-Empty
//	                 kinds.

var errTruncated = fmt.Errorf("archive file truncated")

// versionMismatchError is returned internally by decode when the on-disk
// version tag doesn't match the current Version constant.
type versionMismatchError struct {
	found uint32
}

func (e *versionMismatchError) Error() string {
	return fmt.Sprintf("unexpected archive version %d", e.found)
}

func encode(entries *Entries) []byte {
	// Compute size up front to avoid repeated reallocation: 4 (version) + 8
	// (count) + per-entry (8 + replicas*(1 + 16 worst case)).
	buffer := make([]byte, 0, 12+entries.Len()*(8+entries.replicas*17))

	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], Version)
	buffer = append(buffer, header[:]...)

	var count [8]byte
	binary.LittleEndian.PutUint64(count[:], uint64(entries.Len()))
	buffer = append(buffer, count[:]...)

	entries.Iter(func(key hash.Path, states []entry.State) {
		var keyBytes [8]byte
		binary.LittleEndian.PutUint64(keyBytes[:], uint64(key))
		buffer = append(buffer, keyBytes[:]...)
		for _, state := range states {
			buffer = appendState(buffer, state)
		}
	})

	return buffer
}

func appendState(buffer []byte, state entry.State) []byte {
	buffer = append(buffer, kindDiscriminant(state.Kind))
	if state.Kind == entry.KindEmpty {
		return buffer
	}
	var token [16]byte
	binary.LittleEndian.PutUint64(token[0:8], state.Token.Inode)
	binary.LittleEndian.PutUint64(token[8:16], uint64(state.Token.Ctime))
	return append(buffer, token[:]...)
}

func kindDiscriminant(kind entry.Kind) byte {
	switch kind {
	case entry.KindEmpty:
		return 0
	case entry.KindDirectory:
		return 1
	case entry.KindFile:
		return 2
	case entry.KindSymlink:
		return 3
	default:
		return 0
	}
}

func kindFromDiscriminant(b byte) (entry.Kind, bool) {
	switch b {
	case 0:
		return entry.KindEmpty, true
	case 1:
		return entry.KindDirectory, true
	case 2:
		return entry.KindFile, true
	case 3:
		return entry.KindSymlink, true
	default:
		return 0, false
	}
}

func decode(data []byte, replicas int) (*Entries, error) {
	if len(data) < 4 {
		return nil, errTruncated
	}
	version := binary.LittleEndian.Uint32(data[0:4])
	if version != Version {
		return nil, &versionMismatchError{found: version}
	}
	offset := 4

	if len(data) < offset+8 {
		return nil, errTruncated
	}
	count := binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	entries := newEntries(replicas)
	for i := uint64(0); i < count; i++ {
		if len(data) < offset+8 {
			return nil, errTruncated
		}
		key := hash.Path(binary.LittleEndian.Uint64(data[offset : offset+8]))
		offset += 8

		states := make([]entry.State, replicas)
		for r := 0; r < replicas; r++ {
			if len(data) < offset+1 {
				return nil, errTruncated
			}
			kind, ok := kindFromDiscriminant(data[offset])
			if !ok {
				return nil, fmt.Errorf("invalid entry discriminant %d", data[offset])
			}
			offset++

			if kind == entry.KindEmpty {
				states[r] = entry.Empty
				continue
			}
			if len(data) < offset+16 {
				return nil, errTruncated
			}
			inode := binary.LittleEndian.Uint64(data[offset : offset+8])
			ctime := int64(binary.LittleEndian.Uint64(data[offset+8 : offset+16]))
			offset += 16
			states[r] = entry.State{Kind: kind, Token: entry.Token{Inode: inode, Ctime: ctime}}
		}
		entries.byHash[key] = states
	}

	return entries, nil
}

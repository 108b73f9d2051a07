// Package entry defines the tagged-union representation of what a single
// path looks like on a single replica, and the freshness token used as a
// cheap proxy for "has this changed since we last looked".
package entry

import (
	"os"
	"path/filepath"
)

// Kind identifies which of the four EntryState cases is populated.
type Kind uint8

const (
	// KindEmpty means the path does not exist on the replica.
	KindEmpty Kind = iota
	// KindDirectory means the path is a directory.
	KindDirectory
	// KindFile means the path is a regular file.
	KindFile
	// KindSymlink means the path is a symbolic link.
	KindSymlink
)

// String renders the kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// Token is the freshness token recorded for any non-empty entry: the inode
// number and change time observed the last time the entry was examined. Two
// observations of an unchanged file are expected (though not guaranteed) to
// carry identical tokens, which is what makes the archive's fast path safe.
type Token struct {
	Inode uint64
	Ctime int64
}

// State mirrors the state of a path on one replica's filesystem. The zero
// value is the Empty state.
type State struct {
	Kind  Kind
	Token Token
}

// Empty is the canonical Empty state, useful as a named constant.
var Empty = State{Kind: KindEmpty}

// Exists reports whether the entry is present (i.e. anything but Empty).
func (s State) Exists() bool {
	return s.Kind != KindEmpty
}

// IsFileOrSymlink reports whether the entry is a file or a symlink (the two
// "leaf" kinds that the comparator compares by size/content).
func (s State) IsFileOrSymlink() bool {
	return s.Kind == KindFile || s.Kind == KindSymlink
}

// SameKind reports whether a and b have the same Kind, ignoring their
// tokens. Two Empty states are always of the same kind.
func SameKind(a, b State) bool {
	return a.Kind == b.Kind
}

// Observe stats absolutePath and classifies it into a State. A path that
// does not exist yields Empty. Any file type other than regular
// file/directory/symlink is a precondition violation and is reported as an
// error rather than silently ignored.
func Observe(absolutePath string) (State, error) {
	info, err := os.Lstat(absolutePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Empty, nil
		}
		return State{}, err
	}

	token := tokenFromInfo(absolutePath, info)
	mode := info.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		return State{Kind: KindSymlink, Token: token}, nil
	case mode.IsDir():
		return State{Kind: KindDirectory, Token: token}, nil
	case mode.IsRegular():
		return State{Kind: KindFile, Token: token}, nil
	default:
		return State{}, &UnsupportedEntryKindError{Path: absolutePath, Mode: mode}
	}
}

// ObserveAll computes a per-replica array of states by joining relativePath
// to each of roots in turn.
func ObserveAll(roots []string, relativePath string) ([]State, error) {
	states := make([]State, len(roots))
	for i, root := range roots {
		state, err := Observe(filepath.Join(root, relativePath))
		if err != nil {
			return nil, err
		}
		states[i] = state
	}
	return states, nil
}

// Equal reports full equality (kind and token) between two per-replica state
// slices, used by the detection driver's archive fast path. Both slices must
// have the same length.
func Equal(a, b []State) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AllEmpty reports whether every entry in states is Empty, used to decide
// whether an archive record can be pruned.
func AllEmpty(states []State) bool {
	for _, s := range states {
		if s.Kind != KindEmpty {
			return false
		}
	}
	return true
}

// UnsupportedEntryKindError is returned by Observe when a path resolves to a
// filesystem object kind this system does not model (e.g. a device node or
// named pipe).
type UnsupportedEntryKindError struct {
	Path string
	Mode os.FileMode
}

func (e *UnsupportedEntryKindError) Error() string {
	return "unsupported filesystem entry at " + e.Path + ": " + e.Mode.String()
}

// Package locking provides cross-platform exclusive advisory file locking,
// used to serialize access to archive files between processes sharing an
// archive directory.
package locking

import (
	"fmt"
	"os"
)

// Locker wraps an open file descriptor with exclusive advisory locking
// operations. The zero value is not valid; use NewLocker.
type Locker struct {
	// file is the underlying file object to be locked.
	file *os.File
}

// NewLocker opens (creating if necessary) the file at the specified path and
// returns a Locker wrapping it. The lock is returned in an unlocked state;
// callers must invoke Lock before relying on exclusivity.
func NewLocker(path string, permissions os.FileMode) (*Locker, error) {
	mode := os.O_RDWR | os.O_CREATE
	file, err := os.OpenFile(path, mode, permissions)
	if err != nil {
		return nil, fmt.Errorf("unable to open lock file: %w", err)
	}
	locker := &Locker{file: file}
	if err := setRestrictivePermissions(file.Name()); err != nil {
		file.Close()
		return nil, err
	}
	return locker, nil
}

// File returns the underlying file handle so that callers can read/write/seek
// through it directly once they hold the lock.
func (l *Locker) File() *os.File {
	return l.file
}

// Close releases the lock (if held) and closes the underlying file.
func (l *Locker) Close() error {
	_ = l.Unlock()
	return l.file.Close()
}

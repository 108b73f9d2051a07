//go:build !windows

package locking

import (
	"golang.org/x/sys/unix"
)

// Lock attempts to acquire the exclusive file lock, blocking until it is
// available.
func (l *Locker) Lock() error {
	return unix.Flock(int(l.file.Fd()), unix.LOCK_EX)
}

// Unlock releases the file lock.
func (l *Locker) Unlock() error {
	return unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
}

// setRestrictivePermissions is a no-op on POSIX platforms, where the
// permissions passed to OpenFile already apply.
func setRestrictivePermissions(path string) error {
	return nil
}

//go:build windows

// Windows file locking implementation based on (but heavily modified from)
// https://github.com/golang/build/blob/4821e1d4e1dd5d386f53f1e869ced293dd18f44a/cmd/builder/filemutex_windows.go,
// adapted from the teacher project's pkg/filesystem/locking/locker_windows.go.

package locking

import (
	"syscall"
	"unsafe"

	"github.com/hectane/go-acl"
	"golang.org/x/sys/windows"
)

var (
	kernel32     = windows.NewLazySystemDLL("kernel32.dll")
	lockFileEx   = kernel32.NewProc("LockFileEx")
	unlockFileEx = kernel32.NewProc("UnlockFileEx")
)

const (
	lockfileExclusiveLock = 2
)

func callLockFileEx(handle syscall.Handle, flags, reserved, lockLow, lockHigh uint32, overlapped *syscall.Overlapped) error {
	r1, _, e1 := syscall.Syscall6(
		lockFileEx.Addr(), 6,
		uintptr(handle), uintptr(flags), uintptr(reserved),
		uintptr(lockLow), uintptr(lockHigh), uintptr(unsafe.Pointer(overlapped)),
	)
	if r1 == 0 {
		if e1 != 0 {
			return error(e1)
		}
		return syscall.EINVAL
	}
	return nil
}

func callUnlockFileEx(handle syscall.Handle, reserved, lockLow, lockHigh uint32, overlapped *syscall.Overlapped) error {
	r1, _, e1 := syscall.Syscall6(
		unlockFileEx.Addr(), 5,
		uintptr(handle), uintptr(reserved), uintptr(lockLow), uintptr(lockHigh),
		uintptr(unsafe.Pointer(overlapped)), 0,
	)
	if r1 == 0 {
		if e1 != 0 {
			return error(e1)
		}
		return syscall.EINVAL
	}
	return nil
}

// Lock attempts to acquire the file lock, blocking until it is available.
func (l *Locker) Lock() error {
	var overlapped syscall.Overlapped
	return callLockFileEx(syscall.Handle(l.file.Fd()), lockfileExclusiveLock, 0, 1, 0, &overlapped)
}

// Unlock releases the file lock.
func (l *Locker) Unlock() error {
	var overlapped syscall.Overlapped
	return callUnlockFileEx(syscall.Handle(l.file.Fd()), 0, 1, 0, &overlapped)
}

// setRestrictivePermissions restricts the archive file to the current user,
// since Windows does not honor POSIX-style create permissions.
func setRestrictivePermissions(path string) error {
	return acl.Chmod(path, 0600)
}

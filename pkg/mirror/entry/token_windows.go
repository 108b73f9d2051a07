//go:build windows

package entry

import (
	"os"
	"syscall"
)

// tokenFromInfo approximates the POSIX inode/ctime freshness token on
// Windows using the creation time exposed by syscall.Win32FileAttributeData,
// the concrete type os.FileInfo.Sys() actually returns on this platform. Per
// the specification this system only guarantees meaningful freshness
// tracking on POSIX-style filesystems; Windows support is best-effort.
func tokenFromInfo(_ string, info os.FileInfo) Token {
	stat, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return Token{}
	}
	return Token{
		Ctime: stat.CreationTime.Nanoseconds(),
	}
}

//go:build darwin

package entry

import (
	"os"

	"golang.org/x/sys/unix"
)

// tokenFromInfo extracts the inode number and change time from Darwin
// filesystem metadata, where the change-time field is named Ctimespec. A
// fresh unix.Lstat call is used rather than os.FileInfo.Sys(), whose
// concrete type is the standard library's own syscall.Stat_t, not
// unix.Stat_t.
func tokenFromInfo(absolutePath string, _ os.FileInfo) Token {
	var stat unix.Stat_t
	if err := unix.Lstat(absolutePath, &stat); err != nil {
		return Token{}
	}
	return Token{
		Inode: stat.Ino,
		Ctime: stat.Ctimespec.Sec*int64(1e9) + int64(stat.Ctimespec.Nsec),
	}
}

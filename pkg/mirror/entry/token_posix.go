//go:build !windows && !darwin

package entry

import (
	"os"

	"golang.org/x/sys/unix"
)

// tokenFromInfo extracts the inode number and change time from POSIX
// filesystem metadata. Linux and the BSDs (other than Darwin) expose the
// change-time field as Ctim. A fresh unix.Lstat call is used rather than
// os.FileInfo.Sys(), whose concrete type is the standard library's own
// (differently defined) syscall.Stat_t, not unix.Stat_t.
func tokenFromInfo(absolutePath string, _ os.FileInfo) Token {
	var stat unix.Stat_t
	if err := unix.Lstat(absolutePath, &stat); err != nil {
		return Token{}
	}
	return Token{
		Inode: stat.Ino,
		Ctime: stat.Ctim.Sec*int64(1e9) + int64(stat.Ctim.Nsec),
	}
}

// Package compare implements the comparator that decides whether a path's
// current state is in sync across all replicas without being told so by the
// archive.
package compare

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arbor-sync/arbor/pkg/mirror/entry"
)

// FileComparator compares the byte contents of two absolute paths, returning
// true iff they are identical. The reference behavior is equivalent to
// POSIX cmp (zero-length files compare equal).
type FileComparator func(a, b string) (bool, error)

// InSync decides whether relativePath's current per-replica states
// represent an in-sync path: same kind, same size (for file/symlink pairs),
// and (if compareContents is true) same contents. Adjacent replicas are
// compared in a window of two (N-1 comparisons instead of N*(N-1)/2); since
// equality is transitive this is sufficient.
func InSync(relativePath string, current []entry.State, compareContents bool, roots []string, compareFiles FileComparator) (bool, error) {
	for i := 0; i+1 < len(current); i++ {
		if !entry.SameKind(current[i], current[i+1]) {
			return false, nil
		}
	}

	for i := 0; i+1 < len(current); i++ {
		a, b := current[i], current[i+1]
		if !a.IsFileOrSymlink() || !b.IsFileOrSymlink() {
			continue
		}
		sizeA, err := sizeOf(filepath.Join(roots[i], relativePath))
		if err != nil {
			return false, err
		}
		sizeB, err := sizeOf(filepath.Join(roots[i+1], relativePath))
		if err != nil {
			return false, err
		}
		if sizeA != sizeB {
			return false, nil
		}
	}

	if compareContents {
		for i := 0; i+1 < len(current); i++ {
			a, b := current[i], current[i+1]
			if !a.IsFileOrSymlink() || !b.IsFileOrSymlink() {
				continue
			}
			equal, err := compareFiles(filepath.Join(roots[i], relativePath), filepath.Join(roots[i+1], relativePath))
			if err != nil {
				return false, err
			}
			if !equal {
				return false, nil
			}
		}
	}

	return true, nil
}

func sizeOf(path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, fmt.Errorf("unable to stat %s: %w", path, err)
	}
	return info.Size(), nil
}

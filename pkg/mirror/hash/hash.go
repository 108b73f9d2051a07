// Package hash computes the stable 64-bit path keys used to index archive
// entries within a single directory's archive file.
package hash

import (
	"hash/fnv"
	"path/filepath"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Path is a hashed relative path: a 64-bit FNV-1a digest of the path's
// NFC-normalized, slash-separated byte representation. It is only ever used
// as a lookup key within one directory's archive file; collisions across
// directories are impossible by construction since they live in separate
// files, and collisions within one directory (between sibling names) are
// treated as negligible (see design notes on path hashing).
type Path uint64

// Of computes the hashed form of a relative path. The path is normalized to
// forward slashes and Unicode NFC before hashing, so that the same logical
// name hashes identically regardless of which OS or filesystem (e.g. an HFS+
// volume that stores NFD-decomposed names) it was observed on.
func Of(relativePath string) Path {
	normalized := norm.NFC.String(filepath.ToSlash(relativePath))
	digest := fnv.New64a()
	_, _ = digest.Write([]byte(normalized))
	return Path(digest.Sum64())
}

// String renders the hash as the decimal string used for archive file names.
func (p Path) String() string {
	return strconv.FormatUint(uint64(p), 10)
}

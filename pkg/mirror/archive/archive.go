// Package archive implements the on-disk, hash-indexed per-directory
// snapshot of the last point at which a path was observed identical across
// every replica. See SPEC_FULL.md §3-4 and §6 for the exact binary layout.
package archive

import (
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/golang/groupcache/lru"

	"github.com/arbor-sync/arbor/pkg/logging"
	"github.com/arbor-sync/arbor/pkg/mirror/hash"
)

// Version is the current on-disk archive format version. Archive files
// written with a different version are treated as absent (see the
// version-mismatch handling in File.Read and invariant I5).
const Version uint32 = 3

// defaultHandleCacheSize bounds how many locked ArchiveFile handles the
// Archive keeps open at once. The detection driver can recurse arbitrarily
// deep; without a bound, a large tree would exhaust file descriptors before
// ever closing a handle. Evicted handles are closed and unlocked exactly as
// if their scope had ended.
const defaultHandleCacheSize = 256

// Archive is the root of one synchronization run's persisted snapshot. It
// corresponds 1:1 with a directory on disk containing one file per directory
// that has, at some point, been observed identical across all replicas.
type Archive struct {
	directory string
	logger    *logging.Logger
	handles   *lru.Cache
}

// Open roots an archive at directory, creating the directory chain if it
// does not already exist.
func Open(directory string, logger *logging.Logger) (*Archive, error) {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		if err := os.MkdirAll(directory, 0700); err != nil {
			return nil, fmt.Errorf("unable to create archive directory: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("unable to stat archive directory: %w", err)
	}

	a := &Archive{
		directory: directory,
		logger:    logger,
		handles:   lru.New(defaultHandleCacheSize),
	}
	a.handles.OnEvicted = func(key lru.Key, value any) {
		if file, ok := value.(*File); ok {
			if err := file.closeHandle(); err != nil {
				a.logger.Warnf("unable to close evicted archive handle: %v", err)
			}
		}
	}
	return a, nil
}

// Close releases every open handle tracked by the archive's handle cache. It
// should be called once a synchronization run is finished with the archive.
func (a *Archive) Close() {
	a.handles.Clear()
}

// Hash exposes the path hashing function so that callers can stash hashes
// (e.g. when walking descendants without re-deriving them from a path).
func Hash(relativePath string) hash.Path {
	return hash.Of(relativePath)
}

// ForDirectory constructs a File representing the archive of directory's
// immediate contents. It does not touch disk.
func (a *Archive) ForDirectory(directory string) *File {
	return a.ForHashedDirectory(Hash(directory))
}

// ForHashedDirectory constructs a File from an already-hashed directory path.
func (a *Archive) ForHashedDirectory(directoryHash hash.Path) *File {
	if cached, ok := a.handles.Get(directoryHash); ok {
		return cached.(*File)
	}
	file := &File{
		archive: a,
		key:     directoryHash,
		path:    filepath.Join(a.directory, directoryHash.String()),
		logger:  a.logger.Sublogger(directoryHash.String()),
	}
	a.handles.Add(directoryHash, file)
	return file
}

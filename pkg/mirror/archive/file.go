package archive

import (
	"fmt"
	"io"
	"os"

	"github.com/arbor-sync/arbor/pkg/filesystem/locking"
	"github.com/arbor-sync/arbor/pkg/logging"
	"github.com/arbor-sync/arbor/pkg/mirror/hash"
)

// File abstracts over operations on a single archive file. Each File
// represents an entire directory's worth of entries in the replicas (the
// directory's immediate children), never the directory's own contents
// recursively.
type File struct {
	archive *Archive
	key     hash.Path
	path    string
	logger  *logging.Logger
	locker  *locking.Locker
}

// String renders the archive file's name for diagnostics, matching the
// "Archive(<hash>)" display form described in the specification.
func (f *File) String() string {
	return fmt.Sprintf("Archive(%s)", f.key)
}

// Read loads the archive entries for this directory. If the file does not
// exist, an empty Entries is returned. If the file exists but its version
// doesn't match Version, or its body is truncated, an empty Entries is
// returned after logging a warning rather than failing the caller. Any other
// decoding failure (such as an invalid kind discriminant) is returned as a
// *ReadError.
func (f *File) Read(replicas int) (*Entries, error) {
	if err := f.ensureOpen(); err != nil {
		if os.IsNotExist(err) {
			return newEntries(replicas), nil
		}
		return nil, fmt.Errorf("unable to open archive file: %w", err)
	}

	data, err := readAll(f.locker.File())
	if err != nil {
		return nil, &ReadError{Path: f.path, Cause: err}
	}
	if len(data) == 0 {
		return newEntries(replicas), nil
	}

	entries, err := decode(data, replicas)
	if err != nil {
		if ve, ok := err.(*versionMismatchError); ok {
			f.logger.Warnf("archive file has version %d, expected %d; treating as absent", ve.found, Version)
			return newEntries(replicas), nil
		}
		if err == errTruncated {
			f.logger.Warnf("archive file %s is truncated; treating as absent", f.path)
			return newEntries(replicas), nil
		}
		return nil, &ReadError{Path: f.path, Cause: err}
	}
	return entries, nil
}

// Write persists entries to disk. Entries whose every replica slot is Empty
// are pruned first (invariant I4); if nothing remains, the file is removed
// instead of being written.
func (f *File) Write(entries *Entries) error {
	entries.PruneEmpty()

	if len(entries.byHash) == 0 {
		if err := f.RemoveAll(); err != nil {
			return err
		}
		entries.dirty = false
		return nil
	}

	if err := f.ensureOpenForWrite(); err != nil {
		return &WriteError{Path: f.path, Cause: err}
	}

	data := encode(entries)
	handle := f.locker.File()
	if err := handle.Truncate(0); err != nil {
		return &WriteError{Path: f.path, Cause: err}
	}
	if _, err := handle.Seek(0, 0); err != nil {
		return &WriteError{Path: f.path, Cause: err}
	}
	if _, err := handle.Write(data); err != nil {
		return &WriteError{Path: f.path, Cause: err}
	}
	entries.dirty = false
	return nil
}

// RemoveAll deletes the archive file if it exists; it silently succeeds if
// it does not.
func (f *File) RemoveAll() error {
	if f.locker != nil {
		f.logger.Debugf("removing %s (entries empty)", f)
		if err := f.locker.Close(); err != nil {
			f.logger.Warnf("unable to close archive handle before removal: %v", err)
		}
		f.locker = nil
	}
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("unable to remove archive file: %w", err)
	}
	return nil
}

// ensureOpen opens (without creating) the file and acquires the exclusive
// lock, for reads. If the file does not exist, it returns an os.IsNotExist
// error so Read can treat that as "no prior state".
func (f *File) ensureOpen() error {
	if f.locker != nil {
		return nil
	}
	if _, err := os.Stat(f.path); err != nil {
		return err
	}
	return f.ensureOpenForWrite()
}

// ensureOpenForWrite opens (creating if necessary) the file and acquires the
// exclusive lock.
func (f *File) ensureOpenForWrite() error {
	if f.locker != nil {
		return nil
	}
	locker, err := locking.NewLocker(f.path, 0600)
	if err != nil {
		return err
	}
	f.logger.Tracef("acquiring exclusive lock for %s", f)
	if err := locker.Lock(); err != nil {
		locker.Close()
		return fmt.Errorf("unable to acquire lock: %w", err)
	}
	f.logger.Tracef("acquired lock for %s", f)
	f.locker = locker
	return nil
}

// closeHandle releases the lock and closes the underlying file descriptor,
// mirroring the end of the original Rust implementation's Drop impl. It is
// invoked directly when an archive file is explicitly removed, and by the
// archive's handle-cache eviction callback otherwise.
func (f *File) closeHandle() error {
	if f.locker == nil {
		return nil
	}
	locker := f.locker
	f.locker = nil
	return locker.Close()
}

func readAll(file *os.File) ([]byte, error) {
	if _, err := file.Seek(0, 0); err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	data := make([]byte, info.Size())
	if _, err := io.ReadFull(file, data); err != nil && err != io.EOF {
		return nil, err
	}
	return data, nil
}

// Package propagate implements the propagation engine: given a Difference
// and a chosen master replica, it mirrors the master's state onto every
// other replica and brings the archive back in sync with the result. See
// SPEC_FULL.md §4.8-4.9 for the transition table and archive-update
// algorithm this mirrors.
package propagate

import (
	"fmt"

	"github.com/arbor-sync/arbor/pkg/logging"
	"github.com/arbor-sync/arbor/pkg/mirror/archive"
	"github.com/arbor-sync/arbor/pkg/mirror/detect"
	"github.com/arbor-sync/arbor/pkg/mirror/entry"
	"github.com/arbor-sync/arbor/pkg/syncerrors"
	"github.com/arbor-sync/arbor/pkg/transfer"
)

// unimplementedSymlinkError is returned for any transition involving a
// symlink, on either the master or a replica side. Symlink propagation is an
// explicit non-goal; detection and reconciliation still treat symlinks as a
// first-class kind, but propagation refuses to act on them.
type unimplementedSymlinkError struct {
	Path string
}

func (e *unimplementedSymlinkError) Error() string {
	return fmt.Sprintf("propagation of symlinks is not implemented (at %s)", e.Path)
}

// Propagate mirrors the state of difference.CurrentState[master] onto every
// other replica named in difference, and brings the archive up to date with
// the result. It fails with syncerrors.PathModified if any non-master
// replica was touched since difference was computed.
func Propagate(
	difference detect.Difference,
	master int,
	arc *archive.Archive,
	options PropagationOptions,
	progress transfer.ProgressCallback,
	logger *logging.Logger,
) error {
	masterState := difference.CurrentState[master]
	masterAbs := difference.AbsolutePathForRoot(master)

	if masterState.Kind == entry.KindSymlink {
		return &unimplementedSymlinkError{Path: masterAbs}
	}

	for i := range difference.CurrentState {
		if i == master {
			continue
		}

		replicaAbs := difference.AbsolutePathForRoot(i)
		observed, err := entry.Observe(replicaAbs)
		if err != nil {
			return fmt.Errorf("unable to re-observe %s: %w", replicaAbs, err)
		}
		if observed != difference.CurrentState[i] {
			return &syncerrors.PathModified{Path: replicaAbs}
		}

		if observed.Kind == entry.KindSymlink {
			return &unimplementedSymlinkError{Path: replicaAbs}
		}

		logger.Debugf("propagating %s -> %s (%s to %s)", masterAbs, replicaAbs, masterState.Kind, observed.Kind)
		if err := applyTransition(masterAbs, replicaAbs, masterState.Kind, observed.Kind, options, progress); err != nil {
			return err
		}
	}

	return updateArchive(difference, master, arc, logger)
}

// applyTransition performs whatever removal and/or copy is necessary to turn
// a replica currently in state replicaKind into the master's state
// masterKind, keyed by the (master, replica) kind pair.
func applyTransition(
	masterAbs, replicaAbs string,
	masterKind, replicaKind entry.Kind,
	options PropagationOptions,
	progress transfer.ProgressCallback,
) error {
	if masterKind == entry.KindEmpty {
		return remove(replicaAbs, replicaKind, options)
	}

	// File-to-file is the one cell in the transition table that copies
	// straight over the existing replica rather than removing it first;
	// rsync -a replaces the file's contents in place. Every other
	// non-empty-replica cell (File/Directory, Directory/File,
	// Directory/Directory) clears the replica before copying.
	if replicaKind != entry.KindEmpty && !(masterKind == entry.KindFile && replicaKind == entry.KindFile) {
		if err := remove(replicaAbs, replicaKind, options); err != nil {
			return err
		}
	}

	switch masterKind {
	case entry.KindDirectory:
		return transfer.Directory(masterAbs, replicaAbs, progress)
	case entry.KindFile:
		return transfer.File(masterAbs, replicaAbs, progress)
	default:
		return &unimplementedSymlinkError{Path: masterAbs}
	}
}

// remove deletes whatever currently occupies replicaAbs, so the master's
// state can be copied into its place. A no-op if the replica is already
// empty.
func remove(replicaAbs string, replicaKind entry.Kind, options PropagationOptions) error {
	if replicaKind == entry.KindEmpty {
		return nil
	}
	if !options.ShouldRemove(replicaAbs) {
		return syncerrors.Cancelled
	}
	if replicaKind == entry.KindDirectory {
		return options.RemoveDirAll(replicaAbs)
	}
	return options.RemoveFile(replicaAbs)
}

// Package syncerrors defines the closed taxonomy of errors that can be
// surfaced by the synchronization pipeline (detection, reconciliation and
// propagation), mirroring the SyncError enum in the Rust prototype this
// package's callers were distilled from.
package syncerrors

import (
	"errors"
	"fmt"
)

// Cancelled is returned when a PropagationOptions implementation declines a
// removal mid-propagation.
var Cancelled = errors.New("operation cancelled")

// RootDoesntExist indicates that a configured replica root does not exist on
// disk.
type RootDoesntExist struct {
	Root string
}

func (e *RootDoesntExist) Error() string {
	return fmt.Sprintf("root does not exist: %s", e.Root)
}

// AbsolutePathProvided indicates that a search directory was given as an
// absolute path, which violates the contract that search directories are
// relative to every replica root.
type AbsolutePathProvided struct {
	Path string
}

func (e *AbsolutePathProvided) Error() string {
	return fmt.Sprintf("the absolute path %q is invalid (search directories must be relative to the replica root)", e.Path)
}

// PathModified indicates that a replica was mutated, between detection and
// propagation, at the path propagation was about to act on.
type PathModified struct {
	Path string
}

func (e *PathModified) Error() string {
	return fmt.Sprintf("the file/directory at %s was modified by another process", e.Path)
}

// CopyToolNotFound indicates that the external file-copy executable could not
// be located.
type CopyToolNotFound struct {
	Name string
}

func (e *CopyToolNotFound) Error() string {
	return fmt.Sprintf("copy tool not found: %s", e.Name)
}

// As reports whether err can be unwrapped into target, delegating to the
// standard library. It exists only so that callers importing this package
// don't also need an explicit import of "errors" for the common case.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is reports whether err matches target, delegating to the standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

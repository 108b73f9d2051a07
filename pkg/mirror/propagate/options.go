package propagate

import "os"

// PropagationOptions mediates destructive operations that propagation needs
// to perform (removing a replica's stale file or directory before copying
// the master's state over it). Callers outside the core package inject their
// own implementation to add confirmation prompts, dry-run modes, or audit
// logging; the core itself never decides whether a removal is acceptable.
type PropagationOptions interface {
	// ShouldRemove is consulted before any destructive removal. Returning
	// false aborts the propagation of that difference with syncerrors.Cancelled.
	ShouldRemove(absolutePath string) bool
	// RemoveFile deletes the file or symlink at absolutePath.
	RemoveFile(absolutePath string) error
	// RemoveDirAll recursively deletes the directory at absolutePath.
	RemoveDirAll(absolutePath string) error
}

// DefaultPropagationOptions removes unconditionally, using the standard
// library's filesystem primitives directly.
type DefaultPropagationOptions struct{}

// ShouldRemove always returns true.
func (DefaultPropagationOptions) ShouldRemove(string) bool { return true }

// RemoveFile implements PropagationOptions.
func (DefaultPropagationOptions) RemoveFile(absolutePath string) error {
	return os.Remove(absolutePath)
}

// RemoveDirAll implements PropagationOptions.
func (DefaultPropagationOptions) RemoveDirAll(absolutePath string) error {
	return os.RemoveAll(absolutePath)
}

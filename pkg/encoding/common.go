package encoding

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// strictReader wraps a byte slice as an io.Reader for use with yaml.Decoder.
func strictReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}

// writeFileAtomic writes data to path by creating a temporary file in the
// same directory and renaming it into place, so that readers never observe a
// partially written file.
func writeFileAtomic(path string, data []byte, permissions os.FileMode) error {
	temporary, err := os.CreateTemp(filepath.Dir(path), ".arbor-write-*")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	name := temporary.Name()

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		os.Remove(name)
		return fmt.Errorf("unable to write data to temporary file: %w", err)
	}
	if err := temporary.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("unable to close temporary file: %w", err)
	}
	if err := os.Chmod(name, permissions); err != nil {
		os.Remove(name)
		return fmt.Errorf("unable to set temporary file permissions: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("unable to rename temporary file into place: %w", err)
	}
	return nil
}

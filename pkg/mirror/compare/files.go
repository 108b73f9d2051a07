package compare

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// fileCompareBufferSize is the chunk size used by FilesEqual. The prototype
// this package is grounded on shelled out to the system "cmp" binary in its
// later drafts but kept an inlined, chunked byte comparison as a fallback
// (see compare_files.rs's commented-out file_contents_equal); the
// specification explicitly permits inlining, so Arbor does that rather than
// depending on an external "cmp" executable being on PATH.
const fileCompareBufferSize = 64 * 1024

// FilesEqual compares the byte contents of a and b, returning true iff they
// are identical (including both being empty).
func FilesEqual(a, b string) (bool, error) {
	fileA, err := os.Open(a)
	if err != nil {
		return false, fmt.Errorf("unable to open %s: %w", a, err)
	}
	defer fileA.Close()

	fileB, err := os.Open(b)
	if err != nil {
		return false, fmt.Errorf("unable to open %s: %w", b, err)
	}
	defer fileB.Close()

	bufferA := make([]byte, fileCompareBufferSize)
	bufferB := make([]byte, fileCompareBufferSize)

	for {
		readA, errA := io.ReadFull(fileA, bufferA)
		readB, errB := io.ReadFull(fileB, bufferB)

		if readA != readB || !bytes.Equal(bufferA[:readA], bufferB[:readB]) {
			return false, nil
		}

		aDone := errA == io.EOF || errA == io.ErrUnexpectedEOF
		bDone := errB == io.EOF || errB == io.ErrUnexpectedEOF

		if errA != nil && !aDone {
			return false, fmt.Errorf("unable to read %s: %w", a, errA)
		}
		if errB != nil && !bDone {
			return false, fmt.Errorf("unable to read %s: %w", b, errB)
		}

		if aDone || bDone {
			return aDone == bDone, nil
		}
	}
}

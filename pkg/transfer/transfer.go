// Package transfer wraps the external bulk file-copy tool that the
// propagation engine delegates all file/directory transfers to. The core
// never implements its own byte-level transfer or delta encoding (see
// SPEC_FULL.md §1 non-goals); this package only shells out and parses
// progress.
package transfer

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/arbor-sync/arbor/pkg/syncerrors"
)

// toolName is the external executable invoked for bulk transfers. It is
// expected to support the "-a --info=progress2 <source>[/] <dest>" contract
// described in SPEC_FULL.md §6.
const toolName = "rsync"

// Progress is one parsed line of transfer progress.
type Progress struct {
	// TransferredBytes is the running byte count transferred so far.
	TransferredBytes int64
	// Percent is the completion percentage of the current transfer.
	Percent uint8
	// Speed is the raw, tool-reported transfer speed (e.g. "1.23MB/s").
	Speed string
	// ElapsedTime is the raw, tool-reported elapsed time (e.g. "0:00:01").
	ElapsedTime string
	// Transferred is the number of files transferred so far, if reported.
	Transferred *uint32
	// ToCheck is the number of files remaining to check, if reported.
	ToCheck *ToCheck
}

// ToCheck is the "files left to check" figure the copy tool reports near the
// end of a transfer.
type ToCheck struct {
	Remaining uint32
	Total     uint32
}

// Human renders a progress line for logging, using humanized byte counts.
func (p Progress) Human() string {
	return fmt.Sprintf("%s transferred (%d%%, %s, elapsed %s)",
		humanize.Bytes(uint64(p.TransferredBytes)), p.Percent, p.Speed, p.ElapsedTime)
}

// ProgressCallback receives parsed transfer progress, synchronously, as the
// copy tool's stdout is read.
type ProgressCallback func(Progress)

// File transfers the regular file source to dest. No trailing separator is
// appended to source.
func File(source, dest string, progress ProgressCallback) error {
	return run(source, dest, false, progress)
}

// Directory transfers source (recursively) to dest. A trailing separator is
// appended to source, matching the copy tool's contract for recursive
// transfers.
func Directory(source, dest string, progress ProgressCallback) error {
	return run(source, dest, true, progress)
}

func run(source, dest string, isDirectory bool, progress ProgressCallback) error {
	sourceArg := source
	if isDirectory {
		sourceArg += string(os.PathSeparator)
	}

	path, err := exec.LookPath(toolName)
	if err != nil {
		return &syncerrors.CopyToolNotFound{Name: toolName}
	}

	command := exec.Command(path, "-a", "--info=progress2", sourceArg, dest)
	stdout, err := command.StdoutPipe()
	if err != nil {
		return fmt.Errorf("unable to attach to copy tool stdout: %w", err)
	}

	if err := command.Start(); err != nil {
		return fmt.Errorf("unable to start copy tool: %w", err)
	}

	if err := parseProgress(stdout, progress); err != nil {
		_ = command.Wait()
		return fmt.Errorf("unable to parse copy tool progress: %w", err)
	}

	if err := command.Wait(); err != nil {
		return fmt.Errorf("copy tool exited with error: %w", err)
	}

	return nil
}

// parseProgress reads the copy tool's stdout as a sequence of
// carriage-return-delimited records (a pull from a blocking read, never a
// push), invoking progress synchronously for each non-empty line.
func parseProgress(stdout interface{ Read([]byte) (int, error) }, progress ProgressCallback) error {
	scanner := bufio.NewScanner(stdout)
	scanner.Split(splitCarriageReturn)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parsed, ok := parseLine(line)
		if !ok {
			continue
		}
		if progress != nil {
			progress(parsed)
		}
	}
	return scanner.Err()
}

func splitCarriageReturn(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if index := indexByte(data, '\r'); index >= 0 {
		return index + 1, data[:index], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func indexByte(data []byte, b byte) int {
	for i, c := range data {
		if c == b {
			return i
		}
	}
	return -1
}

// parseLine parses one progress2-formatted record:
//
//	bytes_with_commas percent% speed elapsed [xfr#N, to-chk=rem/total)]
func parseLine(line string) (Progress, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Progress{}, false
	}

	bytesField := strings.ReplaceAll(fields[0], ",", "")
	transferredBytes, err := strconv.ParseInt(bytesField, 10, 64)
	if err != nil {
		return Progress{}, false
	}

	percentField := strings.TrimSuffix(fields[1], "%")
	percent, err := strconv.ParseUint(percentField, 10, 8)
	if err != nil {
		return Progress{}, false
	}

	result := Progress{
		TransferredBytes: transferredBytes,
		Percent:          uint8(percent),
		Speed:            fields[2],
		ElapsedTime:      fields[3],
	}

	for _, field := range fields[4:] {
		switch {
		case strings.HasPrefix(field, "xfr#"):
			trimmed := strings.TrimSuffix(strings.TrimPrefix(field, "xfr#"), ",")
			if n, err := strconv.ParseUint(trimmed, 10, 32); err == nil {
				value := uint32(n)
				result.Transferred = &value
			}
		case strings.HasPrefix(field, "to-chk=") || strings.HasPrefix(field, "to-check="):
			trimmed := field[strings.Index(field, "=")+1:]
			trimmed = strings.TrimSuffix(trimmed, ")")
			parts := strings.SplitN(trimmed, "/", 2)
			if len(parts) == 2 {
				remaining, errR := strconv.ParseUint(parts[0], 10, 32)
				total, errT := strconv.ParseUint(parts[1], 10, 32)
				if errR == nil && errT == nil {
					result.ToCheck = &ToCheck{Remaining: uint32(remaining), Total: uint32(total)}
				}
			}
		}
	}

	return result, true
}

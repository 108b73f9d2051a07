// Package common provides small facilities shared by every arbor subcommand:
// error/warning printing, a status-line printer for progress output, and the
// Mainify adapter that lets cobra entry points return an error. Grounded in
// the teacher project's cmd package.
package common

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Warning prints a warning message to standard error.
func Warning(message string) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
}

// Error prints an error message to standard error.
func Error(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}

// Fatal prints an error message to standard error and terminates the process
// with a non-zero exit code.
func Fatal(err error) {
	Error(err)
	os.Exit(1)
}

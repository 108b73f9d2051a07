// Package logging provides a small, hierarchical logger used throughout
// Arbor in place of ad hoc fmt.Println calls. It deliberately mirrors the
// shape of the teacher project's logging package: a nil-safe *Logger,
// dotted sublogger names, and colorized warnings/errors.
package logging

import (
	"log"
	"os"
)

func init() {
	// Set the global logger to use standard output, and drop the default
	// timestamp prefix since callers (the CLI) are expected to layer their
	// own framing on top if they want it.
	log.SetFlags(0)
	log.SetOutput(os.Stdout)
}

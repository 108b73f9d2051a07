package common

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// statusLineFormat truncates and right-pads messages to 80 characters, the
// same convention the teacher project uses, so a shorter new line always
// overwrites a longer previous one.
const statusLineFormat = "\r%-80.80s"

// IsTerminal reports whether standard output is attached to an interactive
// terminal, used to decide whether progress output should use carriage-return
// status lines or plain, newline-delimited log lines.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// StatusLinePrinter prints a dynamically updating status line when attached
// to a terminal, and falls back to ordinary newline-terminated lines
// otherwise (e.g. when output is redirected to a file or pipe).
type StatusLinePrinter struct {
	// UseStandardError routes output to standard error instead of standard
	// output.
	UseStandardError bool
	nonEmpty         bool
}

// Print prints (or overwrites) the status line.
func (p *StatusLinePrinter) Print(message string) {
	output := color.Output
	if p.UseStandardError {
		output = color.Error
	}
	if IsTerminal() {
		fmt.Fprintf(output, statusLineFormat, message)
	} else if message != "" {
		fmt.Fprintln(output, message)
	}
	p.nonEmpty = true
}

// Clear wipes any content currently on the status line.
func (p *StatusLinePrinter) Clear() {
	p.Print("")
	if IsTerminal() {
		output := os.Stdout
		if p.UseStandardError {
			output = os.Stderr
		}
		fmt.Fprint(output, "\r")
	}
	p.nonEmpty = false
}

// BreakIfNonEmpty prints a newline if the status line currently holds content.
func (p *StatusLinePrinter) BreakIfNonEmpty() {
	if p.nonEmpty {
		output := os.Stdout
		if p.UseStandardError {
			output = os.Stderr
		}
		fmt.Fprintln(output)
		p.nonEmpty = false
	}
}

// Package ignore implements the ignore predicate that the core synchronizer
// consults (but does not itself construct): prefix matches against literal
// paths, plus arbitrary regular expressions.
package ignore

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Ignore determines whether a relative path should be skipped during
// scanning, detection, and archiving.
type Ignore struct {
	// Paths are literal relative-path prefixes. A path is ignored if it
	// starts with any of these (a path segment boundary is not required;
	// "starts with" is the literal byte-prefix test named by the
	// specification's P9 property).
	Paths []string
	// Regexes are matched against the path's string form.
	Regexes []*regexp.Regexp
	// Globs are doublestar glob patterns ("**/*.log"), a configuration-layer
	// convenience on top of the core's raw prefix/regex predicate (see
	// CompileGlob and SPEC_FULL.md §4).
	Globs []string
}

// Nothing returns an Ignore value that ignores nothing.
func Nothing() Ignore {
	return Ignore{}
}

// IsIgnored reports whether relativePath should be ignored.
func (i Ignore) IsIgnored(relativePath string) bool {
	normalized := filepath.ToSlash(relativePath)
	for _, prefix := range i.Paths {
		if prefix != "" && strings.HasPrefix(normalized, filepath.ToSlash(prefix)) {
			return true
		}
	}
	for _, re := range i.Regexes {
		if re.MatchString(normalized) {
			return true
		}
	}
	for _, pattern := range i.Globs {
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

package ignore

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// CompileGlob validates pattern as a doublestar glob (supporting "**" for
// arbitrary-depth matches) for use in Ignore.Globs. It exists so the
// configuration loader can reject malformed patterns at load time instead of
// having them silently never match.
func CompileGlob(pattern string) (string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return "", fmt.Errorf("invalid glob pattern %q", pattern)
	}
	return pattern, nil
}

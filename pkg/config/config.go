// Package config loads the YAML configuration file that the arbor CLI reads
// replica roots, ignore rules and archive location from. It is deliberately
// separate from pkg/mirror/syncinfo.SyncInfo: SyncInfo is the validated,
// in-memory shape the core consumes, while Configuration is the on-disk,
// user-facing shape, complete with ignore patterns expressed as globs rather
// than compiled predicates.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/arbor-sync/arbor/pkg/encoding"
	"github.com/arbor-sync/arbor/pkg/ignore"
	"github.com/arbor-sync/arbor/pkg/mirror/syncinfo"
)

// Configuration is the on-disk, user-authored description of one
// synchronization pairing.
type Configuration struct {
	// Roots are the replica roots, in order. Environment variables of the
	// form ${VAR} are expanded against the process environment (and any
	// .env file found alongside the configuration) before use.
	Roots []string `yaml:"roots"`
	// ArchiveDirectory is where the archive for this pairing is persisted. If
	// empty, it defaults to a directory alongside the configuration file.
	ArchiveDirectory string `yaml:"archiveDirectory,omitempty"`
	// IgnorePaths are literal path prefixes to ignore.
	IgnorePaths []string `yaml:"ignorePaths,omitempty"`
	// IgnoreGlobs are doublestar glob patterns to ignore.
	IgnoreGlobs []string `yaml:"ignoreGlobs,omitempty"`
	// CompareFileContents controls whether the comparator byte-compares file
	// contents in addition to comparing sizes. Defaults to true if absent.
	CompareFileContents *bool `yaml:"compareFileContents,omitempty"`
}

// Load reads and validates the configuration file at path. If a .env file
// exists alongside it, its variables are loaded into the process environment
// first (without overriding variables already set) so that ${VAR}-style
// references in the configuration can be resolved.
func Load(path string) (*Configuration, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("unable to load %s: %w", envPath, err)
		}
	}

	var configuration Configuration
	if err := encoding.LoadAndUnmarshalYAML(path, &configuration); err != nil {
		return nil, fmt.Errorf("unable to load configuration: %w", err)
	}

	for i, root := range configuration.Roots {
		configuration.Roots[i] = os.ExpandEnv(root)
	}

	if configuration.ArchiveDirectory == "" {
		configuration.ArchiveDirectory = filepath.Join(filepath.Dir(path), ".arbor-archive")
	}

	if err := configuration.validate(); err != nil {
		return nil, err
	}

	for _, pattern := range configuration.IgnoreGlobs {
		if _, err := ignore.CompileGlob(pattern); err != nil {
			return nil, fmt.Errorf("invalid ignore glob %q: %w", pattern, err)
		}
	}

	return &configuration, nil
}

func (c *Configuration) validate() error {
	if len(c.Roots) < 2 {
		return fmt.Errorf("configuration must specify at least two replica roots")
	}
	for _, root := range c.Roots {
		if !filepath.IsAbs(root) {
			return fmt.Errorf("replica root %q must be an absolute path", root)
		}
	}
	return nil
}

// Save writes configuration to path as YAML.
func Save(path string, configuration *Configuration) error {
	return encoding.MarshalAndSaveYAML(path, configuration)
}

// SyncInfo converts the loaded configuration into the SyncInfo the core
// synchronizer consumes.
func (c *Configuration) SyncInfo() syncinfo.SyncInfo {
	info := syncinfo.New(c.Roots)
	info.Ignore = ignore.Ignore{
		Paths: c.IgnorePaths,
		Globs: c.IgnoreGlobs,
	}
	if c.CompareFileContents != nil {
		info.CompareFileContents = *c.CompareFileContents
	}
	return info
}

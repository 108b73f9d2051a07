// Package encoding provides small, focused helpers for loading and saving
// configuration and identifiers, grounded in the teacher project's
// pkg/encoding package.
package encoding

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadAndUnmarshal reads the file at path and invokes unmarshal (usually a
// closure) on its contents.
func LoadAndUnmarshal(path string, unmarshal func([]byte) error) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return fmt.Errorf("unable to load file: %w", err)
	}
	if err := unmarshal(data); err != nil {
		return fmt.Errorf("unable to unmarshal data: %w", err)
	}
	return nil
}

// LoadAndUnmarshalYAML loads data from the specified path and decodes it into
// the specified structure, rejecting unknown fields the way the teacher's
// UnmarshalStrict does.
func LoadAndUnmarshalYAML(path string, value any) error {
	return LoadAndUnmarshal(path, func(data []byte) error {
		decoder := yaml.NewDecoder(strictReader(data))
		decoder.KnownFields(true)
		return decoder.Decode(value)
	})
}

// MarshalAndSaveYAML marshals value as YAML and writes it atomically to path.
func MarshalAndSaveYAML(path string, value any) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("unable to marshal configuration: %w", err)
	}
	return writeFileAtomic(path, data, 0600)
}

// Package config provides YAML-based document loading with environment
// variable expansion. It is used both for the application configuration
// and for the crop input catalog.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by documents that validate themselves after decoding.
type Validator interface {
	Validate() error
}

// Load reads a YAML document from filename into target, expanding
// ${VAR} references from the environment first. When target implements
// Validator, validation runs as part of the load and a failure makes
// the whole load fail.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("failed to parse file %s: %w", filename, err)
	}

	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("validation failed for %s: %w", filename, err)
		}
	}

	return nil
}

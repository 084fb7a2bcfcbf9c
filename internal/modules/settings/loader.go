package settings

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRules reads a YAML rules file and overlays it on DefaultRules.
// Keys absent from the file keep their default values; unknown keys are rejected.
// An empty path returns the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	rules, err = ParseRules(data)
	if err != nil {
		return Rules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

// ParseRules decodes YAML onto DefaultRules and validates the result.
func ParseRules(data []byte) (Rules, error) {
	rules := DefaultRules()
	if len(bytes.TrimSpace(data)) == 0 {
		return rules, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rules); err != nil {
		return Rules{}, fmt.Errorf("failed to decode rules: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid rules: %w", err)
	}
	return rules, nil
}

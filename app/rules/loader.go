package rules

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// fileRules is the YAML shape of a rules override file. Required field
// lists replace the built-in ones per entry type; substitution pairs are
// appended after the built-in table so they run last.
type fileRules struct {
	Required      map[string][]string `yaml:"required"`
	Substitutions []Pair              `yaml:"substitutions"`
	Ligatures     []Pair              `yaml:"ligatures"`
}

// Loader handles loading of the rule set, optionally extended from a YAML file
type Loader struct {
	path string
}

// NewLoader creates a new rules loader. An empty path means built-in rules only.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load returns the active rule set for the run
func (l *Loader) Load() (*Set, error) {
	set := Defaults()

	if l.path == "" {
		return set, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var overrides fileRules
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", l.path, err)
	}

	if err := l.validate(&overrides); err != nil {
		return nil, fmt.Errorf("invalid rules file %s: %w", l.path, err)
	}

	for entryType, fields := range overrides.Required {
		set.Required[entryType] = fields
	}
	set.Substitutions = append(set.Substitutions, overrides.Substitutions...)
	set.Ligatures = append(set.Ligatures, overrides.Ligatures...)

	log.Printf("Loaded rules overrides from %s (%d required-field lists, %d substitutions)",
		l.path, len(overrides.Required), len(overrides.Substitutions))

	return set, nil
}

func (l *Loader) validate(overrides *fileRules) error {
	for entryType, fields := range overrides.Required {
		if len(fields) == 0 {
			return fmt.Errorf("required field list for %q must not be empty", entryType)
		}
	}
	for i, pair := range overrides.Substitutions {
		if pair.From == "" {
			return fmt.Errorf("substitution at index %d has an empty source", i)
		}
	}
	for i, pair := range overrides.Ligatures {
		if pair.From == "" {
			return fmt.Errorf("ligature at index %d has an empty source", i)
		}
	}
	return nil
}

package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a forest from a YAML file.
func LoadYAML(path string) (*RelationForest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading forest file: %w", err)
	}
	f := &RelationForest{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parsing forest: %w", err)
	}
	return f, nil
}

// WriteYAML writes the forest to a YAML file at the given path.
func (f *RelationForest) WriteYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling forest: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Summary returns a human-readable summary of the forest.
func (f *RelationForest) Summary() string {
	var totalFields, managed int
	for _, p := range f.Plans() {
		totalFields += len(p.Fields)
		for _, fd := range p.Fields {
			if fd.Widget.Kind != KindUnmanaged {
				managed++
			}
		}
	}

	return fmt.Sprintf(
		"Planned %d tables (%d referenced), %d fields, %d widgets configured",
		1+len(f.Referenced), len(f.Referenced), totalFields, managed,
	)
}

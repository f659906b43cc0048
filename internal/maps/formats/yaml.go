package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLMap represents the YAML structure for a map file.
type YAMLMap struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Layout   []string          `yaml:"layout"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML map file. The layout rows follow the text rules.
func ParseYAML(data []byte) (Map, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Map{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	m, err := parseRows(ym.Layout)
	if err != nil {
		return Map{}, err
	}
	m.ID = ym.ID
	m.Name = ym.Name
	m.Metadata = ym.Metadata
	return m, nil
}

// MarshalYAML converts a map to its YAML file form.
func MarshalYAML(m Map) ([]byte, error) {
	return yaml.Marshal(YAMLMap{
		ID:       m.ID,
		Name:     m.Name,
		Layout:   m.Layout(),
		Metadata: m.Metadata,
	})
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".map", ".yaml", ".yml"}
}

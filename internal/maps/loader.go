// Package maps loads patrol maps from disk.
// This package depends on core and patrol; neither depends on maps.
package maps

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/guard-patrol/internal/maps/formats"
)

// Map is a loaded map together with where it came from.
type Map struct {
	formats.Map
	FilePath string
}

// Skipped records a file that looked like a map but failed to load.
type Skipped struct {
	Path string
	Err  error
}

// Loader handles loading maps from a directory.
type Loader struct {
	Root    string
	Skipped []Skipped
}

// NewLoader creates a new map loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all map files.
// Invalid files are skipped and listed in l.Skipped.
// Returns maps sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Map, error) {
	var found []Map
	l.Skipped = nil

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		m, err := LoadFile(path)
		if err != nil {
			l.Skipped = append(l.Skipped, Skipped{Path: path, Err: err})
			return nil
		}
		found = append(found, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("maps: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].ID < found[j].ID
	})
	return found, nil
}

// LoadByID loads a specific map by ID.
func (l *Loader) LoadByID(id string) (Map, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Map{}, err
	}
	for _, m := range all {
		if m.ID == id {
			return m, nil
		}
	}
	return Map{}, fmt.Errorf("maps: map not found: %s", id)
}

// ListIDs returns all map IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, m := range all {
		ids[i] = m.ID
	}
	return ids, nil
}

// LoadFile loads a single map file. Text maps take their ID and name from
// the file name; YAML maps fall back to it when they do not set one.
func LoadFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Map{}, fmt.Errorf("maps: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Map{}, fmt.Errorf("maps: parsing file %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if parsed.ID == "" {
		parsed.ID = base
	}
	if parsed.Name == "" {
		parsed.Name = parsed.ID
	}
	return Map{Map: parsed, FilePath: path}, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Map, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".txt", ".map", "":
		return formats.ParseText(data)
	default:
		return formats.Map{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

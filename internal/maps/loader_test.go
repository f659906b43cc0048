package maps

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b-small.txt", "..\n^.\n")
	writeFile(t, dir, "nested/a-yaml.yaml", "id: a-yaml\nname: Nested\nlayout: [\"#.\", \".>\"]\n")
	writeFile(t, dir, "broken.txt", "...\n...\n")
	writeFile(t, dir, "notes.md", "# not a map")

	l := NewLoader(dir)
	all, err := l.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}

	if len(all) != 2 {
		t.Fatalf("expected 2 maps, got %d", len(all))
	}
	if all[0].ID != "a-yaml" || all[1].ID != "b-small" {
		t.Errorf("maps not sorted by ID: %s, %s", all[0].ID, all[1].ID)
	}
	if all[1].Name != "b-small" {
		t.Errorf("text map name should default to ID, got %q", all[1].Name)
	}
	if len(l.Skipped) != 1 || filepath.Base(l.Skipped[0].Path) != "broken.txt" {
		t.Errorf("expected broken.txt to be skipped, got %v", l.Skipped)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.txt", "^")

	l := NewLoader(dir)
	m, err := l.LoadByID("one")
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}
	if m.Height != 1 || m.Width != 1 {
		t.Errorf("unexpected size %dx%d", m.Height, m.Width)
	}

	if _, err := l.LoadByID("missing"); err == nil {
		t.Error("expected error for missing map")
	}

	ids, err := l.ListIDs()
	if err != nil || len(ids) != 1 || ids[0] != "one" {
		t.Errorf("ListIDs() = %v, %v", ids, err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

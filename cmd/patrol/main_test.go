package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/guard-patrol/internal/config"
	"github.com/vovakirdan/guard-patrol/internal/storage"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"loud", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := newLogger(config.LogConfig{Level: tt.level, Prefix: "test"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("newLogger(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
			if !tt.wantErr && l == nil {
				t.Error("expected a logger")
			}
		})
	}
}

func TestResolveMap(t *testing.T) {
	dir := t.TempDir()
	layout := "..#\n.^.\n...\n"
	path := filepath.Join(dir, "tiny.txt")
	if err := os.WriteFile(path, []byte(layout), 0o644); err != nil {
		t.Fatalf("failed to write map: %v", err)
	}

	cfg = config.DefaultConfig()
	cfg.Server.MapsDir = dir

	byPath, err := resolveMap(path)
	if err != nil {
		t.Fatalf("resolveMap(path) failed: %v", err)
	}
	byID, err := resolveMap("tiny")
	if err != nil {
		t.Fatalf("resolveMap(id) failed: %v", err)
	}
	if byPath.Hash() != byID.Hash() {
		t.Error("expected path and ID to resolve to the same layout")
	}

	if _, err := resolveMap("missing"); err == nil {
		t.Error("expected error for unknown map")
	}
}

func TestRecordingEnabled(t *testing.T) {
	tests := []struct {
		name      string
		requested bool
		enabled   bool
		expected  bool
	}{
		{"not requested", false, true, false},
		{"requested and enabled", true, true, true},
		{"requested but disabled in config", true, false, false},
	}

	var err error
	logger, err = newLogger(config.LogConfig{Level: "error"})
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg = config.DefaultConfig()
			cfg.Storage.Enabled = tt.enabled
			if got := recordingEnabled(tt.requested); got != tt.expected {
				t.Errorf("recordingEnabled(%v) with enabled=%v = %v, expected %v",
					tt.requested, tt.enabled, got, tt.expected)
			}
		})
	}
}

func TestPrintRunLoopedMap(t *testing.T) {
	var buf bytes.Buffer
	printRun(&buf, storage.RunRecord{ID: "r1", MapID: "box", Visited: 6, Looped: true})

	out := buf.String()
	if !strings.Contains(out, "placements: -") {
		t.Errorf("expected placements to be marked not applicable:\n%s", out)
	}
	if !strings.Contains(out, "never leaves") {
		t.Errorf("expected looping note:\n%s", out)
	}

	if got := placementsLabel(storage.RunRecord{Placements: 6}); got != "6" {
		t.Errorf("placementsLabel() = %q, expected 6", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := &Config{Version: "1.0", Operator: "maj.kovacs"}
	if err := Save(tmpDir, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Operator != "maj.kovacs" {
		t.Errorf("Operator = %q, want maj.kovacs", loaded.Operator)
	}
	if loaded.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", loaded.Version)
	}
}

func TestLoadMissingConfig(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := Load(tmpDir); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	tmpDir := t.TempDir()
	depotDir := filepath.Join(tmpDir, ".depot")
	if err := os.MkdirAll(depotDir, 0755); err != nil {
		t.Fatalf("failed to create .depot dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(depotDir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

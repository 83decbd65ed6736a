package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), ".ocompiler.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Source != "" || p.OutputDir != defaultOutputDir {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestLoad_ReadsYAMLFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ocompiler.yaml")
	yaml := "source: main.o\noutput_dir: build\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Source != "main.o" || p.OutputDir != "build" {
		t.Fatalf("unexpected project: %+v", p)
	}
}

func TestLoad_EmptyOutputDirFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ocompiler.yaml")
	if err := os.WriteFile(path, []byte("source: main.o\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.OutputDir != defaultOutputDir {
		t.Fatalf("expected default output dir, got %q", p.OutputDir)
	}
}

func TestLoad_MalformedYAMLReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ocompiler.yaml")
	if err := os.WriteFile(path, []byte("source: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

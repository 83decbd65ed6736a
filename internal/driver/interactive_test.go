package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestChooseInputSource_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.o")
	if err := os.WriteFile(path, []byte("class A is end"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	var stdout bytes.Buffer
	source, exit, err := ChooseInputSource(strings.NewReader("1\n"), &stdout, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exit {
		t.Fatal("did not expect exit")
	}
	if source != "class A is end" {
		t.Fatalf("unexpected source: %q", source)
	}
}

func TestChooseInputSource_Console(t *testing.T) {
	var stdout bytes.Buffer
	input := "2\nclass A is end\nvar x: Integer\n\n"
	source, exit, err := ChooseInputSource(strings.NewReader(input), &stdout, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exit {
		t.Fatal("did not expect exit")
	}
	want := "class A is end\nvar x: Integer"
	if source != want {
		t.Fatalf("unexpected source: %q, want %q", source, want)
	}
}

func TestChooseInputSource_UnknownChoiceExits(t *testing.T) {
	var stdout bytes.Buffer
	_, exit, err := ChooseInputSource(strings.NewReader("9\n"), &stdout, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exit {
		t.Fatal("expected exit for an unrecognized choice")
	}
	if !strings.Contains(stdout.String(), "No input source selected") {
		t.Errorf("expected exit hint printed, got: %q", stdout.String())
	}
}

func TestChooseInputSource_FileMissingPropagatesError(t *testing.T) {
	var stdout bytes.Buffer
	_, _, err := ChooseInputSource(strings.NewReader("1\n"), &stdout, filepath.Join(t.TempDir(), "missing.o"))
	if err == nil {
		t.Fatal("expected an error reading a missing configured file")
	}
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// withTempWorkdir chdirs into a fresh temp directory for the duration of
// the test, restoring the original working directory afterward, matching
// how compile looks for .ocompiler.yaml relative to the process cwd.
func withTempWorkdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func TestCompile_WritesOutputForGivenFile(t *testing.T) {
	dir := withTempWorkdir(t)

	oldOutputDir, oldInteractive, oldDiagnose := outputDir, interactive, diagnoseFlags
	defer func() { outputDir, interactive, diagnoseFlags = oldOutputDir, oldInteractive, oldDiagnose }()
	outputDir, interactive, diagnoseFlags = "", false, false

	src := "class Program is\n  method main() is\n  end\nend"
	srcPath := filepath.Join(dir, "Program.o")
	if err := os.WriteFile(srcPath, []byte(src), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := compile(compileCmd, []string{srcPath}); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out", "Program.j"))
	if err != nil {
		t.Fatalf("expected out/Program.j: %v", err)
	}
	if !strings.Contains(string(data), ".class public Program") {
		t.Errorf("unexpected generated file: %q", data)
	}
}

func TestCompile_ProjectFileSuppliesDefaults(t *testing.T) {
	dir := withTempWorkdir(t)

	oldOutputDir, oldInteractive, oldDiagnose := outputDir, interactive, diagnoseFlags
	defer func() { outputDir, interactive, diagnoseFlags = oldOutputDir, oldInteractive, oldDiagnose }()
	outputDir, interactive, diagnoseFlags = "", false, false

	src := "class Program is end"
	if err := os.WriteFile(filepath.Join(dir, "Program.o"), []byte(src), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	project := "source: Program.o\noutput_dir: build\n"
	if err := os.WriteFile(filepath.Join(dir, ".ocompiler.yaml"), []byte(project), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := compile(compileCmd, nil); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "build", "Program.j")); err != nil {
		t.Fatalf("expected build/Program.j from project defaults: %v", err)
	}
}

func TestCompile_NoFileAndNoProjectFails(t *testing.T) {
	withTempWorkdir(t)

	oldOutputDir, oldInteractive, oldDiagnose := outputDir, interactive, diagnoseFlags
	defer func() { outputDir, interactive, diagnoseFlags = oldOutputDir, oldInteractive, oldDiagnose }()
	outputDir, interactive, diagnoseFlags = "", false, false

	if err := compile(compileCmd, nil); err == nil {
		t.Fatal("expected an error when no input file is given and no project file exists")
	}
}

func TestCompile_VerboseFlagDumpsDiagnostics(t *testing.T) {
	dir := withTempWorkdir(t)

	oldOutputDir, oldInteractive, oldDiagnose := outputDir, interactive, diagnoseFlags
	defer func() { outputDir, interactive, diagnoseFlags = oldOutputDir, oldInteractive, oldDiagnose }()
	outputDir, interactive, diagnoseFlags = "", false, true

	srcPath := filepath.Join(dir, "Program.o")
	if err := os.WriteFile(srcPath, []byte("class Program is end"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	err := compile(compileCmd, []string{srcPath})
	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)

	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if !strings.Contains(buf.String(), "--- tokens ---") {
		t.Errorf("expected token dump with --verbose, got: %q", buf.String())
	}
}

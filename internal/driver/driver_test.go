package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ocompiler/ocompilerc/pkg/token"
)

func TestReadSource_StripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.o")
	if err := os.WriteFile(path, []byte(bom+"class A is end"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	source, err := ReadSource(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "class A is end" {
		t.Fatalf("expected BOM stripped, got %q", source)
	}
}

func TestReadSource_MissingFile(t *testing.T) {
	if _, err := ReadSource(filepath.Join(t.TempDir(), "missing.o")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLex_IncludesTrailingEOF(t *testing.T) {
	tokens := Lex(`class A is end`)
	if tokens[len(tokens)-1].Kind != token.EOF {
		t.Fatalf("expected last token to be EOF, got %v", tokens[len(tokens)-1])
	}
}

func TestCheckLexErrors_ReportsFirstErrorToken(t *testing.T) {
	tokens := Lex(`@@@`)
	err := CheckLexErrors(tokens, "@@@", "test.o")
	if err == nil {
		t.Fatal("expected a lex error")
	}
	if !strings.Contains(err.Error(), "test.o") {
		t.Errorf("expected error to mention the file name, got: %v", err)
	}
}

func TestCheckLexErrors_NoErrorsWhenClean(t *testing.T) {
	tokens := Lex(`class A is end`)
	if err := CheckLexErrors(tokens, "class A is end", "test.o"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestParse_WrapsFailureAsCompilerError(t *testing.T) {
	tokens := Lex(`class A is var end`)
	_, err := Parse(tokens, `class A is var end`, "test.o")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), "test.o") {
		t.Errorf("expected wrapped error to include file context, got: %v", err)
	}
}

func TestAnalyze_ReportsSemanticErrors(t *testing.T) {
	src := `class A extends Ghost is end
class Program is end`
	tokens := Lex(src)
	program, err := Parse(tokens, src, "test.o")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if _, err := Analyze(program, src, "test.o"); err == nil {
		t.Fatal("expected a semantic error for an unknown parent class")
	}
}

func TestCompile_EndToEndWritesOutputFiles(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	src := `
class Program is
  method main() is
  end
end`
	err := Compile(Options{Source: src, File: "test.o", OutDir: outDir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "Program.j"))
	if err != nil {
		t.Fatalf("expected Program.j to be written: %v", err)
	}
	if !strings.Contains(string(data), ".class public Program") {
		t.Errorf("unexpected generated file contents: %q", data)
	}
}

func TestCompile_AbortsOnFirstLexError(t *testing.T) {
	outDir := t.TempDir()
	err := Compile(Options{Source: `@@@`, File: "test.o", OutDir: filepath.Join(outDir, "out")})
	if err == nil {
		t.Fatal("expected an error for an unrecognized character")
	}
	if _, statErr := os.Stat(filepath.Join(outDir, "out")); !os.IsNotExist(statErr) {
		t.Error("expected no output directory to be created when lexing fails")
	}
}

func TestWriteOutputs_CreatesDirAndFiles(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "nested", "out")
	files := map[string]string{"A.j": ".class public A\n"}
	if err := WriteOutputs(outDir, files); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "A.j"))
	if err != nil {
		t.Fatalf("expected A.j to exist: %v", err)
	}
	if string(data) != files["A.j"] {
		t.Errorf("unexpected contents: %q", data)
	}
}

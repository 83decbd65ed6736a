// Package driver orchestrates one compilation end to end: lex, parse,
// analyze, generate, write — the single batch pipeline spec.md §5
// describes, grounded on the teacher's cmd/dwscript/cmd.compileScript
// function but split out of the cobra command so cmd/ocompilerc's
// subcommands can each reuse a stage of it.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ocompiler/ocompilerc/internal/ast"
	"github.com/ocompiler/ocompilerc/internal/cerrors"
	"github.com/ocompiler/ocompilerc/internal/codegen"
	"github.com/ocompiler/ocompilerc/internal/lexer"
	"github.com/ocompiler/ocompilerc/internal/parser"
	"github.com/ocompiler/ocompilerc/internal/semantic"
	"github.com/ocompiler/ocompilerc/pkg/token"
)

const bom = "\uFEFF"

// ReadSource reads path as UTF-8 and strips a leading byte-order mark
// (spec.md §6 "Inputs").
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return strings.TrimPrefix(string(data), bom), nil
}

// Lex runs the lexer to completion, returning every token including the
// trailing EOF. It does not itself fail on ERROR tokens — spec.md §7
// treats those as "optionally fatal at the driver" — CheckLexErrors does
// that check explicitly so callers can choose to skip it (e.g. the `lex`
// subcommand, which prints ERROR tokens rather than aborting on them).
func Lex(source string) []token.Token {
	l := lexer.New(source)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

// CheckLexErrors reports the first ERROR token found, if any.
func CheckLexErrors(tokens []token.Token, source, file string) error {
	for _, tok := range tokens {
		if tok.Kind == token.ERROR {
			return cerrors.New(tok.Line, tok.ErrorMessage, source, file)
		}
	}
	return nil
}

// Parse runs the parser over a full token stream, wrapping any failure as
// a *cerrors.CompilerError so every phase reports through the same shape.
func Parse(tokens []token.Token, source, file string) (*ast.Program, error) {
	p := parser.New(tokens)
	program, err := p.ParseProgram()
	if err != nil {
		line := 0
		if le, ok := err.(interface{ Line() int }); ok {
			line = le.Line()
		}
		return nil, cerrors.New(line, err.Error(), source, file)
	}
	return program, nil
}

// Analyze runs the six semantic phases. If the phase that stopped the run
// left errors in the context, it returns all of them rendered together by
// cerrors.FormatErrors as a single error (spec.md §4.4, §7).
func Analyze(program *ast.Program, source, file string) (*semantic.Result, error) {
	analyzer := semantic.NewAnalyzer()
	result, ctx := analyzer.Analyze(program, source, file)
	if ctx.HasErrors() {
		return nil, fmt.Errorf("%s", cerrors.FormatErrors(ctx.Errors))
	}
	return result, nil
}

// Generate runs code generation over an analyzed program.
func Generate(result *semantic.Result) (map[string]string, error) {
	gen := codegen.New(result.Classes)
	return gen.Generate()
}

// WriteOutputs creates outDir if needed and writes every generated file
// into it (spec.md §6 "create the directory if it does not exist").
func WriteOutputs(outDir string, files map[string]string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}
	for name, text := range files {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

// Options configures one end-to-end Compile run.
type Options struct {
	Source   string
	File     string
	OutDir   string
	Diagnose bool // print token stream, class table, and AST dumps to stdout
}

// Compile runs the full pipeline: lex, parse, analyze (which folds in
// optimization as its final phase), generate, write. It returns the first
// error encountered; no phase runs after one fails (spec.md §5).
func Compile(opts Options) error {
	tokens := Lex(opts.Source)
	if opts.Diagnose {
		dumpTokens(tokens)
	}
	if err := CheckLexErrors(tokens, opts.Source, opts.File); err != nil {
		return err
	}

	program, err := Parse(tokens, opts.Source, opts.File)
	if err != nil {
		return err
	}
	if opts.Diagnose {
		fmt.Println("--- AST (pre-optimization) ---")
		fmt.Println(program.String())
	}

	result, err := Analyze(program, opts.Source, opts.File)
	if err != nil {
		return err
	}
	if opts.Diagnose {
		fmt.Println("--- class table ---")
		fmt.Println(result.Classes.String())
		fmt.Println("--- AST (optimized) ---")
		fmt.Println(result.Program.String())
	}

	files, err := Generate(result)
	if err != nil {
		return err
	}
	return WriteOutputs(opts.OutDir, files)
}

func dumpTokens(tokens []token.Token) {
	fmt.Println("--- tokens ---")
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			fmt.Println("EOF")
			break
		}
		fmt.Printf("%-14s %q @%d\n", tok.Kind, tok.Text, tok.Line)
	}
}

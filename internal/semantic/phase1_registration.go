package semantic

import "github.com/ocompiler/ocompilerc/internal/ast"

// ClassRegistrationPass is phase 1 (spec.md §4.4): allocate a ClassSymbol
// for every ClassDecl and require a class named Program exist.
type ClassRegistrationPass struct{}

func (ClassRegistrationPass) Name() string { return "class-registration" }

func (ClassRegistrationPass) Run(program *ast.Program, ctx *Context) error {
	for _, decl := range program.Classes {
		sym := NewClassSymbol(decl.Name, decl)
		if !ctx.Classes.Declare(sym) {
			ctx.AddError(decl.Line, "duplicate class %q", decl.Name)
		}
	}
	if ctx.HasErrors() {
		return nil
	}
	if _, ok := ctx.Classes.Lookup("Program"); !ok {
		ctx.AddError(0, "missing required class %q", "Program")
	}
	return nil
}

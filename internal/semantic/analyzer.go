package semantic

import "github.com/ocompiler/ocompilerc/internal/ast"

// Analyzer runs the six ordered phases of spec.md §4.4 over a parsed
// Program, grounded on the teacher's internal/semantic.Analyzer but
// reorganized around the explicit Pass/PassManager architecture (the
// teacher's pass.go) rather than one large method doing every phase
// inline — O's six fixed phases map directly onto six Pass values.
type Analyzer struct {
	manager *PassManager
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		manager: NewPassManager(
			ClassRegistrationPass{},
			InheritanceResolutionPass{},
			MemberDeclarationPass{},
			NameResolutionPass{},
			TypeCheckingPass{},
			OptimizationPass{},
		),
	}
}

// Result is what the code generator consumes: the populated class table
// and the program, optimized in place by the final phase.
type Result struct {
	Program *ast.Program
	Classes *ClassTable
}

// Analyze runs every phase in order against program, stopping early if a
// phase leaves errors in the context (spec.md §5: "Ordering among phases
// is strictly sequential ... must not be reordered").
func (a *Analyzer) Analyze(program *ast.Program, source, file string) (*Result, *Context) {
	ctx := NewContext(source, file)
	if err := a.manager.RunAll(program, ctx); err != nil {
		ctx.AddError(0, "internal analyzer error: %s", err)
		return nil, ctx
	}
	if ctx.HasErrors() {
		return nil, ctx
	}
	return &Result{Program: program, Classes: ctx.Classes}, ctx
}

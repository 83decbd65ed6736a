package semantic

import "github.com/ocompiler/ocompilerc/internal/ast"

// Pass is one of the six ordered analysis phases (spec.md §4.4). Passes
// must run in the fixed order registered by NewAnalyzer: later phases
// depend on state earlier phases left in *Context, and phase 6 additionally
// rewrites method and constructor bodies in place.
type Pass interface {
	Name() string
	Run(program *ast.Program, ctx *Context) error
}

// PassManager runs passes in registration order, stopping as soon as a
// phase leaves fatal errors in the context — mirroring the teacher's
// PassManager.RunAll (internal/semantic/pass.go) but without the
// warning/hint distinction: every error recorded here is fatal, per
// spec.md §7 ("every error aborts the compilation immediately").
type PassManager struct {
	passes []Pass
}

func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

func (pm *PassManager) RunAll(program *ast.Program, ctx *Context) error {
	for _, pass := range pm.passes {
		if err := pass.Run(program, ctx); err != nil {
			return err
		}
		if ctx.HasErrors() {
			break
		}
	}
	return nil
}

package semantic

import (
	"fmt"

	"github.com/ocompiler/ocompilerc/internal/cerrors"
)

// Context is the shared state threaded through all six passes, grounded
// on the teacher's PassContext (internal/semantic/pass_context.go) but
// trimmed to what O actually needs: one class table, one "current class"
// cursor, and a flat per-method symbol table rather than a full scope
// stack — O has no nested lexical scoping beyond the single flat method
// table spec.md §4.4 phase 3 describes ("all locals share one flat table").
type Context struct {
	Classes        *ClassTable
	CurrentClass   *ClassSymbol
	CurrentMethod  *MethodSymbol
	Source         string
	File           string
	Errors         []*cerrors.CompilerError
}

func NewContext(source, file string) *Context {
	return &Context{Classes: NewClassTable(), Source: source, File: file}
}

func (ctx *Context) AddError(line int, format string, args ...any) {
	ctx.Errors = append(ctx.Errors, cerrors.New(line, fmt.Sprintf(format, args...), ctx.Source, ctx.File))
}

func (ctx *Context) HasErrors() bool { return len(ctx.Errors) > 0 }

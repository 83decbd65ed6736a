package semantic

import "github.com/ocompiler/ocompilerc/internal/ast"

// builtinFreeFunctions is the set of receiver-less calls that bypass
// class-method resolution entirely (spec.md §4.4 phase 4).
var builtinFreeFunctions = map[string]bool{"print": true}

// NameResolutionPass is phase 4 (spec.md §4.4): verify every identifier,
// assignment target, and receiver-less call resolves to a known
// local/param, field, or method.
type NameResolutionPass struct{}

func (NameResolutionPass) Name() string { return "name-resolution" }

func (p NameResolutionPass) Run(program *ast.Program, ctx *Context) error {
	for _, decl := range program.Classes {
		sym, ok := ctx.Classes.Lookup(decl.Name)
		if !ok {
			continue
		}
		ctx.CurrentClass = sym
		for _, member := range decl.Members {
			m, ok := member.(*ast.MethodDecl)
			if !ok || m.Body == nil {
				continue
			}
			methodSym := findOwnMethod(sym, m)
			if methodSym == nil {
				continue
			}
			ctx.CurrentMethod = methodSym
			p.walkBlock(m.Body, ctx)
			ctx.CurrentMethod = nil
		}
		for _, ctor := range sym.Constructors {
			if ctor.Decl.Body == nil {
				continue
			}
			ctx.CurrentMethod = ctor.Method
			p.walkBlock(ctor.Decl.Body, ctx)
			ctx.CurrentMethod = nil
		}
	}
	ctx.CurrentClass = nil
	return nil
}

func findOwnMethod(owner *ClassSymbol, decl *ast.MethodDecl) *MethodSymbol {
	for _, cand := range owner.Overloads(decl.Name) {
		if cand.Decl == decl {
			return cand
		}
	}
	return nil
}

func (p NameResolutionPass) walkBlock(b *ast.Block, ctx *Context) {
	for _, stmt := range b.Stmts {
		p.walkStmt(stmt, ctx)
	}
}

func (p NameResolutionPass) walkStmt(stmt ast.Stmt, ctx *Context) {
	switch s := stmt.(type) {
	case *ast.Assignment:
		p.resolveTarget(s.Target, ctx)
		p.walkExpr(s.Expr, ctx)
	case *ast.While:
		p.walkExpr(s.Cond, ctx)
		p.walkBlock(s.Body, ctx)
	case *ast.If:
		p.walkExpr(s.Cond, ctx)
		p.walkBlock(s.Then, ctx)
		if s.Else != nil {
			p.walkBlock(s.Else, ctx)
		}
	case *ast.Return:
		if s.Expr != nil {
			p.walkExpr(s.Expr, ctx)
		}
	case *ast.ExprStmt:
		p.walkExpr(s.Expr, ctx)
	}
}

// resolveTarget checks an Assignment.Target, which is either a plain
// Identifier (local/param/field) or a FieldAccess rooted at This
// (the `this.<name>` form — resolves only against the field chain).
func (p NameResolutionPass) resolveTarget(target ast.Expr, ctx *Context) {
	switch t := target.(type) {
	case *ast.Identifier:
		p.resolveName(t.Name, t.LineNo(), ctx)
	case *ast.FieldAccess:
		if _, isThis := t.Receiver.(*ast.This); isThis || t.Receiver == nil {
			if _, _, ok := ctx.CurrentClass.FindField(t.Name); !ok {
				ctx.AddError(t.LineNo(), "unknown field %q", t.Name)
			}
		} else {
			p.walkExpr(t.Receiver, ctx)
		}
	}
}

func (p NameResolutionPass) resolveName(name string, line int, ctx *Context) {
	if _, _, ok := ctx.CurrentMethod.Table.Lookup(name); ok {
		return
	}
	if _, _, ok := ctx.CurrentClass.FindField(name); ok {
		return
	}
	ctx.AddError(line, "unknown identifier %q", name)
}

func (p NameResolutionPass) walkExpr(expr ast.Expr, ctx *Context) {
	switch e := expr.(type) {
	case *ast.Identifier:
		p.resolveName(e.Name, e.LineNo(), ctx)

	case *ast.FieldAccess:
		if e.Receiver == nil {
			if _, _, ok := ctx.CurrentClass.FindField(e.Name); !ok {
				ctx.AddError(e.LineNo(), "unknown field %q", e.Name)
			}
			return
		}
		p.walkExpr(e.Receiver, ctx)

	case *ast.Call:
		if e.Receiver == nil {
			if !builtinFreeFunctions[e.Method] {
				if _, ok := ctx.CurrentClass.FindMethod(e.Method); !ok {
					ctx.AddError(e.LineNo(), "unknown method %q", e.Method)
				}
			}
		} else {
			p.walkExpr(e.Receiver, ctx)
		}
		for _, arg := range e.Args {
			p.walkExpr(arg, ctx)
		}

	case *ast.This, *ast.IntLit, *ast.RealLit, *ast.BoolLit, *ast.ClassNameExpr:
		// no names to resolve
	}
}

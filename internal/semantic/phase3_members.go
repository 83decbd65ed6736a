package semantic

import (
	"github.com/ocompiler/ocompilerc/internal/ast"
	"github.com/ocompiler/ocompilerc/internal/types"
)

// MemberDeclarationPass is phase 3 (spec.md §4.4): declare fields and
// methods into each class's symbol table, and seed every method's flat
// MethodTable with its parameters and all locals found anywhere in its
// body (including nested if/while blocks, which share one table).
type MemberDeclarationPass struct{}

func (MemberDeclarationPass) Name() string { return "member-declaration" }

func (p MemberDeclarationPass) Run(program *ast.Program, ctx *Context) error {
	for _, decl := range program.Classes {
		sym, ok := ctx.Classes.Lookup(decl.Name)
		if !ok {
			continue
		}
		ctx.CurrentClass = sym
		for _, member := range decl.Members {
			switch m := member.(type) {
			case *ast.VarDecl:
				p.declareField(m, sym, ctx)
			case *ast.MethodDecl:
				p.declareMethod(m, sym, ctx)
			case *ast.ConstructorDecl:
				sym.Constructors = append(sym.Constructors, p.declareConstructor(m, sym, ctx))
			}
		}
	}
	ctx.CurrentClass = nil
	return nil
}

func (MemberDeclarationPass) declareField(v *ast.VarDecl, owner *ClassSymbol, ctx *Context) {
	typ, _ := resolveType(v.Type, ctx, v.Line)
	if !owner.DeclareField(v.Name, typ, v.Init) {
		ctx.AddError(v.Line, "duplicate field %q in class %q", v.Name, owner.Name)
	}
}

func (p MemberDeclarationPass) declareMethod(m *ast.MethodDecl, owner *ClassSymbol, ctx *Context) {
	paramNames := map[string]bool{}
	var params []VarSymbol
	for _, param := range m.Params {
		if paramNames[param.Name] {
			ctx.AddError(m.Line, "duplicate parameter %q in method %q", param.Name, m.Name)
			continue
		}
		paramNames[param.Name] = true
		typ, _ := resolveType(param.Type, ctx, m.Line)
		params = append(params, VarSymbol{Name: param.Name, Type: typ})
	}

	var returnType types.Type = types.Void
	if m.ReturnType != nil {
		returnType, _ = resolveType(m.ReturnType, ctx, m.Line)
	}

	if sameSignatureExists(owner.Overloads(m.Name), params) {
		ctx.AddError(m.Line, "method %q redeclares an overload with the same parameter types", m.Name)
		return
	}

	if owner.Parent != nil {
		p.checkOverride(m, owner, params, ctx)
	}

	sym := &MethodSymbol{Name: m.Name, Params: params, ReturnType: returnType, Owner: owner, Decl: m}
	table := NewMethodTable()
	for _, param := range params {
		table.Declare(param.Name, param.Type)
	}
	sym.Table = table
	owner.AddMethod(sym)

	if m.Body != nil {
		ctx.CurrentMethod = sym
		registerLocalsInBlock(m.Body, table, ctx)
		ctx.CurrentMethod = nil
	}
}

// checkOverride requires an overriding method's return type be assignable
// to the overridden one's (spec.md §4.4 phase 3).
func (MemberDeclarationPass) checkOverride(m *ast.MethodDecl, owner *ClassSymbol, params []VarSymbol, ctx *Context) {
	for parent := owner.Parent; parent != nil; parent = parent.Parent {
		for _, candidate := range parent.Overloads(m.Name) {
			if !sameParamTypes(candidate.Params, params) {
				continue
			}
			if m.ReturnType != nil && candidate.ReturnType != nil {
				rt, _ := resolveType(m.ReturnType, ctx, m.Line)
				if !Assignable(rt, candidate.ReturnType, ctx.Classes) {
					ctx.AddError(m.Line, "overriding method %q has a return type incompatible with %q", m.Name, parent.Name)
				}
			}
			return
		}
	}
}

func sameSignatureExists(existing []*MethodSymbol, params []VarSymbol) bool {
	for _, e := range existing {
		if sameParamTypes(e.Params, params) {
			return true
		}
	}
	return false
}

func sameParamTypes(a []VarSymbol, b []VarSymbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type == nil || b[i].Type == nil {
			continue
		}
		if a[i].Type.String() != b[i].Type.String() {
			return false
		}
	}
	return true
}

// declareConstructor builds the flat MethodTable for one constructor's
// parameters and locals, the same way declareMethod does for methods,
// without adding it to owner's overload sets (constructors are never
// called by name/overload resolution — see ClassSymbol.Constructors).
func (p MemberDeclarationPass) declareConstructor(c *ast.ConstructorDecl, owner *ClassSymbol, ctx *Context) *ConstructorSymbol {
	var params []VarSymbol
	for _, param := range c.Params {
		typ, _ := resolveType(param.Type, ctx, c.Line)
		params = append(params, VarSymbol{Name: param.Name, Type: typ})
	}

	method := &MethodSymbol{Name: "<init>", Params: params, ReturnType: types.Void, Owner: owner}
	table := NewMethodTable()
	for _, param := range params {
		table.Declare(param.Name, param.Type)
	}
	method.Table = table

	if c.Body != nil {
		ctx.CurrentMethod = method
		registerLocalsInBlock(c.Body, table, ctx)
		ctx.CurrentMethod = nil
	}
	return &ConstructorSymbol{Decl: c, Method: method}
}

// registerLocalsInBlock declares every 'var' found in block and recurses
// into nested if/while sub-blocks into the SAME table, since O gives every
// local in a method one flat scope regardless of nesting (spec.md §4.4
// phase 3: "rejecting duplicates within the same method, including across
// nested if/while bodies").
func registerLocalsInBlock(block *ast.Block, table *MethodTable, ctx *Context) {
	for _, local := range block.Locals {
		typ, _ := resolveType(local.Type, ctx, local.Line)
		if !table.Declare(local.Name, typ) {
			ctx.AddError(local.Line, "duplicate local %q in method %q", local.Name, ctx.CurrentMethod.Name)
		}
	}
	for _, stmt := range block.Stmts {
		switch s := stmt.(type) {
		case *ast.While:
			registerLocalsInBlock(s.Body, table, ctx)
		case *ast.If:
			registerLocalsInBlock(s.Then, table, ctx)
			if s.Else != nil {
				registerLocalsInBlock(s.Else, table, ctx)
			}
		}
	}
}

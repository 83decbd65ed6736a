package semantic

import "github.com/ocompiler/ocompilerc/internal/ast"

// InheritanceResolutionPass is phase 2 (spec.md §4.4): resolve each
// class's 'extends' clause to its ClassSymbol and reject inheritance
// cycles.
type InheritanceResolutionPass struct{}

func (InheritanceResolutionPass) Name() string { return "inheritance-resolution" }

func (InheritanceResolutionPass) Run(program *ast.Program, ctx *Context) error {
	for _, decl := range program.Classes {
		sym, ok := ctx.Classes.Lookup(decl.Name)
		if !ok || decl.Parent == nil {
			continue
		}
		simple, ok := decl.Parent.(*ast.SimpleTypeRef)
		if !ok {
			ctx.AddError(decl.Line, "class %q extends a generic type, which is not allowed", decl.Name)
			continue
		}
		if simple.Name == decl.Name {
			ctx.AddError(decl.Line, "class %q cannot extend itself", decl.Name)
			continue
		}
		parent, ok := ctx.Classes.Lookup(simple.Name)
		if !ok {
			ctx.AddError(decl.Line, "unknown parent class %q for %q", simple.Name, decl.Name)
			continue
		}
		sym.Parent = parent
	}
	if ctx.HasErrors() {
		return nil
	}

	for _, sym := range ctx.Classes.Classes() {
		if detectCycle(sym) {
			ctx.AddError(sym.Decl.Line, "inheritance cycle detected involving class %q", sym.Name)
		}
	}
	return nil
}

func detectCycle(start *ClassSymbol) bool {
	visited := map[*ClassSymbol]bool{}
	for cur := start; cur != nil; cur = cur.Parent {
		if visited[cur] {
			return true
		}
		visited[cur] = true
	}
	return false
}

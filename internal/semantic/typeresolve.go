package semantic

import (
	"github.com/ocompiler/ocompilerc/internal/ast"
	"github.com/ocompiler/ocompilerc/internal/types"
)

// resolveType turns a parsed ast.TypeRef into a resolved types.Type,
// validating that any non-built-in Simple name resolves to a class
// (spec.md §3 invariant: "Every referenced type name (except built-ins and
// Array) resolves to a ClassSymbol"). line is used for error reporting.
func resolveType(ref ast.TypeRef, ctx *Context, line int) (types.Type, bool) {
	switch t := ref.(type) {
	case *ast.SimpleTypeRef:
		switch t.Name {
		case "Integer":
			return types.Integer, true
		case "Real":
			return types.Real, true
		case "Bool":
			return types.Bool, true
		case "void":
			return types.Void, true
		}
		sym, ok := ctx.Classes.Lookup(t.Name)
		if !ok {
			ctx.AddError(line, "unknown type %q", t.Name)
			return types.Unknown, false
		}
		return &types.Simple{Name: sym.Name}, true

	case *ast.GenericTypeRef:
		if t.Name != "Array" || len(t.Args) != 1 {
			ctx.AddError(line, "unknown generic type %q", t.Name)
			return types.Unknown, false
		}
		elem, ok := resolveType(t.Args[0], ctx, line)
		if !ok {
			return types.Unknown, false
		}
		return types.ArrayOf(elem), true

	default:
		return types.Unknown, false
	}
}

package semantic

import "github.com/ocompiler/ocompilerc/internal/types"

// Assignable implements the GLOSSARY's assignability partial order:
// A <= B iff A == B, either side is Unknown, A is a transitive subclass of
// B, or both are the same generic base with component-wise assignable
// arguments. classes resolves a *types.Simple class name back to its
// ClassSymbol so the subclass check can walk the parent chain.
func Assignable(from, to types.Type, classes *ClassTable) bool {
	if types.IsUnknown(from) || types.IsUnknown(to) {
		return true
	}
	if types.Equals(from, to) {
		return true
	}
	if fg, ok := from.(*types.Generic); ok {
		if tg, ok := to.(*types.Generic); ok && fg.Name == tg.Name && len(fg.Args) == len(tg.Args) {
			for i := range fg.Args {
				if !Assignable(fg.Args[i], tg.Args[i], classes) {
					return false
				}
			}
			return true
		}
		return false
	}
	fs, fok := from.(*types.Simple)
	ts, tok := to.(*types.Simple)
	if !fok || !tok {
		return false
	}
	fromClass, ok := classes.Lookup(fs.Name)
	if !ok {
		return false
	}
	toClass, ok := classes.Lookup(ts.Name)
	if !ok {
		return false
	}
	return fromClass.IsSubclassOf(toClass)
}

// builtinReturnType implements the catalog in spec.md §4.6: the return
// type of method on a built-in receiver, given the argument types already
// type-checked. ok is false if method is not recognized for receiver.
func builtinReturnType(receiver types.Type, method string, args []types.Type) (types.Type, bool) {
	if elem, isArray := types.IsArray(receiver); isArray {
		switch method {
		case "Length":
			return types.Integer, true
		case "get":
			return elem, true
		case "set":
			return types.Void, true
		}
		return nil, false
	}

	s, ok := receiver.(*types.Simple)
	if !ok {
		return nil, false
	}

	switch s.Name {
	case "Integer":
		switch method {
		case "toReal":
			return types.Real, true
		case "toBoolean":
			return types.Bool, true
		case "UnaryMinus":
			return types.Integer, true
		case "Plus", "Minus", "Mult", "Div", "Rem":
			if len(args) == 1 && types.Equals(args[0], types.Real) {
				return types.Real, true
			}
			return types.Integer, true
		case "Equal", "NotEqual", "Less", "Greater", "LessEqual", "GreaterEqual":
			return types.Bool, true
		}
	case "Real":
		switch method {
		case "toInteger":
			return types.Integer, true
		case "UnaryMinus", "Plus", "Minus", "Mult", "Div", "Rem":
			return types.Real, true
		case "Equal", "NotEqual", "Less", "Greater", "LessEqual", "GreaterEqual":
			return types.Bool, true
		}
	case "Bool":
		switch method {
		case "toInteger":
			return types.Integer, true
		case "Equal", "NotEqual", "And", "Or", "Xor", "Not":
			return types.Bool, true
		}
	}
	return nil, false
}

// isBuiltinReceiver reports whether t is a type the built-in method
// catalog (rather than a class's method table) should service.
func isBuiltinReceiver(t types.Type) bool {
	if types.IsBuiltinScalar(t) {
		return true
	}
	_, isArray := types.IsArray(t)
	return isArray
}

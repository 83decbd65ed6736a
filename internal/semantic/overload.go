package semantic

import (
	"fmt"

	"github.com/ocompiler/ocompilerc/internal/types"
)

// ResolveOverload implements spec.md §4.5 against owner's own overload set
// for method — never the parent's, per OQ (c): overload resolution is
// owner-class-only. Single-name lookups elsewhere (name resolution,
// ClassSymbol.FindMethod) walk the parent chain instead; the two
// disciplines are intentionally different and both live here so the
// distinction spec.md §9(c) flags stays visible in one place.
func ResolveOverload(owner *ClassSymbol, method string, args []types.Type, classes *ClassTable) (*MethodSymbol, error) {
	candidates := owner.Overloads(method)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("class %q has no method %q", owner.Name, method)
	}

	byArity := filterByArity(candidates, len(args))
	if len(byArity) == 0 {
		arities := make([]int, len(candidates))
		for i, c := range candidates {
			arities[i] = len(c.Params)
		}
		return nil, fmt.Errorf("method %q takes %d argument(s), available arities: %v", method, len(args), arities)
	}

	if exact := findExactMatch(byArity, args); exact != nil {
		return exact, nil
	}

	assignableMatches := filterAssignable(byArity, args, classes)
	switch len(assignableMatches) {
	case 0:
		return nil, fmt.Errorf("no suitable overload of %q for the given argument types", method)
	case 1:
		return assignableMatches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous call to overloaded method %q", method)
	}
}

func filterByArity(candidates []*MethodSymbol, arity int) []*MethodSymbol {
	var out []*MethodSymbol
	for _, c := range candidates {
		if len(c.Params) == arity {
			out = append(out, c)
		}
	}
	return out
}

func findExactMatch(candidates []*MethodSymbol, args []types.Type) *MethodSymbol {
	for _, c := range candidates {
		if paramTypesEqual(c.ParamTypes(), args) {
			return c
		}
	}
	return nil
}

func paramTypesEqual(params, args []types.Type) bool {
	for i := range params {
		if !types.Equals(params[i], args[i]) {
			return false
		}
	}
	return true
}

func filterAssignable(candidates []*MethodSymbol, args []types.Type, classes *ClassTable) []*MethodSymbol {
	var out []*MethodSymbol
	for _, c := range candidates {
		params := c.ParamTypes()
		ok := true
		for i := range params {
			if !Assignable(args[i], params[i], classes) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}

package codegen

import (
	"github.com/ocompiler/ocompilerc/internal/semantic"
	"github.com/ocompiler/ocompilerc/internal/types"
)

// computeSlots translates a method's logical indices into JVM local slot
// indices (spec.md §4.8): slot 0 is `this`; parameters then locals, each
// consuming slot_size(type) (2 for Real, 1 otherwise), in method-table
// declaration order.
func computeSlots(method *semantic.MethodSymbol) map[string]int {
	slots := make(map[string]int)
	next := 1
	for _, name := range method.Table.Names() {
		sym, _, _ := method.Table.Lookup(name)
		slots[name] = next
		next += types.SlotSize(sym.Type)
	}
	return slots
}

// ctx bundles everything statement/expression lowering needs: the class
// and method whose body is being lowered (method may be a real
// MethodSymbol or the synthetic one built for a constructor), and the
// slot map derived from it.
type ctx struct {
	gen    *Generator
	class  *semantic.ClassSymbol
	method *semantic.MethodSymbol
	slots  map[string]int
}

func newCtx(g *Generator, class *semantic.ClassSymbol, method *semantic.MethodSymbol) *ctx {
	c := &ctx{gen: g, class: class, method: method}
	if method != nil {
		c.slots = computeSlots(method)
	}
	return c
}

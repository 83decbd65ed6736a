// Package semantic implements the six ordered analysis phases over the AST
// produced by internal/parser, populating the class table described by
// spec.md §3/§4.3 and annotating expressions with resolved types.
package semantic

import (
	"github.com/ocompiler/ocompilerc/internal/ast"
	"github.com/ocompiler/ocompilerc/internal/types"
)

// VarSymbol is a field or a method-local/parameter variable. Init is only
// meaningful for fields: the parsed initializer expression the generator
// lowers into constructor preamble code (spec.md §4.7 "Field initializer
// emission"); params and locals leave it nil.
type VarSymbol struct {
	Name string
	Type types.Type
	Init ast.Expr
}

// MethodTable is the per-method ordered mapping of names to their symbol
// and logical index (spec.md §3 GLOSSARY: "Method table"), parameters
// first in declaration order, then locals in declaration order.
type MethodTable struct {
	order   []string
	symbols map[string]*VarSymbol
	index   map[string]int
}

func NewMethodTable() *MethodTable {
	return &MethodTable{symbols: make(map[string]*VarSymbol), index: make(map[string]int)}
}

// Declare inserts name at the next logical index. Returns false if name is
// already declared (caller surfaces this as a duplicate-local error).
func (t *MethodTable) Declare(name string, typ types.Type) bool {
	if _, exists := t.symbols[name]; exists {
		return false
	}
	t.index[name] = len(t.order)
	t.order = append(t.order, name)
	t.symbols[name] = &VarSymbol{Name: name, Type: typ}
	return true
}

func (t *MethodTable) Lookup(name string) (*VarSymbol, int, bool) {
	sym, ok := t.symbols[name]
	if !ok {
		return nil, 0, false
	}
	return sym, t.index[name], true
}

// Names returns the declaration-ordered name list (parameters then locals).
func (t *MethodTable) Names() []string { return t.order }

// MethodSymbol is one overload of a named method.
type MethodSymbol struct {
	Name       string
	Params     []VarSymbol
	ReturnType types.Type // nil means void
	Owner      *ClassSymbol
	Table      *MethodTable
	Decl       *ast.MethodDecl
}

// ParamTypes returns the parameter types in declaration order, used for
// overload matching and descriptor construction.
func (m *MethodSymbol) ParamTypes() []types.Type {
	out := make([]types.Type, len(m.Params))
	for i, p := range m.Params {
		out[i] = p.Type
	}
	return out
}

// ClassSymbol is the per-class record: fields (insertion-ordered), method
// overload sets, and an optional parent link (spec.md §3).
type ClassSymbol struct {
	Name        string
	Decl        *ast.ClassDecl
	Parent      *ClassSymbol
	fieldOrder  []string
	fields      map[string]*VarSymbol
	methods     map[string][]*MethodSymbol
	methodOrder []string

	// Constructors holds each declared constructor's AST alongside the
	// MethodSymbol built for it so later phases can resolve/type-check its
	// body — parallel to, but deliberately kept outside of, the `methods`
	// overload sets above (spec.md §4.4 phase 3: constructors are "carried
	// through but not registered in the symbol tables beyond their AST
	// form", meaning not overload-resolved by name like ordinary methods).
	Constructors []*ConstructorSymbol
}

// ConstructorSymbol pairs a parsed ConstructorDecl with the flat
// MethodTable built for its parameters and locals.
type ConstructorSymbol struct {
	Decl   *ast.ConstructorDecl
	Method *MethodSymbol // synthetic; Owner/Table/ReturnType only, Name "<init>"
}

func NewClassSymbol(name string, decl *ast.ClassDecl) *ClassSymbol {
	return &ClassSymbol{
		Name:    name,
		Decl:    decl,
		fields:  make(map[string]*VarSymbol),
		methods: make(map[string][]*MethodSymbol),
	}
}

// DeclareField inserts a field, returning false if the name already exists
// in this class (spec.md §4.4 phase 3: "reject duplicate field names").
func (c *ClassSymbol) DeclareField(name string, typ types.Type, init ast.Expr) bool {
	if _, exists := c.fields[name]; exists {
		return false
	}
	c.fieldOrder = append(c.fieldOrder, name)
	c.fields[name] = &VarSymbol{Name: name, Type: typ, Init: init}
	return true
}

// FindField walks the parent chain, returning the field and the class that
// actually declares it (used by the generator to emit the right
// getfield/putfield owner, spec.md §4.7).
func (c *ClassSymbol) FindField(name string) (*VarSymbol, *ClassSymbol, bool) {
	for cur := c; cur != nil; cur = cur.Parent {
		if f, ok := cur.fields[name]; ok {
			return f, cur, true
		}
	}
	return nil, nil, false
}

// OwnFields returns this class's own field names in declaration order
// (does not include inherited fields — the generator emits one .field per
// declaring class).
func (c *ClassSymbol) OwnFields() []string { return c.fieldOrder }

func (c *ClassSymbol) FieldDecl(name string) *VarSymbol { return c.fields[name] }

// AddMethod appends m to its name's overload set.
func (c *ClassSymbol) AddMethod(m *MethodSymbol) {
	if _, exists := c.methods[m.Name]; !exists {
		c.methodOrder = append(c.methodOrder, m.Name)
	}
	c.methods[m.Name] = append(c.methods[m.Name], m)
}

// Overloads returns this class's own overload set for name — never the
// parent's (spec.md §4.5: "overloads are not inherited for resolution
// purposes").
func (c *ClassSymbol) Overloads(name string) []*MethodSymbol { return c.methods[name] }

// FindMethod walks the parent chain looking for any overload of name,
// returning the first class in the chain (nearest ancestor first) that
// declares at least one (used by name resolution, §4.4 phase 4 — a
// discipline distinct from Overloads, see internal/semantic/overload.go).
func (c *ClassSymbol) FindMethod(name string) (*ClassSymbol, bool) {
	for cur := c; cur != nil; cur = cur.Parent {
		if _, ok := cur.methods[name]; ok {
			return cur, true
		}
	}
	return nil, false
}

// IsSubclassOf reports whether c equals or transitively extends other.
func (c *ClassSymbol) IsSubclassOf(other *ClassSymbol) bool {
	for cur := c; cur != nil; cur = cur.Parent {
		if cur == other {
			return true
		}
	}
	return false
}

// ClassTable is the insertion-ordered registry of all classes in the
// program (spec.md §4.3).
type ClassTable struct {
	order   []string
	classes map[string]*ClassSymbol
}

func NewClassTable() *ClassTable {
	return &ClassTable{classes: make(map[string]*ClassSymbol)}
}

// Declare inserts a new ClassSymbol, returning false if name already exists.
func (t *ClassTable) Declare(sym *ClassSymbol) bool {
	if _, exists := t.classes[sym.Name]; exists {
		return false
	}
	t.order = append(t.order, sym.Name)
	t.classes[sym.Name] = sym
	return true
}

// Lookup returns the ClassSymbol for a Simple type name, or false for
// built-ins and Array (which are never classes, per spec.md §4.3).
func (t *ClassTable) Lookup(name string) (*ClassSymbol, bool) {
	s, ok := t.classes[name]
	return s, ok
}

// Classes returns classes in insertion order, for deterministic code
// generation and diagnostics dumps.
func (t *ClassTable) Classes() []*ClassSymbol {
	out := make([]*ClassSymbol, len(t.order))
	for i, name := range t.order {
		out[i] = t.classes[name]
	}
	return out
}

func (t *ClassTable) String() string {
	var lines []string
	for _, c := range t.Classes() {
		parent := "<none>"
		if c.Parent != nil {
			parent = c.Parent.Name
		}
		lines = append(lines, c.Name+" extends "+parent)
	}
	s := ""
	for i, l := range lines {
		if i > 0 {
			s += "\n"
		}
		s += l
	}
	return s
}

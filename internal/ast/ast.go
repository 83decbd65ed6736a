// Package ast defines the tagged-variant tree produced by the parser and
// consumed by the semantic analyzer and code generator, per spec.md §3.
package ast

import (
	"fmt"
	"strings"

	"github.com/ocompiler/ocompilerc/internal/types"
)

// Node is the base interface every AST node satisfies, in the teacher's
// TokenLiteral()/String() convention (grounded on the teacher's
// internal/ast.Node): String renders a debug form used by the driver's
// pre/post-optimization AST dumps (spec.md §6).
type Node interface {
	String() string
}

// ----------------------------------------------------------------------
// Type references

// TypeRef is the two-shape tagged variant ("ClassName" in spec.md §3):
// Simple(name) or Generic(name, args). Equality is structural.
type TypeRef interface {
	Node
	typeRef()
	Equals(other TypeRef) bool
}

type SimpleTypeRef struct {
	Name string
}

func (*SimpleTypeRef) typeRef() {}
func (t *SimpleTypeRef) String() string { return t.Name }
func (t *SimpleTypeRef) Equals(other TypeRef) bool {
	o, ok := other.(*SimpleTypeRef)
	return ok && o.Name == t.Name
}

type GenericTypeRef struct {
	Name string
	Args []TypeRef
}

func (*GenericTypeRef) typeRef() {}
func (t *GenericTypeRef) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", t.Name, strings.Join(parts, ", "))
}
func (t *GenericTypeRef) Equals(other TypeRef) bool {
	o, ok := other.(*GenericTypeRef)
	if !ok || o.Name != t.Name || len(o.Args) != len(t.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

// ----------------------------------------------------------------------
// Program / classes

// Program is the ordered sequence of class declarations that make up one
// compilation unit.
type Program struct {
	Classes []*ClassDecl
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, c := range p.Classes {
		sb.WriteString(c.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ClassDecl is a class with an optional parent and an ordered member list.
type ClassDecl struct {
	Name    string
	Parent  TypeRef // nil if no 'extends' clause
	Members []MemberDecl
	Line    int
}

func (c *ClassDecl) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "class %s", c.Name)
	if c.Parent != nil {
		fmt.Fprintf(&sb, " extends %s", c.Parent.String())
	}
	sb.WriteString(" is\n")
	for _, m := range c.Members {
		sb.WriteString("  ")
		sb.WriteString(m.String())
		sb.WriteString("\n")
	}
	sb.WriteString("end")
	return sb.String()
}

// ----------------------------------------------------------------------
// Members

// MemberDecl is the tagged variant of VarDecl | MethodDecl | ConstructorDecl.
type MemberDecl interface {
	Node
	memberDecl()
}

// Visibility mirrors the parsed-but-ignored access modifiers (spec.md
// Non-goals: "access-modifier enforcement").
type Visibility int

const (
	VisDefault Visibility = iota
	VisPrivate
	VisPublic
)

type VarDecl struct {
	Name       string
	Type       TypeRef
	Init       Expr
	Visibility Visibility
	Line       int
}

func (*VarDecl) memberDecl() {}
func (v *VarDecl) String() string {
	s := fmt.Sprintf("var %s: %s", v.Name, v.Type.String())
	if v.Init != nil {
		s += " (" + v.Init.String() + ")"
	}
	return s
}

type Param struct {
	Name string
	Type TypeRef
}

func (p Param) String() string { return fmt.Sprintf("%s: %s", p.Name, p.Type.String()) }

// Block is the shared shape of a method/constructor body and of an
// if/while sub-block: an ordered run of local-variable declarations and
// statements, all sharing one flat scope (spec.md §4.4 phase 3).
type Block struct {
	Locals []*VarDecl
	Stmts  []Stmt
}

func (b *Block) String() string {
	var sb strings.Builder
	for _, l := range b.Locals {
		sb.WriteString(l.String())
		sb.WriteString("; ")
	}
	for _, s := range b.Stmts {
		sb.WriteString(s.String())
		sb.WriteString("; ")
	}
	return sb.String()
}

type MethodDecl struct {
	Name       string
	Params     []Param
	ReturnType TypeRef // nil means void
	Body       *Block  // nil if declared without a body
	Line       int
}

func (*MethodDecl) memberDecl() {}
func (m *MethodDecl) String() string {
	ps := make([]string, len(m.Params))
	for i, p := range m.Params {
		ps[i] = p.String()
	}
	ret := ""
	if m.ReturnType != nil {
		ret = ": " + m.ReturnType.String()
	}
	s := fmt.Sprintf("method %s(%s)%s", m.Name, strings.Join(ps, ", "), ret)
	if m.Body != nil {
		s += " is " + m.Body.String() + " end"
	}
	return s
}

type ConstructorDecl struct {
	Params []Param
	Body   *Block
	Line   int
}

func (*ConstructorDecl) memberDecl() {}
func (c *ConstructorDecl) String() string {
	ps := make([]string, len(c.Params))
	for i, p := range c.Params {
		ps[i] = p.String()
	}
	s := fmt.Sprintf("this(%s)", strings.Join(ps, ", "))
	if c.Body != nil {
		s += " is " + c.Body.String() + " end"
	}
	return s
}

// ----------------------------------------------------------------------
// Statements

// Stmt is the tagged variant of statement shapes (spec.md §3).
type Stmt interface {
	Node
	stmtNode()
	LineNo() int
}

// Assignment's Target is either a plain identifier or the prefixed `this.<name>`
// form; both are represented as Expr (Identifier or FieldAccess{This,...})
// so the same resolution logic in §4.4/§4.7 applies uniformly.
type Assignment struct {
	Target Expr
	Expr   Expr
	Line   int
}

func (*Assignment) stmtNode()    {}
func (a *Assignment) LineNo() int { return a.Line }
func (a *Assignment) String() string {
	return fmt.Sprintf("%s := %s", a.Target.String(), a.Expr.String())
}

type While struct {
	Cond Expr
	Body *Block
	Line int
}

func (*While) stmtNode()    {}
func (w *While) LineNo() int { return w.Line }
func (w *While) String() string {
	return fmt.Sprintf("while %s loop %s end", w.Cond.String(), w.Body.String())
}

type If struct {
	Cond Expr
	Then *Block
	Else *Block // nil if no 'else'
	Line int
}

func (*If) stmtNode()    {}
func (f *If) LineNo() int { return f.Line }
func (f *If) String() string {
	s := fmt.Sprintf("if %s then %s", f.Cond.String(), f.Then.String())
	if f.Else != nil {
		s += " else " + f.Else.String()
	}
	return s + " end"
}

type Return struct {
	Expr Expr // nil for a bare return
	Line int
}

func (*Return) stmtNode()    {}
func (r *Return) LineNo() int { return r.Line }
func (r *Return) String() string {
	if r.Expr == nil {
		return "return"
	}
	return "return " + r.Expr.String()
}

type ExprStmt struct {
	Expr Expr
	Line int
}

func (*ExprStmt) stmtNode()    {}
func (e *ExprStmt) LineNo() int { return e.Line }
func (e *ExprStmt) String() string { return e.Expr.String() }

// ----------------------------------------------------------------------
// Expressions

// Expr is the tagged variant of expression shapes. Type is filled in by
// the type-checking phase (spec.md §4.4 phase 5) and read by the
// statement/expression lowering logic in the code generator.
type Expr interface {
	Node
	exprNode()
	LineNo() int
	SetType(types.Type)
	GetType() types.Type
}

type exprBase struct {
	Line int
	Type types.Type
}

func (e *exprBase) LineNo() int          { return e.Line }
func (e *exprBase) SetType(t types.Type) { e.Type = t }
func (e *exprBase) GetType() types.Type  { return e.Type }

type IntLit struct {
	exprBase
	Value int64
}

func (*IntLit) exprNode()      {}
func (n *IntLit) String() string { return fmt.Sprintf("%d", n.Value) }

// NewIntLit builds an IntLit at the given source line.
func NewIntLit(line int, value int64) *IntLit {
	return &IntLit{exprBase: exprBase{Line: line}, Value: value}
}

type RealLit struct {
	exprBase
	Value float64
}

func (*RealLit) exprNode()      {}
func (n *RealLit) String() string { return fmt.Sprintf("%g", n.Value) }

// NewRealLit builds a RealLit at the given source line.
func NewRealLit(line int, value float64) *RealLit {
	return &RealLit{exprBase: exprBase{Line: line}, Value: value}
}

type BoolLit struct {
	exprBase
	Value bool
}

func (*BoolLit) exprNode() {}
func (n *BoolLit) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

// NewBoolLit builds a BoolLit at the given source line.
func NewBoolLit(line int, value bool) *BoolLit {
	return &BoolLit{exprBase: exprBase{Line: line}, Value: value}
}

type This struct {
	exprBase
}

func (*This) exprNode()      {}
func (n *This) String() string { return "this" }

// NewThis builds a This reference at the given source line.
func NewThis(line int) *This {
	return &This{exprBase: exprBase{Line: line}}
}

type Identifier struct {
	exprBase
	Name string
}

func (*Identifier) exprNode()      {}
func (n *Identifier) String() string { return n.Name }

// NewIdentifier builds an Identifier at the given source line.
func NewIdentifier(line int, name string) *Identifier {
	return &Identifier{exprBase: exprBase{Line: line}, Name: name}
}

type FieldAccess struct {
	exprBase
	Receiver Expr // nil means implicit 'this.' per spec.md §4.2 Stmt grammar
	Name     string
}

func (*FieldAccess) exprNode() {}
func (n *FieldAccess) String() string {
	if n.Receiver == nil {
		return "this." + n.Name
	}
	return n.Receiver.String() + "." + n.Name
}

// NewFieldAccess builds a FieldAccess at the given source line. A nil
// receiver means the implicit 'this.' form.
func NewFieldAccess(line int, receiver Expr, name string) *FieldAccess {
	return &FieldAccess{exprBase: exprBase{Line: line}, Receiver: receiver, Name: name}
}

type Call struct {
	exprBase
	Receiver Expr // nil for a receiver-less call
	Method   string
	Args     []Expr
}

func (*Call) exprNode() {}
func (n *Call) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	args := strings.Join(parts, ", ")
	if n.Receiver == nil {
		return fmt.Sprintf("%s(%s)", n.Method, args)
	}
	return fmt.Sprintf("%s.%s(%s)", n.Receiver.String(), n.Method, args)
}

// NewCall builds a Call at the given source line. A nil receiver means a
// receiver-less call (spec.md §9(a): same-class invocation).
func NewCall(line int, receiver Expr, method string, args []Expr) *Call {
	return &Call{exprBase: exprBase{Line: line}, Receiver: receiver, Method: method, Args: args}
}

// ClassNameExpr is the sentinel placeholder initializer produced for a
// VarDecl with no explicit `(Args)` constructor-call form (spec.md §4.2).
type ClassNameExpr struct {
	exprBase
	TypeName TypeRef
}

func (*ClassNameExpr) exprNode()      {}
func (n *ClassNameExpr) String() string { return n.TypeName.String() }

// NewClassNameExpr builds a ClassNameExpr at the given source line.
func NewClassNameExpr(line int, typeName TypeRef) *ClassNameExpr {
	return &ClassNameExpr{exprBase: exprBase{Line: line}, TypeName: typeName}
}

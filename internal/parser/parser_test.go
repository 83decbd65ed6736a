package parser

import (
	"testing"

	"github.com/ocompiler/ocompilerc/internal/ast"
	"github.com/ocompiler/ocompilerc/internal/lexer"
)

func testParser(t *testing.T, input string) *Parser {
	t.Helper()
	return New(lexer.Scan(input))
}

func TestParseProgram_EmptyClass(t *testing.T) {
	p := testParser(t, `class A is end`)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(program.Classes) != 1 || program.Classes[0].Name != "A" {
		t.Fatalf("unexpected program: %+v", program)
	}
}

func TestParseClassDecl_WithParent(t *testing.T) {
	p := testParser(t, `class B extends A is end`)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	class := program.Classes[0]
	if class.Parent == nil || class.Parent.String() != "A" {
		t.Fatalf("expected parent A, got %v", class.Parent)
	}
}

func TestParseVarDecl_DefaultInit(t *testing.T) {
	p := testParser(t, `class A is var x: Integer end`)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := program.Classes[0].Members[0].(*ast.VarDecl)
	if v.Name != "x" || v.Type.String() != "Integer" {
		t.Fatalf("unexpected var decl: %+v", v)
	}
	if _, ok := v.Init.(*ast.ClassNameExpr); !ok {
		t.Fatalf("expected ClassNameExpr default init, got %T", v.Init)
	}
}

func TestParseVarDecl_ExplicitConstructorInit(t *testing.T) {
	p := testParser(t, `class A is var x: Point(1, 2) end`)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := program.Classes[0].Members[0].(*ast.VarDecl)
	call, ok := v.Init.(*ast.Call)
	if !ok {
		t.Fatalf("expected Call init, got %T", v.Init)
	}
	if call.Method != "Point" || len(call.Args) != 2 {
		t.Fatalf("unexpected call: %+v", call)
	}
}

func TestParseMethodDecl_WithReturnTypeAndBody(t *testing.T) {
	src := `
class A is
  method Double(x: Integer): Integer is
    return x
  end
end`
	p := testParser(t, src)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := program.Classes[0].Members[0].(*ast.MethodDecl)
	if m.Name != "Double" || len(m.Params) != 1 || m.ReturnType.String() != "Integer" {
		t.Fatalf("unexpected method: %+v", m)
	}
	if m.Body == nil || len(m.Body.Stmts) != 1 {
		t.Fatalf("expected one statement in body, got %+v", m.Body)
	}
	if _, ok := m.Body.Stmts[0].(*ast.Return); !ok {
		t.Fatalf("expected Return statement, got %T", m.Body.Stmts[0])
	}
}

func TestParseMethodDecl_AbstractNoBody(t *testing.T) {
	p := testParser(t, `class A is method Foo() end`)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := program.Classes[0].Members[0].(*ast.MethodDecl)
	if m.Body != nil {
		t.Fatalf("expected nil body, got %+v", m.Body)
	}
}

func TestParseConstructorDecl(t *testing.T) {
	src := `
class Point is
  var x: Integer
  this(a: Integer) is
    this.x := a
  end
end`
	p := testParser(t, src)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctor := program.Classes[0].Members[1].(*ast.ConstructorDecl)
	if len(ctor.Params) != 1 || ctor.Params[0].Name != "a" {
		t.Fatalf("unexpected constructor: %+v", ctor)
	}
	assign := ctor.Body.Stmts[0].(*ast.Assignment)
	target := assign.Target.(*ast.FieldAccess)
	if target.Name != "x" {
		t.Fatalf("expected assignment target field x, got %+v", target)
	}
}

func TestParseDuplicateConstructors_Rejected(t *testing.T) {
	src := `
class Point is
  this(a: Integer) is end
  this(b: Integer) is end
end`
	p := testParser(t, src)
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected an error for duplicate constructor parameter-type lists")
	}
}

func TestParseDistinctConstructors_Accepted(t *testing.T) {
	src := `
class Point is
  this(a: Integer) is end
  this(a: Real) is end
end`
	p := testParser(t, src)
	if _, err := p.ParseProgram(); err != nil {
		t.Fatalf("unexpected error for distinct constructor signatures: %v", err)
	}
}

func TestParseIfThenElse_SharedEnd(t *testing.T) {
	src := `
class A is
  method M() is
    if true then
      return
    else
      if false then
        return
      end
    end
  end
end`
	p := testParser(t, src)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := program.Classes[0].Members[0].(*ast.MethodDecl)
	outer := m.Body.Stmts[0].(*ast.If)
	if outer.Else == nil || len(outer.Else.Stmts) != 1 {
		t.Fatalf("expected nested if inside else branch, got %+v", outer.Else)
	}
	if _, ok := outer.Else.Stmts[0].(*ast.If); !ok {
		t.Fatalf("expected nested If in else block, got %T", outer.Else.Stmts[0])
	}
}

func TestParseWhile(t *testing.T) {
	src := `
class A is
  method M() is
    while true loop
      return
    end
  end
end`
	p := testParser(t, src)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := program.Classes[0].Members[0].(*ast.MethodDecl)
	w := m.Body.Stmts[0].(*ast.While)
	if len(w.Body.Stmts) != 1 {
		t.Fatalf("expected one statement in while body, got %+v", w.Body)
	}
}

func TestParseExpr_MemberSelChain(t *testing.T) {
	src := `
class A is
  method M() is
    return this.Next.Value
  end
end`
	p := testParser(t, src)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := program.Classes[0].Members[0].(*ast.MethodDecl)
	ret := m.Body.Stmts[0].(*ast.Return)
	outer := ret.Expr.(*ast.FieldAccess)
	if outer.Name != "Value" {
		t.Fatalf("expected outer field Value, got %+v", outer)
	}
	inner := outer.Receiver.(*ast.FieldAccess)
	if inner.Name != "Next" {
		t.Fatalf("expected inner field Next, got %+v", inner)
	}
}

func TestParseArrayType(t *testing.T) {
	p := testParser(t, `class A is var xs: Array[Integer] end`)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := program.Classes[0].Members[0].(*ast.VarDecl)
	generic, ok := v.Type.(*ast.GenericTypeRef)
	if !ok {
		t.Fatalf("expected GenericTypeRef, got %T", v.Type)
	}
	if generic.Name != "Array" || len(generic.Args) != 1 || generic.Args[0].String() != "Integer" {
		t.Fatalf("unexpected array type: %+v", generic)
	}
}

func TestParseProgram_UnexpectedTokenFails(t *testing.T) {
	p := testParser(t, `class A is var end`)
	if _, err := p.ParseProgram(); err == nil {
		t.Fatal("expected an error parsing a var decl missing a name")
	}
}

func TestParseNumberLiteral_RealVsInt(t *testing.T) {
	src := `
class A is
  method M() is
    return 3
  end
  method N() is
    return 3.5
  end
end`
	p := testParser(t, src)
	program, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := program.Classes[0].Members[0].(*ast.MethodDecl)
	if _, ok := m.Body.Stmts[0].(*ast.Return).Expr.(*ast.IntLit); !ok {
		t.Fatalf("expected IntLit, got %T", m.Body.Stmts[0].(*ast.Return).Expr)
	}
	n := program.Classes[0].Members[1].(*ast.MethodDecl)
	if _, ok := n.Body.Stmts[0].(*ast.Return).Expr.(*ast.RealLit); !ok {
		t.Fatalf("expected RealLit, got %T", n.Body.Stmts[0].(*ast.Return).Expr)
	}
}

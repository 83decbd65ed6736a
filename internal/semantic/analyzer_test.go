package semantic

import (
	"strings"
	"testing"

	"github.com/ocompiler/ocompilerc/internal/ast"
	"github.com/ocompiler/ocompilerc/internal/lexer"
	"github.com/ocompiler/ocompilerc/internal/parser"
	"github.com/ocompiler/ocompilerc/internal/types"
)

// analyzeSource lexes, parses, and analyzes input, returning the result and
// the errors (if any) collected in the context. Phase 1 requires a class
// named Program to exist, so tests that only care about some other class
// get one appended for free unless they already declare their own.
func analyzeSource(t *testing.T, input string) (*Result, *Context) {
	t.Helper()
	if !strings.Contains(input, "Program") {
		input += "\nclass Program is end"
	}
	tokens := lexer.Scan(input)
	program, err := parser.New(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	return NewAnalyzer().Analyze(program, input, "test.o")
}

func expectNoErrors(t *testing.T, input string) *Result {
	t.Helper()
	result, ctx := analyzeSource(t, input)
	if ctx.HasErrors() {
		t.Fatalf("expected no errors, got: %v", ctx.Errors)
	}
	return result
}

func expectError(t *testing.T, input string, substr string) {
	t.Helper()
	_, ctx := analyzeSource(t, input)
	if !ctx.HasErrors() {
		t.Fatalf("expected an error containing %q, got none", substr)
	}
	for _, e := range ctx.Errors {
		if strings.Contains(e.Error(), substr) {
			return
		}
	}
	t.Fatalf("expected an error containing %q, got: %v", substr, ctx.Errors)
}

func TestAnalyze_SimpleClassNoErrors(t *testing.T) {
	expectNoErrors(t, `
class Point is
  var x: Integer
  var y: Integer
  this(a: Integer, b: Integer) is
    this.x := a
    this.y := b
  end
  method Sum(): Integer is
    return this.x.Plus(this.y)
  end
end`)
}

func TestAnalyze_DuplicateClass(t *testing.T) {
	expectError(t, `
class A is end
class A is end`, "duplicate")
}

func TestAnalyze_UnknownParent(t *testing.T) {
	expectError(t, `class A extends Ghost is end`, "unknown")
}

func TestAnalyze_SelfExtension(t *testing.T) {
	expectError(t, `class A extends A is end`, "A")
}

func TestAnalyze_InheritanceCycle(t *testing.T) {
	expectError(t, `
class A extends B is end
class B extends A is end`, "cycle")
}

func TestAnalyze_DuplicateField(t *testing.T) {
	expectError(t, `
class A is
  var x: Integer
  var x: Integer
end`, "duplicate field")
}

func TestAnalyze_DuplicateLocalAcrossNestedBlocks(t *testing.T) {
	expectError(t, `
class A is
  method M() is
    var x: Integer
    if true then
      var x: Integer
    end
  end
end`, "duplicate local")
}

func TestAnalyze_OverloadSameParamTypesRejected(t *testing.T) {
	expectError(t, `
class A is
  method M(a: Integer) is end
  method M(b: Integer) is end
end`, "redeclares an overload")
}

func TestAnalyze_OverloadDifferentParamTypesAccepted(t *testing.T) {
	expectNoErrors(t, `
class A is
  method M(a: Integer) is end
  method M(a: Real) is end
end`)
}

func TestAnalyze_UnknownFieldAccess(t *testing.T) {
	expectError(t, `
class A is
  method M() is
    return this.ghost
  end
end`, "unknown field")
}

func TestAnalyze_TypeMismatchAssignment(t *testing.T) {
	expectError(t, `
class A is
  var x: Integer
  method M() is
    this.x := true
  end
end`, "cannot assign")
}

func TestAnalyze_InheritedFieldVisibleInSubclass(t *testing.T) {
	result := expectNoErrors(t, `
class Base is
  var x: Integer
end
class Derived extends Base is
  method Get(): Integer is
    return this.x
  end
end`)
	derived, ok := result.Classes.Lookup("Derived")
	if !ok {
		t.Fatal("expected Derived to be registered")
	}
	if _, owner, ok := derived.FindField("x"); !ok || owner.Name != "Base" {
		t.Fatalf("expected inherited field x to resolve to Base, got owner=%v ok=%v", owner, ok)
	}
}

func TestAnalyze_OverloadsAreOwnerClassOnlyNotInherited(t *testing.T) {
	// OQ (c): ResolveOverload only looks at the owner's own overload set.
	result := expectNoErrors(t, `
class Base is
  method M(a: Integer) is end
end
class Derived extends Base is
end`)
	derived, _ := result.Classes.Lookup("Derived")
	if len(derived.Overloads("M")) != 0 {
		t.Fatalf("expected Derived's own overload set for M to be empty, got %v", derived.Overloads("M"))
	}
	base, _ := derived.FindMethod("M")
	if base == nil || base.Name != "Base" {
		t.Fatalf("expected FindMethod to walk up to Base, got %v", base)
	}
}

func TestAnalyze_ConstructorsNotInOverloadTable(t *testing.T) {
	result := expectNoErrors(t, `
class Point is
  this(a: Integer) is end
end`)
	point, _ := result.Classes.Lookup("Point")
	if len(point.Constructors) != 1 {
		t.Fatalf("expected one constructor, got %d", len(point.Constructors))
	}
	if len(point.Overloads("<init>")) != 0 {
		t.Fatal("expected constructors to never populate the method overload table")
	}
}

func TestAnalyze_ConstantFoldingAnnotatesFoldedType(t *testing.T) {
	result := expectNoErrors(t, `
class A is
  method M(): Integer is
    return 1.Plus(2)
  end
end`)
	a, _ := result.Classes.Lookup("A")
	m := a.Overloads("M")[0]
	ret := m.Decl.Body.Stmts[0].(*ast.Return)

	// foldBuiltinCall replaces the Call with a single IntLit during phase 6;
	// foldedInt must have given it a type immediately, since nothing later
	// walks the tree to set one (internal/codegen reads GetType() directly).
	lit, ok := ret.Expr.(*ast.IntLit)
	if !ok {
		t.Fatalf("expected constant folding to produce an IntLit, got %T", ret.Expr)
	}
	if lit.Value != 3 {
		t.Fatalf("expected folded value 3, got %d", lit.Value)
	}
	if lit.GetType() != types.Integer {
		t.Fatalf("expected folded literal to carry an Integer type, got %v", lit.GetType())
	}
}

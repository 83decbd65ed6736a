package codegen

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/ocompiler/ocompilerc/internal/lexer"
	"github.com/ocompiler/ocompilerc/internal/parser"
	"github.com/ocompiler/ocompilerc/internal/semantic"
)

// compile lexes, parses, and analyzes input, failing the test on any error
// from any stage, then generates Jasmin text for every class. Tests that
// don't care about the Program entry point get one appended for free.
func compile(t *testing.T, input string) map[string]string {
	t.Helper()
	if !strings.Contains(input, "Program") {
		input += "\nclass Program is end"
	}
	tokens := lexer.Scan(input)
	program, err := parser.New(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	result, ctx := semantic.NewAnalyzer().Analyze(program, input, "test.o")
	if ctx.HasErrors() {
		t.Fatalf("semantic errors: %v", ctx.Errors)
	}
	out, err := New(result.Classes).Generate()
	if err != nil {
		t.Fatalf("codegen error: %v", err)
	}
	return out
}

func TestGenerate_EmptyClassHasDefaultConstructor(t *testing.T) {
	out := compile(t, `class A is end`)
	text, ok := out["A.j"]
	if !ok {
		t.Fatal("expected A.j in output")
	}
	if !strings.Contains(text, ".class public A") || !strings.Contains(text, ".super java/lang/Object") {
		t.Errorf("unexpected class header: %q", text)
	}
	if !strings.Contains(text, ".method public <init>()V") {
		t.Errorf("expected default constructor, got: %q", text)
	}
	if !strings.Contains(text, "invokespecial java/lang/Object/<init>()V") {
		t.Errorf("expected default constructor to call super, got: %q", text)
	}
}

func TestGenerate_FieldDeclaration(t *testing.T) {
	out := compile(t, `
class A is
  var x: Integer
  var y: Real
end`)
	text := out["A.j"]
	if !strings.Contains(text, ".field protected x I") {
		t.Errorf("expected field x descriptor I, got: %q", text)
	}
	if !strings.Contains(text, ".field protected y D") {
		t.Errorf("expected field y descriptor D, got: %q", text)
	}
}

func TestGenerate_FieldInitializerScalarDefault(t *testing.T) {
	out := compile(t, `
class A is
  var x: Integer(42)
end`)
	text := out["A.j"]
	if !strings.Contains(text, "bipush 42") || !strings.Contains(text, "putfield A/x I") {
		t.Errorf("expected explicit field initializer to push 42 and putfield, got: %q", text)
	}
}

func TestGenerate_UserClassFieldInitializer(t *testing.T) {
	// OQ (b): argument descriptors are derived per-argument, not hardcoded.
	out := compile(t, `
class Point is
  var x: Integer
  this(a: Integer) is
    this.x := a
  end
end
class A is
  var p: Point(1)
end`)
	text := out["A.j"]
	if !strings.Contains(text, "new Point") || !strings.Contains(text, "invokespecial Point/<init>(I)V") {
		t.Errorf("expected Point construction with (I)V descriptor, got: %q", text)
	}
}

func TestGenerate_DeclaredConstructorEmitsSuperCallAndBody(t *testing.T) {
	out := compile(t, `
class A is
  var x: Integer
  this(a: Integer) is
    this.x := a
  end
end`)
	text := out["A.j"]
	if !strings.Contains(text, ".method public <init>(I)V") {
		t.Errorf("expected constructor descriptor (I)V, got: %q", text)
	}
	if !strings.Contains(text, "putfield A/x I") {
		t.Errorf("expected constructor body to store into field x, got: %q", text)
	}
}

func TestGenerate_MultipleConstructorsEachEmitted(t *testing.T) {
	out := compile(t, `
class A is
  this(a: Integer) is end
  this(a: Real) is end
end`)
	text := out["A.j"]
	if !strings.Contains(text, ".method public <init>(I)V") {
		t.Errorf("expected Integer constructor, got: %q", text)
	}
	if !strings.Contains(text, ".method public <init>(D)V") {
		t.Errorf("expected Real constructor, got: %q", text)
	}
}

func TestGenerate_SameClassCallUsesInvokevirtualNotStatic(t *testing.T) {
	// OQ (a): a receiver-less call within the class dispatches via
	// invokevirtual against an implicit this, not invokestatic.
	out := compile(t, `
class A is
  method Helper(): Integer is
    return 1
  end
  method M(): Integer is
    return Helper()
  end
end`)
	text := out["A.j"]
	if strings.Contains(text, "invokestatic") {
		t.Errorf("expected no invokestatic, got: %q", text)
	}
	if !strings.Contains(text, "invokevirtual A/Helper()I") {
		t.Errorf("expected invokevirtual A/Helper()I, got: %q", text)
	}
}

func TestGenerate_OverloadResolutionPicksMatchingDescriptor(t *testing.T) {
	out := compile(t, `
class A is
  method M(a: Integer): Integer is
    return a
  end
  method M(a: Real): Real is
    return a
  end
  method Call(): Integer is
    return M(1)
  end
end`)
	text := out["A.j"]
	if !strings.Contains(text, "invokevirtual A/M(I)I") {
		t.Errorf("expected overload resolved to (I)I, got: %q", text)
	}
}

func TestGenerate_IfThenElseSharesOneEndLabel(t *testing.T) {
	out := compile(t, `
class A is
  method M() is
    if true then
      return
    else
      return
    end
  end
end`)
	text := out["A.j"]
	if !strings.Contains(text, "ifeq L_else_") || !strings.Contains(text, "goto L_endif_") {
		t.Errorf("expected if/else branch labels, got: %q", text)
	}
}

func TestGenerate_WhileLoopEmitsBackEdge(t *testing.T) {
	out := compile(t, `
class A is
  method M() is
    while true loop
      return
    end
  end
end`)
	text := out["A.j"]
	if !strings.Contains(text, "L_while_") || !strings.Contains(text, "goto L_while_") {
		t.Errorf("expected a while loop back-edge, got: %q", text)
	}
}

func TestGenerate_ArrayGetSetAndLength(t *testing.T) {
	out := compile(t, `
class A is
  method M(xs: Array[Integer]): Integer is
    xs.set(0, 1)
    return xs.Length()
  end
end`)
	text := out["A.j"]
	for _, want := range []string{"iastore", "arraylength"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in generated code, got: %q", want, text)
		}
	}
}

func TestGenerate_ProgramMainEmitsJVMEntryWrapper(t *testing.T) {
	out := compile(t, `
class Program is
  method main() is
  end
end`)
	text := out["Program.j"]
	if !strings.Contains(text, ".method public static main([Ljava/lang/String;)V") {
		t.Errorf("expected a static main wrapper, got: %q", text)
	}
	if !strings.Contains(text, "invokespecial Program/<init>()V") || !strings.Contains(text, "invokevirtual Program/main()V") {
		t.Errorf("expected the wrapper to construct Program and call main(), got: %q", text)
	}
}

func TestGenerate_InheritedFieldNotRedeclared(t *testing.T) {
	out := compile(t, `
class Base is
  var x: Integer
end
class Derived extends Base is
end`)
	if strings.Contains(out["Derived.j"], ".field") {
		t.Errorf("expected Derived.j not to redeclare inherited field x, got: %q", out["Derived.j"])
	}
	if !strings.Contains(out["Base.j"], ".field protected x I") {
		t.Errorf("expected Base.j to declare field x, got: %q", out["Base.j"])
	}
}

// TestGenerate_PointClassMatchesSnapshot pins the full Jasmin text for a
// representative class with fields, a constructor, and an overload so any
// future change to instruction shape or emission order shows up as a
// snapshot diff rather than a silent behavior change.
func TestGenerate_PointClassMatchesSnapshot(t *testing.T) {
	out := compile(t, `
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
	snaps.MatchSnapshot(t, "Point.j", out["Point.j"])
}

func TestGenerate_ConstantFoldedIntLiteral(t *testing.T) {
	out := compile(t, `
class A is
  method M(): Integer is
    return 1.Plus(2)
  end
end`)
	text := out["A.j"]
	if !strings.Contains(text, "iconst_3") {
		t.Errorf("expected the folded constant 3 to be pushed directly, got: %q", text)
	}
}

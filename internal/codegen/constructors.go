package codegen

import (
	"fmt"
	"strings"

	"github.com/ocompiler/ocompilerc/internal/ast"
	"github.com/ocompiler/ocompilerc/internal/semantic"
	"github.com/ocompiler/ocompilerc/internal/types"
)

// emitConstructors implements spec.md §4.7 "Constructors": a default
// no-arg <init> when the class declares none, or one <init> per declared
// constructor otherwise. Every form begins with the super-class init call
// and runs field initializers before any explicit body statements.
func (g *Generator) emitConstructors(sb *strings.Builder, class *semantic.ClassSymbol, superName string) error {
	if len(class.Constructors) == 0 {
		return g.emitDefaultConstructor(sb, class, superName)
	}
	for _, ctor := range class.Constructors {
		if err := g.emitDeclaredConstructor(sb, class, superName, ctor); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) emitDefaultConstructor(sb *strings.Builder, class *semantic.ClassSymbol, superName string) error {
	sb.WriteString(".method public <init>()V\n")
	fmt.Fprintf(sb, "    .limit stack %d\n", stackLimit)
	fmt.Fprintf(sb, "    .limit locals %d\n", localsLimit)
	writeInstr(sb, "aload_0")
	writeInstr(sb, fmt.Sprintf("invokespecial %s/<init>()V", superName))

	c := newCtx(g, class, nil)
	initLines, err := c.emitFieldInitializers(class)
	if err != nil {
		return fmt.Errorf("class %s default constructor: %w", class.Name, err)
	}
	for _, line := range initLines {
		writeInstr(sb, line)
	}
	writeInstr(sb, "return")
	sb.WriteString(".end method\n\n")
	return nil
}

func (g *Generator) emitDeclaredConstructor(sb *strings.Builder, class *semantic.ClassSymbol, superName string, ctor *semantic.ConstructorSymbol) error {
	desc := methodDescriptor(ctor.Method.ParamTypes(), types.Void)
	fmt.Fprintf(sb, ".method public <init>%s\n", desc)
	fmt.Fprintf(sb, "    .limit stack %d\n", stackLimit)
	fmt.Fprintf(sb, "    .limit locals %d\n", localsLimit)
	writeInstr(sb, "aload_0")
	writeInstr(sb, fmt.Sprintf("invokespecial %s/<init>()V", superName))

	c := newCtx(g, class, ctor.Method)
	initLines, err := c.emitFieldInitializers(class)
	if err != nil {
		return fmt.Errorf("class %s constructor: %w", class.Name, err)
	}
	for _, line := range initLines {
		writeInstr(sb, line)
	}

	if ctor.Decl.Body != nil {
		bodyLines, err := c.lowerBlock(ctor.Decl.Body)
		if err != nil {
			return fmt.Errorf("class %s constructor: %w", class.Name, err)
		}
		for _, line := range bodyLines {
			writeInstr(sb, line)
		}
	}
	writeInstr(sb, "return")
	sb.WriteString(".end method\n\n")
	return nil
}

// emitFieldInitializers lowers each of the class's own field initializers
// in declaration order, per the four shapes spec.md §4.7 documents.
func (c *ctx) emitFieldInitializers(class *semantic.ClassSymbol) ([]string, error) {
	var lines []string
	for _, name := range class.OwnFields() {
		field := class.FieldDecl(name)
		if field.Init == nil {
			continue
		}
		fieldLines, err := c.lowerFieldInitializer(name, field)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fieldLines...)
	}
	return lines, nil
}

func (c *ctx) lowerFieldInitializer(name string, field *semantic.VarSymbol) ([]string, error) {
	simple, isSimple := field.Type.(*types.Simple)
	call, isCall := field.Init.(*ast.Call)
	if !isSimple || !isCall || call.Receiver != nil || call.Method != simple.Name {
		// Every other initializer shape (in particular the ClassNameExpr
		// placeholder for a bare `var x: T` with no explicit constructor
		// call) carries no runtime initialization and is skipped.
		return nil, nil
	}

	switch simple.Name {
	case "Integer", "Bool":
		return c.lowerScalarFieldInit(name, field, call, "iconst_0")
	case "Real":
		return c.lowerScalarFieldInit(name, field, call, "ldc2_w 0.0")
	default:
		return c.lowerUserClassFieldInit(name, field, call)
	}
}

func (c *ctx) lowerScalarFieldInit(name string, field *semantic.VarSymbol, call *ast.Call, defaultOp string) ([]string, error) {
	lines := []string{"aload_0"}
	if len(call.Args) == 1 {
		argLines, err := c.lowerExpr(call.Args[0])
		if err != nil {
			return nil, err
		}
		lines = append(lines, argLines...)
	} else {
		lines = append(lines, defaultOp)
	}
	lines = append(lines, fmt.Sprintf("putfield %s/%s %s", c.class.Name, name, types.Descriptor(field.Type)))
	return lines, nil
}

// lowerUserClassFieldInit implements OQ (b)'s resolution: each
// constructor-call argument's descriptor is derived from its own
// inferred type, rather than hardcoded to I.
func (c *ctx) lowerUserClassFieldInit(name string, field *semantic.VarSymbol, call *ast.Call) ([]string, error) {
	className := field.Type.String()
	lines := []string{"aload_0", fmt.Sprintf("new %s", className), "dup"}

	argDescs := make([]string, len(call.Args))
	for i, arg := range call.Args {
		argLines, err := c.lowerExpr(arg)
		if err != nil {
			return nil, err
		}
		lines = append(lines, argLines...)
		argDescs[i] = types.Descriptor(arg.GetType())
	}

	lines = append(lines, fmt.Sprintf("invokespecial %s/<init>(%s)V", className, strings.Join(argDescs, "")))
	lines = append(lines, fmt.Sprintf("putfield %s/%s %s", c.class.Name, name, types.Descriptor(field.Type)))
	return lines, nil
}

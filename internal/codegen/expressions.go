package codegen

import (
	"fmt"

	"github.com/ocompiler/ocompilerc/internal/ast"
	"github.com/ocompiler/ocompilerc/internal/semantic"
	"github.com/ocompiler/ocompilerc/internal/types"
)

// lowerExpr emits the instruction sequence that leaves expr's value on
// the operand stack (spec.md §4.7 "Expression lowering").
func (c *ctx) lowerExpr(expr ast.Expr) ([]string, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return []string{lowerIntLit(e.Value)}, nil

	case *ast.BoolLit:
		if e.Value {
			return []string{"iconst_1"}, nil
		}
		return []string{"iconst_0"}, nil

	case *ast.RealLit:
		return []string{fmt.Sprintf("ldc2_w %g", e.Value)}, nil

	case *ast.This:
		return []string{"aload_0"}, nil

	case *ast.Identifier:
		return c.lowerNameLoad(e.Name)

	case *ast.FieldAccess:
		return c.lowerFieldAccess(e)

	case *ast.Call:
		return c.lowerCall(e)

	default:
		return nil, fmt.Errorf("code generation: unsupported expression %T", expr)
	}
}

// lowerIntLit picks the shortest push-constant form for v (spec.md §4.7).
func lowerIntLit(v int64) string {
	switch {
	case v >= -1 && v <= 5:
		if v == -1 {
			return "iconst_m1"
		}
		return fmt.Sprintf("iconst_%d", v)
	case v >= -128 && v <= 127:
		return fmt.Sprintf("bipush %d", v)
	case v >= -32768 && v <= 32767:
		return fmt.Sprintf("sipush %d", v)
	default:
		return fmt.Sprintf("ldc %d", v)
	}
}

// lowerNameLoad resolves name the same way assignment targets are
// resolved: a local/param in the current method table, otherwise a field
// reached via `this` (spec.md §4.7 "Identifier name").
func (c *ctx) lowerNameLoad(name string) ([]string, error) {
	if c.method != nil {
		if sym, _, ok := c.method.Table.Lookup(name); ok {
			return []string{fmt.Sprintf("%s %d", loadOp(sym.Type), c.slots[name])}, nil
		}
	}
	field, owner, ok := c.class.FindField(name)
	if !ok {
		return nil, fmt.Errorf("code generation: unknown identifier %q", name)
	}
	return []string{
		"aload_0",
		fmt.Sprintf("getfield %s/%s %s", owner.Name, name, types.Descriptor(field.Type)),
	}, nil
}

func (c *ctx) lowerFieldAccess(e *ast.FieldAccess) ([]string, error) {
	var receiverLines []string
	var receiverOwner *semantic.ClassSymbol

	if e.Receiver == nil {
		receiverLines = []string{"aload_0"}
		receiverOwner = c.class
	} else {
		lines, err := c.lowerExpr(e.Receiver)
		if err != nil {
			return nil, err
		}
		receiverLines = lines
		receiverOwner = c.resolveReceiverClass(e.Receiver)
	}
	if receiverOwner == nil {
		return nil, fmt.Errorf("code generation: unknown receiver class for field %q", e.Name)
	}
	field, owner, ok := receiverOwner.FindField(e.Name)
	if !ok {
		return nil, fmt.Errorf("code generation: unknown field %q on class %q", e.Name, receiverOwner.Name)
	}
	return append(receiverLines, fmt.Sprintf("getfield %s/%s %s", owner.Name, e.Name, types.Descriptor(field.Type))), nil
}

// resolveReceiverClass recovers the ClassSymbol a receiver expression's
// static type names. Method/constructor bodies and field-initializer
// arguments carry this via Expr.GetType() from the type-checking phase; a
// nil GetType() (an expression that phase never annotated) falls back to
// the enclosing class, matching the common case of a self-reference.
func (c *ctx) resolveReceiverClass(receiver ast.Expr) *semantic.ClassSymbol {
	t := receiver.GetType()
	if t == nil {
		return c.class
	}
	simple, ok := t.(*types.Simple)
	if !ok {
		return nil
	}
	sym, ok := c.gen.classes.Lookup(simple.Name)
	if !ok {
		return nil
	}
	return sym
}

func (c *ctx) lowerCall(e *ast.Call) ([]string, error) {
	if e.Receiver == nil && e.Method == "print" {
		return c.lowerPrint(e)
	}
	if e.Receiver == nil {
		return c.lowerSameClassCall(e)
	}

	receiverLines, err := c.lowerExpr(e.Receiver)
	if err != nil {
		return nil, err
	}
	receiverType := e.Receiver.GetType()

	if array, isArray := types.IsArray(receiverType); isArray {
		return c.lowerArrayCall(e, array, receiverLines)
	}
	if types.IsBuiltinScalar(receiverType) {
		return c.lowerBuiltinScalarCall(e, receiverType, receiverLines)
	}

	owner := c.resolveReceiverClass(e.Receiver)
	if owner == nil {
		return nil, fmt.Errorf("code generation: unknown receiver class for call %q", e.Method)
	}
	return c.lowerVirtualCall(e, owner, receiverLines)
}

func (c *ctx) lowerPrint(e *ast.Call) ([]string, error) {
	if len(e.Args) != 1 {
		return nil, fmt.Errorf("code generation: print expects exactly one argument")
	}
	argLines, err := c.lowerExpr(e.Args[0])
	if err != nil {
		return nil, err
	}
	desc := types.Descriptor(e.Args[0].GetType())
	sig := "Ljava/lang/Object;"
	switch desc {
	case "I", "D", "Z":
		sig = desc
	}
	lines := []string{"getstatic java/lang/System/out Ljava/io/PrintStream;"}
	lines = append(lines, argLines...)
	lines = append(lines, fmt.Sprintf("invokevirtual java/io/PrintStream/println(%s)V", sig))
	return lines, nil
}

// lowerSameClassCall implements OQ (a): a receiver-less call to another
// method of the enclosing class is genuine instance dispatch — push an
// implicit `this`, then invokevirtual — not the invokestatic spec.md §9(a)
// documents as the unresolved baseline behavior.
func (c *ctx) lowerSameClassCall(e *ast.Call) ([]string, error) {
	argTypes := make([]types.Type, len(e.Args))
	var argLines []string
	for i, arg := range e.Args {
		argTypes[i] = arg.GetType()
		lines, err := c.lowerExpr(arg)
		if err != nil {
			return nil, err
		}
		argLines = append(argLines, lines...)
	}
	method, err := semantic.ResolveOverload(c.class, e.Method, argTypes, c.gen.classes)
	if err != nil {
		return nil, fmt.Errorf("code generation: %w", err)
	}
	desc := methodDescriptor(method.ParamTypes(), method.ReturnType)
	lines := []string{"aload_0"}
	lines = append(lines, argLines...)
	lines = append(lines, fmt.Sprintf("invokevirtual %s/%s%s", c.class.Name, e.Method, desc))
	return lines, nil
}

func (c *ctx) lowerVirtualCall(e *ast.Call, owner *semantic.ClassSymbol, receiverLines []string) ([]string, error) {
	argTypes := make([]types.Type, len(e.Args))
	var argLines []string
	for i, arg := range e.Args {
		argTypes[i] = arg.GetType()
		lines, err := c.lowerExpr(arg)
		if err != nil {
			return nil, err
		}
		argLines = append(argLines, lines...)
	}
	method, err := semantic.ResolveOverload(owner, e.Method, argTypes, c.gen.classes)
	if err != nil {
		return nil, fmt.Errorf("code generation: %w", err)
	}
	desc := methodDescriptor(method.ParamTypes(), method.ReturnType)
	lines := append([]string{}, receiverLines...)
	lines = append(lines, argLines...)
	lines = append(lines, fmt.Sprintf("invokevirtual %s/%s%s", owner.Name, e.Method, desc))
	return lines, nil
}

// lowerBuiltinScalarCall implements the documented limitation in spec.md
// §4.7: only Integer/Real Plus and Mult get real opcodes; every other
// built-in scalar method name that survives constant folding is a
// generation error.
func (c *ctx) lowerBuiltinScalarCall(e *ast.Call, receiverType types.Type, receiverLines []string) ([]string, error) {
	if len(e.Args) != 1 {
		return nil, fmt.Errorf("code generation: unsupported built-in method %q (wrong arity)", e.Method)
	}
	argLines, err := c.lowerExpr(e.Args[0])
	if err != nil {
		return nil, err
	}
	simple, _ := receiverType.(*types.Simple)
	var op string
	switch {
	case simple.Name == "Integer" && e.Method == "Plus":
		op = "iadd"
	case simple.Name == "Integer" && e.Method == "Mult":
		op = "imul"
	case simple.Name == "Real" && e.Method == "Plus":
		op = "dadd"
	case simple.Name == "Real" && e.Method == "Mult":
		op = "dmul"
	default:
		return nil, fmt.Errorf("code generation: unsupported built-in method %q on %s", e.Method, receiverType)
	}
	lines := append([]string{}, receiverLines...)
	lines = append(lines, argLines...)
	lines = append(lines, op)
	return lines, nil
}

// lowerArrayCall implements the supplemented Array[T] codegen (SPEC_FULL
// §4): Length/get/set against arraylength and the I/D/A-variant
// Xaload/Xastore instructions by element type.
func (c *ctx) lowerArrayCall(e *ast.Call, elem types.Type, receiverLines []string) ([]string, error) {
	lines := append([]string{}, receiverLines...)
	switch e.Method {
	case "Length":
		return append(lines, "arraylength"), nil

	case "get":
		if len(e.Args) != 1 {
			return nil, fmt.Errorf("code generation: Array.get expects one index argument")
		}
		idxLines, err := c.lowerExpr(e.Args[0])
		if err != nil {
			return nil, err
		}
		lines = append(lines, idxLines...)
		return append(lines, arrayLoadOp(elem)), nil

	case "set":
		if len(e.Args) != 2 {
			return nil, fmt.Errorf("code generation: Array.set expects index and value arguments")
		}
		idxLines, err := c.lowerExpr(e.Args[0])
		if err != nil {
			return nil, err
		}
		valLines, err := c.lowerExpr(e.Args[1])
		if err != nil {
			return nil, err
		}
		lines = append(lines, idxLines...)
		lines = append(lines, valLines...)
		return append(lines, arrayStoreOp(elem)), nil

	default:
		return nil, fmt.Errorf("code generation: unsupported array method %q", e.Method)
	}
}

func arrayLoadOp(elem types.Type) string {
	switch types.Descriptor(elem) {
	case "I":
		return "iaload"
	case "D":
		return "daload"
	default:
		return "aaload"
	}
}

func arrayStoreOp(elem types.Type) string {
	switch types.Descriptor(elem) {
	case "I":
		return "iastore"
	case "D":
		return "dastore"
	default:
		return "aastore"
	}
}

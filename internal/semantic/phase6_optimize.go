package semantic

import (
	"github.com/ocompiler/ocompilerc/internal/ast"
	"github.com/ocompiler/ocompilerc/internal/types"
)

// foldedInt/foldedReal/foldedBool build a replacement literal for a folded
// Call and annotate it immediately: the node is born after type checking
// (phase 5) already ran, so nothing else will ever set its type, and the
// generator reads GetType() on every expression it lowers.
func foldedInt(line int, v int64) ast.Expr {
	n := ast.NewIntLit(line, v)
	n.SetType(types.Integer)
	return n
}

func foldedReal(line int, v float64) ast.Expr {
	n := ast.NewRealLit(line, v)
	n.SetType(types.Real)
	return n
}

func foldedBool(line int, v bool) ast.Expr {
	n := ast.NewBoolLit(line, v)
	n.SetType(types.Bool)
	return n
}

// OptimizationPass is phase 6 (spec.md §4.4): dead-code-after-return
// trimming, constant folding, and dead-local elimination. It rewrites
// method bodies in place rather than allocating a parallel tree — the
// class/method symbols created by earlier phases still point at the same
// *ast.MethodDecl, so the generator sees the optimized body through the
// same symbol table without a second resolution pass.
type OptimizationPass struct{}

func (OptimizationPass) Name() string { return "optimization" }

func (p OptimizationPass) Run(program *ast.Program, ctx *Context) error {
	for _, decl := range program.Classes {
		sym, ok := ctx.Classes.Lookup(decl.Name)
		if !ok {
			continue
		}
		for _, member := range decl.Members {
			m, ok := member.(*ast.MethodDecl)
			if !ok || m.Body == nil {
				continue
			}
			p.optimizeBody(m.Body)
		}
		for _, ctor := range sym.Constructors {
			if ctor.Decl.Body != nil {
				p.optimizeBody(ctor.Decl.Body)
			}
		}
	}
	return nil
}

func (p OptimizationPass) optimizeBody(body *ast.Block) {
	p.trimDeadCode(body)
	p.foldBlock(body)
	p.eliminateDeadLocals(body)
}

// trimDeadCode discards every statement after the first Return in a
// block, recursing into while/if sub-blocks.
func (p OptimizationPass) trimDeadCode(b *ast.Block) {
	for i, stmt := range b.Stmts {
		if _, isReturn := stmt.(*ast.Return); isReturn {
			b.Stmts = b.Stmts[:i+1]
			break
		}
		switch s := stmt.(type) {
		case *ast.While:
			p.trimDeadCode(s.Body)
		case *ast.If:
			p.trimDeadCode(s.Then)
			if s.Else != nil {
				p.trimDeadCode(s.Else)
			}
		}
	}
}

func (p OptimizationPass) foldBlock(b *ast.Block) {
	for _, stmt := range b.Stmts {
		switch s := stmt.(type) {
		case *ast.Assignment:
			s.Expr = p.foldExpr(s.Expr)
		case *ast.While:
			s.Cond = p.foldExpr(s.Cond)
			p.foldBlock(s.Body)
		case *ast.If:
			s.Cond = p.foldExpr(s.Cond)
			p.foldBlock(s.Then)
			if s.Else != nil {
				p.foldBlock(s.Else)
			}
		case *ast.Return:
			if s.Expr != nil {
				s.Expr = p.foldExpr(s.Expr)
			}
		case *ast.ExprStmt:
			s.Expr = p.foldExpr(s.Expr)
		}
	}
}

// foldExpr recursively folds Call(receiver, method, args) where receiver
// and all args are literals, per the built-in method catalog's arithmetic/
// comparison/logical semantics (spec.md §4.4 phase 6, §4.6). Division and
// remainder by zero are left unfolded.
func (p OptimizationPass) foldExpr(expr ast.Expr) ast.Expr {
	call, ok := expr.(*ast.Call)
	if !ok {
		return expr
	}
	for i, a := range call.Args {
		call.Args[i] = p.foldExpr(a)
	}
	if call.Receiver != nil {
		call.Receiver = p.foldExpr(call.Receiver)
	}
	if call.Receiver == nil {
		return call
	}

	folded, ok := foldBuiltinCall(call)
	if !ok {
		return call
	}
	return folded
}

// foldBuiltinCall evaluates call if its receiver and every argument are
// literal nodes; returns (nil, false) otherwise or when the fold would
// divide/remainder by zero.
func foldBuiltinCall(call *ast.Call) (ast.Expr, bool) {
	line := call.LineNo()

	switch recv := call.Receiver.(type) {
	case *ast.IntLit:
		var arg *ast.IntLit
		var argReal *ast.RealLit
		if len(call.Args) == 1 {
			switch a := call.Args[0].(type) {
			case *ast.IntLit:
				arg = a
			case *ast.RealLit:
				argReal = a
			default:
				return nil, false
			}
		} else if len(call.Args) != 0 {
			return nil, false
		}
		return foldIntegerMethod(line, recv.Value, call.Method, arg, argReal)

	case *ast.RealLit:
		var arg *ast.RealLit
		if len(call.Args) == 1 {
			a, ok := call.Args[0].(*ast.RealLit)
			if !ok {
				return nil, false
			}
			arg = a
		} else if len(call.Args) != 0 {
			return nil, false
		}
		return foldRealMethod(line, recv.Value, call.Method, arg)

	case *ast.BoolLit:
		var arg *ast.BoolLit
		if len(call.Args) == 1 {
			a, ok := call.Args[0].(*ast.BoolLit)
			if !ok {
				return nil, false
			}
			arg = a
		} else if len(call.Args) != 0 {
			return nil, false
		}
		return foldBoolMethod(line, recv.Value, call.Method, arg)

	default:
		return nil, false
	}
}

func foldIntegerMethod(line int, recv int64, method string, arg *ast.IntLit, argReal *ast.RealLit) (ast.Expr, bool) {
	if argReal != nil {
		rv := float64(recv)
		switch method {
		case "Plus":
			return foldedReal(line, rv+argReal.Value), true
		case "Minus":
			return foldedReal(line, rv-argReal.Value), true
		case "Mult":
			return foldedReal(line, rv*argReal.Value), true
		case "Div":
			if argReal.Value == 0 {
				return nil, false
			}
			return foldedReal(line, rv/argReal.Value), true
		}
		return nil, false
	}

	switch method {
	case "toReal":
		return foldedReal(line, float64(recv)), true
	case "toBoolean":
		return foldedBool(line, recv != 0), true
	case "UnaryMinus":
		return foldedInt(line, -recv), true
	}

	if arg == nil {
		return nil, false
	}
	switch method {
	case "Plus":
		return foldedInt(line, recv+arg.Value), true
	case "Minus":
		return foldedInt(line, recv-arg.Value), true
	case "Mult":
		return foldedInt(line, recv*arg.Value), true
	case "Div":
		if arg.Value == 0 {
			return nil, false
		}
		return foldedInt(line, recv/arg.Value), true
	case "Rem":
		if arg.Value == 0 {
			return nil, false
		}
		return foldedInt(line, recv%arg.Value), true
	case "Equal":
		return foldedBool(line, recv == arg.Value), true
	case "NotEqual":
		return foldedBool(line, recv != arg.Value), true
	case "Less":
		return foldedBool(line, recv < arg.Value), true
	case "Greater":
		return foldedBool(line, recv > arg.Value), true
	case "LessEqual":
		return foldedBool(line, recv <= arg.Value), true
	case "GreaterEqual":
		return foldedBool(line, recv >= arg.Value), true
	}
	return nil, false
}

func foldRealMethod(line int, recv float64, method string, arg *ast.RealLit) (ast.Expr, bool) {
	switch method {
	case "toInteger":
		return foldedInt(line, int64(recv)), true
	case "UnaryMinus":
		return foldedReal(line, -recv), true
	}
	if arg == nil {
		return nil, false
	}
	switch method {
	case "Plus":
		return foldedReal(line, recv+arg.Value), true
	case "Minus":
		return foldedReal(line, recv-arg.Value), true
	case "Mult":
		return foldedReal(line, recv*arg.Value), true
	case "Div":
		if arg.Value == 0 {
			return nil, false
		}
		return foldedReal(line, recv/arg.Value), true
	case "Equal":
		return foldedBool(line, recv == arg.Value), true
	case "NotEqual":
		return foldedBool(line, recv != arg.Value), true
	case "Less":
		return foldedBool(line, recv < arg.Value), true
	case "Greater":
		return foldedBool(line, recv > arg.Value), true
	case "LessEqual":
		return foldedBool(line, recv <= arg.Value), true
	case "GreaterEqual":
		return foldedBool(line, recv >= arg.Value), true
	}
	return nil, false
}

func foldBoolMethod(line int, recv bool, method string, arg *ast.BoolLit) (ast.Expr, bool) {
	switch method {
	case "toInteger":
		if recv {
			return foldedInt(line, 1), true
		}
		return foldedInt(line, 0), true
	case "Not":
		return foldedBool(line, !recv), true
	}
	if arg == nil {
		return nil, false
	}
	switch method {
	case "Equal":
		return foldedBool(line, recv == arg.Value), true
	case "NotEqual":
		return foldedBool(line, recv != arg.Value), true
	case "And":
		return foldedBool(line, recv && arg.Value), true
	case "Or":
		return foldedBool(line, recv || arg.Value), true
	case "Xor":
		return foldedBool(line, recv != arg.Value), true
	}
	return nil, false
}

// eliminateDeadLocals drops VarDecls (at any nesting level within body)
// whose name is never mentioned — read or written — anywhere in the
// method body (spec.md §4.4 phase 6: "because the target of an assignment
// is recorded as used, this eliminates only locals never mentioned at
// all").
func (p OptimizationPass) eliminateDeadLocals(body *ast.Block) {
	used := map[string]bool{}
	collectUsedNames(body, used)
	pruneUnusedLocals(body, used)
}

func collectUsedNames(b *ast.Block, used map[string]bool) {
	for _, stmt := range b.Stmts {
		switch s := stmt.(type) {
		case *ast.Assignment:
			collectUsedInExpr(s.Target, used)
			collectUsedInExpr(s.Expr, used)
		case *ast.While:
			collectUsedInExpr(s.Cond, used)
			collectUsedNames(s.Body, used)
		case *ast.If:
			collectUsedInExpr(s.Cond, used)
			collectUsedNames(s.Then, used)
			if s.Else != nil {
				collectUsedNames(s.Else, used)
			}
		case *ast.Return:
			if s.Expr != nil {
				collectUsedInExpr(s.Expr, used)
			}
		case *ast.ExprStmt:
			collectUsedInExpr(s.Expr, used)
		}
	}
}

func collectUsedInExpr(expr ast.Expr, used map[string]bool) {
	switch e := expr.(type) {
	case *ast.Identifier:
		used[e.Name] = true
	case *ast.FieldAccess:
		if e.Receiver != nil {
			collectUsedInExpr(e.Receiver, used)
		}
	case *ast.Call:
		if e.Receiver != nil {
			collectUsedInExpr(e.Receiver, used)
		}
		for _, a := range e.Args {
			collectUsedInExpr(a, used)
		}
	}
}

func pruneUnusedLocals(b *ast.Block, used map[string]bool) {
	var kept []*ast.VarDecl
	for _, local := range b.Locals {
		if used[local.Name] {
			kept = append(kept, local)
		}
	}
	b.Locals = kept

	for _, stmt := range b.Stmts {
		switch s := stmt.(type) {
		case *ast.While:
			pruneUnusedLocals(s.Body, used)
		case *ast.If:
			pruneUnusedLocals(s.Then, used)
			if s.Else != nil {
				pruneUnusedLocals(s.Else, used)
			}
		}
	}
}

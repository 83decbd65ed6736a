package codegen

import (
	"fmt"

	"github.com/ocompiler/ocompilerc/internal/ast"
	"github.com/ocompiler/ocompilerc/internal/types"
)

// lowerBlock lowers every local-less statement in block in order. Locals
// themselves need no instructions — they already occupy a slot via
// computeSlots and are only written to by Assignment/initialization.
func (c *ctx) lowerBlock(block *ast.Block) ([]string, error) {
	var lines []string
	for _, stmt := range block.Stmts {
		stmtLines, err := c.lowerStmt(stmt)
		if err != nil {
			return nil, err
		}
		lines = append(lines, stmtLines...)
	}
	return lines, nil
}

func (c *ctx) lowerStmt(stmt ast.Stmt) ([]string, error) {
	switch s := stmt.(type) {
	case *ast.Assignment:
		return c.lowerAssignment(s)
	case *ast.While:
		return c.lowerWhile(s)
	case *ast.If:
		return c.lowerIf(s)
	case *ast.Return:
		return c.lowerReturn(s)
	case *ast.ExprStmt:
		return c.lowerExprStmt(s)
	default:
		return nil, fmt.Errorf("code generation: unsupported statement %T", stmt)
	}
}

// lowerAssignment handles both target forms (spec.md §4.7): a bare
// identifier, resolved first as a local/param then as a `this` field; and
// an explicit `this.<name>` FieldAccess, always a field.
func (c *ctx) lowerAssignment(s *ast.Assignment) ([]string, error) {
	valueLines, err := c.lowerExpr(s.Expr)
	if err != nil {
		return nil, err
	}

	switch target := s.Target.(type) {
	case *ast.Identifier:
		if c.method != nil {
			if sym, _, ok := c.method.Table.Lookup(target.Name); ok {
				return append(valueLines, fmt.Sprintf("%s %d", storeOp(sym.Type), c.slots[target.Name])), nil
			}
		}
		field, owner, ok := c.class.FindField(target.Name)
		if !ok {
			return nil, fmt.Errorf("code generation: unknown assignment target %q", target.Name)
		}
		lines := []string{"aload_0"}
		lines = append(lines, valueLines...)
		lines = append(lines, fmt.Sprintf("putfield %s/%s %s", owner.Name, target.Name, types.Descriptor(field.Type)))
		return lines, nil

	case *ast.FieldAccess:
		field, owner, ok := c.class.FindField(target.Name)
		if !ok {
			return nil, fmt.Errorf("code generation: unknown field %q in assignment", target.Name)
		}
		lines := []string{"aload_0"}
		lines = append(lines, valueLines...)
		lines = append(lines, fmt.Sprintf("putfield %s/%s %s", owner.Name, target.Name, types.Descriptor(field.Type)))
		return lines, nil

	default:
		return nil, fmt.Errorf("code generation: unsupported assignment target %T", s.Target)
	}
}

func (c *ctx) lowerWhile(s *ast.While) ([]string, error) {
	start := c.gen.nextLabel("L_while")
	end := c.gen.nextLabel("L_end")

	condLines, err := c.lowerExpr(s.Cond)
	if err != nil {
		return nil, err
	}
	bodyLines, err := c.lowerBlock(s.Body)
	if err != nil {
		return nil, err
	}

	lines := []string{start + ":"}
	lines = append(lines, condLines...)
	lines = append(lines, fmt.Sprintf("ifeq %s", end))
	lines = append(lines, bodyLines...)
	lines = append(lines, fmt.Sprintf("goto %s", start))
	lines = append(lines, end+":")
	return lines, nil
}

// lowerIf shares one label pair between the then and else arms (per the
// resolution of OQ (d): a bare 'end' closes whichever arm ran, with no
// separate else-terminator).
func (c *ctx) lowerIf(s *ast.If) ([]string, error) {
	elseLabel := c.gen.nextLabel("L_else")
	endLabel := c.gen.nextLabel("L_endif")

	condLines, err := c.lowerExpr(s.Cond)
	if err != nil {
		return nil, err
	}
	thenLines, err := c.lowerBlock(s.Then)
	if err != nil {
		return nil, err
	}

	lines := append([]string{}, condLines...)
	lines = append(lines, fmt.Sprintf("ifeq %s", elseLabel))
	lines = append(lines, thenLines...)

	if s.Else != nil {
		elseLines, err := c.lowerBlock(s.Else)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("goto %s", endLabel))
		lines = append(lines, elseLabel+":")
		lines = append(lines, elseLines...)
		lines = append(lines, endLabel+":")
	} else {
		lines = append(lines, elseLabel+":")
	}
	return lines, nil
}

func (c *ctx) lowerReturn(s *ast.Return) ([]string, error) {
	if s.Expr == nil {
		return []string{"return"}, nil
	}
	valueLines, err := c.lowerExpr(s.Expr)
	if err != nil {
		return nil, err
	}
	return append(valueLines, returnOp(s.Expr.GetType())), nil
}

// lowerExprStmt discards any value the expression leaves on the stack,
// except when its inferred type is void (print, or a user method returning
// void), which leaves nothing to discard.
func (c *ctx) lowerExprStmt(s *ast.ExprStmt) ([]string, error) {
	lines, err := c.lowerExpr(s.Expr)
	if err != nil {
		return nil, err
	}
	t := s.Expr.GetType()
	if t == nil || types.Equals(t, types.Void) {
		return lines, nil
	}
	if types.SlotSize(t) == 2 {
		return append(lines, "pop2"), nil
	}
	return append(lines, "pop"), nil
}

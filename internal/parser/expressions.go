package parser

import (
	"github.com/ocompiler/ocompilerc/internal/ast"
	"github.com/ocompiler/ocompilerc/pkg/token"
)

// parseExpr parses `Expr := Primary { '.' MemberSel }`.
func (p *Parser) parseExpr() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseMemberSelChain(e)
}

// parseMemberSelChain consumes zero or more `.` MemberSel suffixes,
// folding each into a FieldAccess or Call with base as its receiver.
func (p *Parser) parseMemberSelChain(base ast.Expr) (ast.Expr, error) {
	e := base
	for p.s.MatchText(".") {
		p.s.Next()
		nameTok, err := p.s.Expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if p.s.MatchText("(") {
			p.s.Next()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			if _, err := p.s.ExpectText(")"); err != nil {
				return nil, err
			}
			e = ast.NewCall(nameTok.Line, e, nameTok.Text, args)
		} else {
			e = ast.NewFieldAccess(nameTok.Line, e, nameTok.Text)
		}
	}
	return e, nil
}

// parsePrimary parses:
//
//	Primary := Number | 'true' | 'false' | 'this' | Ident [ '(' Args ')' ]
//	         | '(' Expr ')'
func (p *Parser) parsePrimary() (ast.Expr, error) {
	cur := p.s.Peek()
	switch {
	case cur.Kind == token.NUMBER:
		p.s.Next()
		return parseNumberLiteral(cur.Text, cur.Line)

	case cur.Kind == token.KEYWORD && cur.Text == "true":
		p.s.Next()
		return ast.NewBoolLit(cur.Line, true), nil

	case cur.Kind == token.KEYWORD && cur.Text == "false":
		p.s.Next()
		return ast.NewBoolLit(cur.Line, false), nil

	case cur.Kind == token.KEYWORD && cur.Text == "this":
		p.s.Next()
		return ast.NewThis(cur.Line), nil

	case cur.Kind == token.IDENTIFIER:
		p.s.Next()
		if p.s.MatchText("(") {
			p.s.Next()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			if _, err := p.s.ExpectText(")"); err != nil {
				return nil, err
			}
			return ast.NewCall(cur.Line, nil, cur.Text, args), nil
		}
		return ast.NewIdentifier(cur.Line, cur.Text), nil

	case cur.Kind == token.SPECIAL_SYMBOL && cur.Text == "(":
		p.s.Next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.s.ExpectText(")"); err != nil {
			return nil, err
		}
		return e, nil

	default:
		return nil, &UnexpectedTokenError{Got: cur, WantText: "expression"}
	}
}

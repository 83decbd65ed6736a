package parser

import (
	"github.com/ocompiler/ocompilerc/internal/ast"
	"github.com/ocompiler/ocompilerc/pkg/token"
)

// parseStmt parses one statement per spec.md §4.2:
//
//	Stmt := 'return' [ Expr ]
//	      | 'while' Expr 'loop' Body
//	      | 'if' Expr 'then' BodyBlock [ 'else' BodyBlock ] 'end'
//	      | 'this' '.' Ident ':=' Expr
//	      | 'this' { '.' MemberSel }
//	      | Ident ':=' Expr
//	      | Ident [ '(' Args ')' ] { '.' MemberSel }
func (p *Parser) parseStmt() (ast.Stmt, error) {
	switch {
	case p.isKeyword("return"):
		return p.parseReturn()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("this"):
		return p.parseThisStmt()
	case p.s.MatchKind(token.IDENTIFIER):
		return p.parseIdentStmt()
	default:
		return nil, &UnexpectedTokenError{Got: p.s.Peek(), WantText: "statement"}
	}
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	kw := p.s.Next()
	r := &ast.Return{Line: kw.Line}
	if p.isKeyword("end") || p.isKeyword("else") || p.s.MatchKind(token.EOF) {
		return r, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	r.Expr = e
	return r, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	kw := p.s.Next()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.s.MatchAndConsumeKeywordRequired("loop"); err != nil {
		return nil, err
	}
	body, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body, Line: kw.Line}, nil
}

// parseIf parses the then/else sub-blocks as BodyBlock (no terminator
// consumed by either branch) and then consumes the single trailing 'end'
// itself — the block is shared across both branches, per spec.md §9(d).
func (p *Parser) parseIf() (ast.Stmt, error) {
	kw := p.s.Next()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.s.MatchAndConsumeKeywordRequired("then"); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBodyBlock()
	if err != nil {
		return nil, err
	}
	f := &ast.If{Cond: cond, Then: thenBlock, Line: kw.Line}
	if p.s.MatchAndConsumeKeyword("else") {
		elseBlock, err := p.parseBodyBlock()
		if err != nil {
			return nil, err
		}
		f.Else = elseBlock
	}
	if _, err := p.s.MatchAndConsumeKeywordRequired("end"); err != nil {
		return nil, err
	}
	return f, nil
}

// parseThisStmt handles both the assignment form `this.<name> := Expr` and
// the bare-expression form `this { .MemberSel }`, disambiguated by whether
// a ':=' follows the single field selector.
func (p *Parser) parseThisStmt() (ast.Stmt, error) {
	kw := p.s.Next()
	thisExpr := ast.NewThis(kw.Line)

	if !p.s.MatchText(".") {
		return &ast.ExprStmt{Expr: thisExpr, Line: kw.Line}, nil
	}
	p.s.Next() // consume '.'
	nameTok, err := p.s.Expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}

	if p.s.MatchText(":=") {
		p.s.Next()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		target := ast.NewFieldAccess(nameTok.Line, thisExpr, nameTok.Text)
		return &ast.Assignment{Target: target, Expr: rhs, Line: kw.Line}, nil
	}

	var e ast.Expr
	if p.s.MatchText("(") {
		p.s.Next()
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if _, err := p.s.ExpectText(")"); err != nil {
			return nil, err
		}
		e = ast.NewCall(nameTok.Line, thisExpr, nameTok.Text, args)
	} else {
		e = ast.NewFieldAccess(nameTok.Line, thisExpr, nameTok.Text)
	}
	e, err = p.parseMemberSelChain(e)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: e, Line: kw.Line}, nil
}

// parseIdentStmt handles `Ident ':=' Expr` and
// `Ident [ '(' Args ')' ] { '.' MemberSel }`.
func (p *Parser) parseIdentStmt() (ast.Stmt, error) {
	nameTok := p.s.Next()

	if p.s.MatchText(":=") {
		p.s.Next()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		target := ast.NewIdentifier(nameTok.Line, nameTok.Text)
		return &ast.Assignment{Target: target, Expr: rhs, Line: nameTok.Line}, nil
	}

	var e ast.Expr
	if p.s.MatchText("(") {
		p.s.Next()
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if _, err := p.s.ExpectText(")"); err != nil {
			return nil, err
		}
		e = ast.NewCall(nameTok.Line, nil, nameTok.Text, args)
	} else {
		e = ast.NewIdentifier(nameTok.Line, nameTok.Text)
	}
	e, err := p.parseMemberSelChain(e)
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: e, Line: nameTok.Line}, nil
}

// Package parser implements the recursive-descent parser described by
// spec.md §4.2: single-token lookahead, no error recovery, first failure
// aborts.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ocompiler/ocompilerc/internal/ast"
	"github.com/ocompiler/ocompilerc/pkg/token"
)

// Parser consumes a TokenStream and produces an *ast.Program.
type Parser struct {
	s *TokenStream
}

func New(tokens []token.Token) *Parser {
	return &Parser{s: NewTokenStream(tokens)}
}

// ParseProgram parses `Program := { ClassDecl }`.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.s.MatchKind(token.EOF) {
		class, err := p.parseClassDecl()
		if err != nil {
			return nil, err
		}
		prog.Classes = append(prog.Classes, class)
	}
	return prog, nil
}

// parseClassDecl parses:
//
//	ClassDecl := 'class' Ident [ 'extends' Ident ] 'is' { Member } 'end'
func (p *Parser) parseClassDecl() (*ast.ClassDecl, error) {
	if _, err := p.s.MatchAndConsumeKeywordRequired("class"); err != nil {
		return nil, err
	}
	nameTok, err := p.s.Expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	class := &ast.ClassDecl{Name: nameTok.Text, Line: nameTok.Line}

	if p.s.MatchAndConsumeKeyword("extends") {
		parentName, err := p.s.Expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		class.Parent = &ast.SimpleTypeRef{Name: parentName.Text}
	}

	if _, err := p.s.MatchAndConsumeKeywordRequired("is"); err != nil {
		return nil, err
	}

	for !p.isKeyword("end") {
		member, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		class.Members = append(class.Members, member)
	}
	if _, err := p.s.MatchAndConsumeKeywordRequired("end"); err != nil {
		return nil, err
	}
	if err := checkDuplicateConstructors(class); err != nil {
		return nil, err
	}
	return class, nil
}

// checkDuplicateConstructors rejects a second constructor whose parameter
// type names match an earlier one's exactly, textually, with no type
// resolution involved: a generalization of the duplicate-overload
// discipline internal/semantic/phase3_members.go enforces for methods,
// applied here because constructors never enter a class's overload
// tables.
func checkDuplicateConstructors(class *ast.ClassDecl) error {
	var seen [][]string
	for _, member := range class.Members {
		ctor, ok := member.(*ast.ConstructorDecl)
		if !ok {
			continue
		}
		sig := constructorSignature(ctor)
		for _, prior := range seen {
			if sameTypeNameList(prior, sig) {
				return &UnexpectedTokenError{
					Got:      token.New(token.KEYWORD, "this", ctor.Line),
					WantText: fmt.Sprintf("a constructor with a parameter list distinct from an earlier one in class %q", class.Name),
				}
			}
		}
		seen = append(seen, sig)
	}
	return nil
}

func constructorSignature(c *ast.ConstructorDecl) []string {
	sig := make([]string, len(c.Params))
	for i, param := range c.Params {
		sig[i] = param.Type.String()
	}
	return sig
}

func sameTypeNameList(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// parseMember parses:
//
//	Member := [ 'private' | 'public' ] 'var' VarDecl
//	        | 'method' MethodDecl
//	        | 'this'   ConstructorDecl
func (p *Parser) parseMember() (ast.MemberDecl, error) {
	vis := ast.VisDefault
	if p.s.MatchAndConsumeKeyword("private") {
		vis = ast.VisPrivate
	} else if p.s.MatchAndConsumeKeyword("public") {
		vis = ast.VisPublic
	}

	switch {
	case p.isKeyword("var"):
		p.s.Next()
		return p.parseVarDecl(vis)
	case p.isKeyword("method"):
		p.s.Next()
		return p.parseMethodDecl()
	case p.isKeyword("this"):
		p.s.Next()
		return p.parseConstructorDecl()
	default:
		return nil, &UnexpectedTokenError{Got: p.s.Peek(), WantText: "var, method, or this"}
	}
}

// parseVarDecl parses `VarDecl := Ident ':' Type [ '(' Args ')' ]?`.
func (p *Parser) parseVarDecl(vis ast.Visibility) (*ast.VarDecl, error) {
	nameTok, err := p.s.Expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.s.ExpectText(":"); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}

	v := &ast.VarDecl{Name: nameTok.Text, Type: typ, Visibility: vis, Line: nameTok.Line}

	if ok, _ := p.s.MatchAndConsume(token.SPECIAL_SYMBOL, "("); ok {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if _, err := p.s.ExpectText(")"); err != nil {
			return nil, err
		}
		v.Init = ast.NewCall(nameTok.Line, nil, typeName(typ), args)
	} else {
		v.Init = ast.NewClassNameExpr(nameTok.Line, typ)
	}
	return v, nil
}

// parseMethodDecl parses:
//
//	MethodDecl := Ident '(' Params ')' [ ':' Type ] [ 'is' Body ]
func (p *Parser) parseMethodDecl() (*ast.MethodDecl, error) {
	nameTok, err := p.s.Expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.s.ExpectText("("); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.s.ExpectText(")"); err != nil {
		return nil, err
	}

	m := &ast.MethodDecl{Name: nameTok.Text, Params: params, Line: nameTok.Line}

	if ok, _ := p.s.MatchAndConsume(token.SPECIAL_SYMBOL, ":"); ok {
		rt, err := p.parseType()
		if err != nil {
			return nil, err
		}
		m.ReturnType = rt
	}

	if p.s.MatchAndConsumeKeyword("is") {
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		m.Body = body
	}
	return m, nil
}

// parseConstructorDecl parses `ConstructorDecl := '(' Params ')' [ 'is' Body ]`.
func (p *Parser) parseConstructorDecl() (*ast.ConstructorDecl, error) {
	line := p.s.PeekAt(-1).Line
	if _, err := p.s.ExpectText("("); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err := p.s.ExpectText(")"); err != nil {
		return nil, err
	}
	c := &ast.ConstructorDecl{Params: params, Line: line}
	if p.s.MatchAndConsumeKeyword("is") {
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		c.Body = body
	}
	return c, nil
}

// parseParams parses `Params := ε | Param { ',' Param }`.
func (p *Parser) parseParams() ([]ast.Param, error) {
	var params []ast.Param
	if p.s.MatchText(")") {
		return params, nil
	}
	for {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if ok, _ := p.s.MatchAndConsume(token.SPECIAL_SYMBOL, ","); ok {
			continue
		}
		break
	}
	return params, nil
}

// parseParam parses `Param := Ident ':' Type`.
func (p *Parser) parseParam() (ast.Param, error) {
	nameTok, err := p.s.Expect(token.IDENTIFIER)
	if err != nil {
		return ast.Param{}, err
	}
	if _, err := p.s.ExpectText(":"); err != nil {
		return ast.Param{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return ast.Param{}, err
	}
	return ast.Param{Name: nameTok.Text, Type: typ}, nil
}

// parseType parses `Type := Ident [ '[' Type { ',' Type } ']' ]`.
func (p *Parser) parseType() (ast.TypeRef, error) {
	nameTok, err := p.s.Expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if ok, _ := p.s.MatchAndConsume(token.SPECIAL_SYMBOL, "["); ok {
		var args []ast.TypeRef
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if ok, _ := p.s.MatchAndConsume(token.SPECIAL_SYMBOL, ","); ok {
				continue
			}
			break
		}
		if _, err := p.s.ExpectText("]"); err != nil {
			return nil, err
		}
		return &ast.GenericTypeRef{Name: nameTok.Text, Args: args}, nil
	}
	return &ast.SimpleTypeRef{Name: nameTok.Text}, nil
}

// parseArgs parses a comma-separated expression list (used by both
// constructor-call var-init forms and Call argument lists).
func (p *Parser) parseArgs() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.s.MatchText(")") {
		return args, nil
	}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if ok, _ := p.s.MatchAndConsume(token.SPECIAL_SYMBOL, ","); ok {
			continue
		}
		break
	}
	return args, nil
}

// parseBody parses `Body := { 'var' VarDecl | Stmt } 'end'`, consuming the
// terminating 'end'. Used for method/constructor bodies and while-loop
// bodies. if/then/else sub-blocks use parseBodyBlock instead, which does
// NOT consume a terminator — spec.md §4.2/§9(d): "if" shares a single
// trailing "end" across both branches.
func (p *Parser) parseBody() (*ast.Block, error) {
	b, err := p.parseBodyBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.s.MatchAndConsumeKeywordRequired("end"); err != nil {
		return nil, err
	}
	return b, nil
}

// parseBodyBlock parses the `{ 'var' VarDecl | Stmt }` run without
// consuming a terminator. Stops at 'end' or 'else'.
func (p *Parser) parseBodyBlock() (*ast.Block, error) {
	b := &ast.Block{}
	for !p.isKeyword("end") && !p.isKeyword("else") && !p.s.MatchKind(token.EOF) {
		if p.s.MatchAndConsumeKeyword("var") {
			v, err := p.parseVarDecl(ast.VisDefault)
			if err != nil {
				return nil, err
			}
			b.Locals = append(b.Locals, v)
			continue
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, stmt)
	}
	return b, nil
}

func (p *Parser) isKeyword(text string) bool {
	cur := p.s.Peek()
	return cur.Kind == token.KEYWORD && cur.Text == text
}

func typeName(t ast.TypeRef) string {
	switch v := t.(type) {
	case *ast.SimpleTypeRef:
		return v.Name
	case *ast.GenericTypeRef:
		return v.Name
	default:
		return ""
	}
}

// parseNumberLiteral classifies NUMBER text as IntLit or RealLit, per
// spec.md §4.2: "A number token whose text contains '.' ... becomes
// RealLit; otherwise IntLit parsed as signed 64-bit."
func parseNumberLiteral(text string, line int) (ast.Expr, error) {
	if strings.ContainsAny(text, ".eE") {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, err
		}
		return ast.NewRealLit(line, v), nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, err
	}
	return ast.NewIntLit(line, v), nil
}

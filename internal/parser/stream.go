package parser

import "github.com/ocompiler/ocompilerc/pkg/token"

// TokenStream is a single-token-lookahead cursor over a pre-scanned token
// slice (spec.md §4.2), grounded on the teacher's parser.TokenCursor but
// simplified: O's grammar needs no backtracking, so the stream is mutable
// rather than the teacher's immutable Mark/ResetTo cursor.
type TokenStream struct {
	tokens []token.Token
	pos    int
}

func NewTokenStream(tokens []token.Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Peek returns the current token without consuming it.
func (s *TokenStream) Peek() token.Token {
	return s.tokens[s.pos]
}

// PeekAt returns the token n positions ahead (0 == Peek()), clamped to the
// last token (EOF) if n runs past the end of the stream.
func (s *TokenStream) PeekAt(n int) token.Token {
	i := s.pos + n
	if i >= len(s.tokens) {
		i = len(s.tokens) - 1
	}
	return s.tokens[i]
}

// Next consumes and returns the current token.
func (s *TokenStream) Next() token.Token {
	t := s.tokens[s.pos]
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}
	return t
}

// MatchKind reports whether the current token has the given kind, without
// consuming it.
func (s *TokenStream) MatchKind(kind token.Kind) bool {
	return s.Peek().Kind == kind
}

// MatchText reports whether the current token's text equals text, without
// consuming it.
func (s *TokenStream) MatchText(text string) bool {
	return s.Peek().Text == text
}

// MatchAndConsume consumes and returns the current token if it has the
// given kind and (when text != "") the given text.
func (s *TokenStream) MatchAndConsume(kind token.Kind, text string) (token.Token, bool) {
	cur := s.Peek()
	if cur.Kind != kind {
		return token.Token{}, false
	}
	if text != "" && cur.Text != text {
		return token.Token{}, false
	}
	return s.Next(), true
}

// MatchAndConsumeKeyword consumes and returns true if the current token is
// the KEYWORD with this text.
func (s *TokenStream) MatchAndConsumeKeyword(text string) bool {
	_, ok := s.MatchAndConsume(token.KEYWORD, text)
	return ok
}

// MatchAndConsumeKeywordRequired is MatchAndConsumeKeyword but fails with a
// descriptive error instead of returning false.
func (s *TokenStream) MatchAndConsumeKeywordRequired(text string) (token.Token, error) {
	cur := s.Peek()
	if cur.Kind != token.KEYWORD || cur.Text != text {
		return token.Token{}, &UnexpectedTokenError{Got: cur, WantText: text}
	}
	return s.Next(), nil
}

// Expect consumes and returns the current token if it has the given kind,
// or returns a descriptive error otherwise.
func (s *TokenStream) Expect(kind token.Kind) (token.Token, error) {
	cur := s.Peek()
	if cur.Kind != kind {
		return token.Token{}, &UnexpectedTokenError{Got: cur, WantKind: kind}
	}
	return s.Next(), nil
}

// ExpectText consumes and returns the current token if its text equals
// literal (any kind), or returns a descriptive error otherwise.
func (s *TokenStream) ExpectText(literal string) (token.Token, error) {
	cur := s.Peek()
	if cur.Text != literal {
		return token.Token{}, &UnexpectedTokenError{Got: cur, WantText: literal}
	}
	return s.Next(), nil
}

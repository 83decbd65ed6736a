// Package lexer scans O source text into a finite ordered sequence of
// tokens, following spec.md §4.1.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"

	"github.com/ocompiler/ocompilerc/pkg/token"
)

// letterSet classifies Unicode letters; the lexer additionally treats '_'
// as a letter per spec.md's "letter = Unicode letter or underscore".
var letterSet = runes.In(unicode.L)

func isLetter(r rune) bool {
	return r == '_' || letterSet.Contains(r)
}

func isDigit(r rune) bool {
	return unicode.IsDigit(r)
}

func isWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

// state is the lexer's current scanning mode, per spec.md §4.1.
type state int

const (
	start state = iota
	num
	iden
)

// Lexer is a character-driven state machine over a Unicode source string.
// It holds no knowledge of the parser; Scan runs it to completion.
type Lexer struct {
	input        string
	pos          int // byte offset of ch
	readPos      int // byte offset of next rune
	ch           rune
	line         int
	errorMessage string // description used when the next ERROR token closes
}

// New creates a Lexer over input. Callers are responsible for stripping a
// leading byte-order-mark before calling New — that is a driver-level
// input-handling concern (spec.md §1 Out of scope), not a lexer one.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input) && l.ch == 0
}

// Scan runs the lexer to completion and returns the full token sequence,
// terminated by an EOF token. Lexing never fails outright: malformed input
// surfaces as ERROR tokens in the stream (spec.md §4.1).
func Scan(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// NextToken produces the next token from the stream, advancing the lexer.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	if l.atEOF() {
		return token.New(token.EOF, "", l.line)
	}

	line := l.line

	switch {
	case isDigit(l.ch):
		return l.readNumber(line)
	case isLetter(l.ch):
		return l.readIdentifier(line)
	case l.ch == ':' && l.peekChar() == '=':
		l.readChar()
		l.readChar()
		return token.New(token.SPECIAL_SYMBOL, ":=", line)
	case token.Symbols[l.ch]:
		text := string(l.ch)
		l.readChar()
		return token.New(token.SPECIAL_SYMBOL, text, line)
	default:
		return l.readError(line)
	}
}

// skipWhitespaceAndComments discards runs of whitespace and '#' line
// comments, incrementing the line counter on every newline encountered
// (spec.md §4.1: "Line counter increments on every \n, also inside
// comments").
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == '\n':
			l.line++
			l.readChar()
		case isWhitespace(l.ch):
			l.readChar()
		case l.ch == '#':
			for l.ch != '\n' && !l.atEOF() {
				l.readChar()
			}
		default:
			return
		}
	}
}

// readNumber scans NUMBER per the state-machine description in spec.md
// §4.1: digits, optionally one '.' followed by more digits. If the
// character immediately following the number is a letter, or a second '.'
// after a fractional part, the whole run (including that trailing garbage)
// becomes an ERROR token instead. A '.' after an integer part that is not
// followed by a digit closes the number, so `5.Plus(3)` scans as NUMBER,
// '.', IDENTIFIER.
func (l *Lexer) readNumber(line int) token.Token {
	var sb strings.Builder

	for isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}

	fraction := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		fraction = true
		sb.WriteRune(l.ch)
		l.readChar()
		for isDigit(l.ch) {
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}

	if (fraction && l.ch == '.') || isLetter(l.ch) {
		return l.continueAsError(line, sb.String())
	}

	return token.New(token.NUMBER, sb.String(), line)
}

// readIdentifier scans IDEN: a letter followed by letters/digits, promoted
// to KEYWORD if it matches the keyword set.
func (l *Lexer) readIdentifier(line int) token.Token {
	var sb strings.Builder
	for isLetter(l.ch) || isDigit(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	text := sb.String()
	if token.IsKeyword(text) {
		return token.New(token.KEYWORD, text, line)
	}
	return token.New(token.IDENTIFIER, text, line)
}

// readError enters error mode directly from an unrecognized character,
// accumulating non-whitespace characters until the next whitespace
// boundary (spec.md §4.1).
func (l *Lexer) readError(line int) token.Token {
	return l.continueAsError(line, "")
}

func (l *Lexer) continueAsError(line int, prefix string) token.Token {
	var sb strings.Builder
	sb.WriteString(prefix)
	for !l.atEOF() && !isWhitespace(l.ch) {
		sb.WriteRune(l.ch)
		l.readChar()
	}
	text := sb.String()
	return token.NewError(text, line, "unrecognized token: "+text)
}

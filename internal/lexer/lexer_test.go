package lexer

import (
	"testing"

	"github.com/ocompiler/ocompilerc/pkg/token"
)

func TestNextToken_Keywords(t *testing.T) {
	input := `class extends is end var method this return while loop if then else`
	l := New(input)

	wantKeywords := []string{"class", "extends", "is", "end", "var", "method",
		"this", "return", "while", "loop", "if", "then", "else"}
	for _, want := range wantKeywords {
		tok := l.NextToken()
		if tok.Kind != token.KEYWORD || tok.Text != want {
			t.Fatalf("got %v, want KEYWORD %q", tok, want)
		}
	}
	if tok := l.NextToken(); tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", tok)
	}
}

func TestNextToken_NumbersAndIdentifiers(t *testing.T) {
	input := `count 42 3.14 _hidden x1`
	l := New(input)

	want := []struct {
		kind token.Kind
		text string
	}{
		{token.IDENTIFIER, "count"},
		{token.NUMBER, "42"},
		{token.NUMBER, "3.14"},
		{token.IDENTIFIER, "_hidden"},
		{token.IDENTIFIER, "x1"},
	}
	for _, w := range want {
		tok := l.NextToken()
		if tok.Kind != w.kind || tok.Text != w.text {
			t.Fatalf("got %v, want {%s %q}", tok, w.kind, w.text)
		}
	}
}

func TestNextToken_AssignOperator(t *testing.T) {
	l := New(`x := 1`)
	_ = l.NextToken() // x

	tok := l.NextToken()
	if tok.Kind != token.SPECIAL_SYMBOL || tok.Text != ":=" {
		t.Fatalf("expected SPECIAL_SYMBOL \":=\", got %v", tok)
	}
}

func TestNextToken_LineCounting(t *testing.T) {
	input := "class A is\n  var x: Integer\nend"
	l := New(input)

	var lastLine int
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
		lastLine = tok.Line
	}
	if lastLine != 3 {
		t.Fatalf("expected last token on line 3, got %d", lastLine)
	}
}

func TestNextToken_CommentsSkippedAndCountLines(t *testing.T) {
	input := "x # a comment\ny"
	l := New(input)

	first := l.NextToken()
	if first.Text != "x" || first.Line != 1 {
		t.Fatalf("unexpected first token: %v", first)
	}
	second := l.NextToken()
	if second.Text != "y" || second.Line != 2 {
		t.Fatalf("unexpected second token: %v", second)
	}
}

func TestNextToken_MalformedNumberBecomesError(t *testing.T) {
	l := New(`3.14.15`)
	tok := l.NextToken()
	if tok.Kind != token.ERROR {
		t.Fatalf("expected ERROR token, got %v", tok)
	}
	if tok.ErrorMessage == "" {
		t.Fatal("expected a non-empty ErrorMessage")
	}
}

func TestNextToken_NumberFollowedByLetterBecomesError(t *testing.T) {
	l := New(`42abc`)
	tok := l.NextToken()
	if tok.Kind != token.ERROR {
		t.Fatalf("expected ERROR token, got %v", tok)
	}
	if tok.Text != "42abc" {
		t.Fatalf("expected full run captured, got %q", tok.Text)
	}
}

func TestNextToken_UnrecognizedCharacter(t *testing.T) {
	l := New(`@@@`)
	tok := l.NextToken()
	if tok.Kind != token.ERROR || tok.Text != "@@@" {
		t.Fatalf("expected ERROR \"@@@\", got %v", tok)
	}
}

func TestScan_TerminatesWithEOF(t *testing.T) {
	tokens := Scan(`class A is end`)
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		t.Fatalf("expected token stream to end with EOF, got %v", tokens)
	}
}

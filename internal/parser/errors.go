package parser

import (
	"fmt"

	"github.com/ocompiler/ocompilerc/pkg/token"
)

// UnexpectedTokenError is the parser's one failure shape: parsing is not
// error-recovering, so the first one aborts (spec.md §4.2).
type UnexpectedTokenError struct {
	Got      token.Token
	WantKind token.Kind
	WantText string
}

func (e *UnexpectedTokenError) Error() string {
	switch {
	case e.WantText != "":
		return fmt.Sprintf("unexpected token %q at line %d: expected %q", e.Got.Text, e.Got.Line, e.WantText)
	default:
		return fmt.Sprintf("unexpected token %q at line %d: expected %s", e.Got.Text, e.Got.Line, e.WantKind)
	}
}

func (e *UnexpectedTokenError) Line() int { return e.Got.Line }

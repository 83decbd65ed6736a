// Package cerrors formats compiler errors with source context and a line
// indicator, grounded on the teacher's internal/errors package. It is
// named cerrors (not errors) only to avoid shadowing the stdlib package
// inside files that need both.
package cerrors

import (
	"fmt"
	"strings"
)

// CompilerError is a single compilation failure: lexical, syntactic,
// semantic, or code-generation (spec.md §7). Propagation policy is
// abort-on-first: every error aborts the compilation immediately.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Line    int
}

func New(line int, message, source, file string) *CompilerError {
	return &CompilerError{Message: message, Source: source, File: file, Line: line}
}

func (e *CompilerError) Error() string { return e.Format() }

// Format renders "Error in <file>:<line>\n<line> | <source>\n<message>".
func (e *CompilerError) Format() string {
	var sb strings.Builder
	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d\n", e.File, e.Line)
	} else {
		fmt.Fprintf(&sb, "Error at line %d\n", e.Line)
	}
	if line := e.sourceLine(e.Line); line != "" {
		fmt.Fprintf(&sb, "%4d | %s\n", e.Line, line)
	}
	sb.WriteString(e.Message)
	return sb.String()
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// FormatErrors renders one or many CompilerErrors, per the teacher's
// FormatErrors helper.
func FormatErrors(errs []*CompilerError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Compilation failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(e.Format())
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

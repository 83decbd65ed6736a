package codegen

import (
	"fmt"
	"strings"

	"github.com/ocompiler/ocompilerc/internal/ast"
	"github.com/ocompiler/ocompilerc/internal/semantic"
	"github.com/ocompiler/ocompilerc/internal/types"
)

// stackLimit/localsLimit are fixed rather than computed, matching
// spec.md §4.7's "Generator does not attempt stack-depth analysis;
// .limit stack and .limit locals are emitted as fixed conservative
// constants."
const (
	stackLimit  = 32
	localsLimit = 16
)

// emitMethods walks the class's members in declaration order so the
// generated methods appear in source order, then emits every overload
// of each method name once.
func (g *Generator) emitMethods(sb *strings.Builder, class *semantic.ClassSymbol) error {
	seen := map[string]bool{}
	for _, member := range class.Decl.Members {
		decl, ok := member.(*ast.MethodDecl)
		if !ok || seen[decl.Name] {
			continue
		}
		seen[decl.Name] = true
		for _, method := range class.Overloads(decl.Name) {
			if err := g.emitMethod(sb, class, method); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) emitMethod(sb *strings.Builder, class *semantic.ClassSymbol, method *semantic.MethodSymbol) error {
	desc := methodDescriptor(method.ParamTypes(), method.ReturnType)
	fmt.Fprintf(sb, ".method public %s%s\n", method.Name, desc)
	fmt.Fprintf(sb, "    .limit stack %d\n", stackLimit)
	fmt.Fprintf(sb, "    .limit locals %d\n", localsLimit)

	c := newCtx(g, class, method)
	var body []string
	if method.Decl != nil && method.Decl.Body != nil {
		lines, err := c.lowerBlock(method.Decl.Body)
		if err != nil {
			return fmt.Errorf("method %s: %w", method.Name, err)
		}
		body = lines
	}
	if !endsInReturn(body) {
		body = append(body, returnOp(method.ReturnType))
	}
	for _, line := range body {
		writeInstr(sb, line)
	}
	sb.WriteString(".end method\n\n")

	if class.Name == "Program" && method.Name == "main" && len(method.Params) == 0 && types.Equals(method.ReturnType, types.Void) {
		g.emitMainWrapper(sb, class)
	}
	return nil
}

// emitMainWrapper emits the JVM-entry static main that instantiates
// Program, runs its default constructor, and calls the user-level
// receiver-less main() (spec.md §4.7 "JVM entry point").
func (g *Generator) emitMainWrapper(sb *strings.Builder, class *semantic.ClassSymbol) {
	sb.WriteString(".method public static main([Ljava/lang/String;)V\n")
	fmt.Fprintf(sb, "    .limit stack %d\n", stackLimit)
	fmt.Fprintf(sb, "    .limit locals %d\n", localsLimit)
	writeInstr(sb, fmt.Sprintf("new %s", class.Name))
	writeInstr(sb, "dup")
	writeInstr(sb, fmt.Sprintf("invokespecial %s/<init>()V", class.Name))
	writeInstr(sb, fmt.Sprintf("invokevirtual %s/main()V", class.Name))
	writeInstr(sb, "return")
	sb.WriteString(".end method\n\n")
}

func writeInstr(sb *strings.Builder, line string) {
	if strings.HasSuffix(line, ":") {
		sb.WriteString(line)
		sb.WriteString("\n")
		return
	}
	sb.WriteString("    ")
	sb.WriteString(line)
	sb.WriteString("\n")
}

func endsInReturn(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	last := lines[len(lines)-1]
	return last == "return" || strings.HasSuffix(last, "return")
}

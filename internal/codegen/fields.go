package codegen

import (
	"fmt"
	"strings"

	"github.com/ocompiler/ocompilerc/internal/semantic"
	"github.com/ocompiler/ocompilerc/internal/types"
)

// emitFields writes one `.field protected <name> <descriptor>` line per
// field the class itself declares (spec.md §4.7) — inherited fields are
// not re-declared here; they live in the ancestor's own .j file.
func (g *Generator) emitFields(sb *strings.Builder, class *semantic.ClassSymbol) {
	for _, name := range class.OwnFields() {
		field := class.FieldDecl(name)
		fmt.Fprintf(sb, ".field protected %s %s\n", name, types.Descriptor(field.Type))
	}
	if len(class.OwnFields()) > 0 {
		sb.WriteString("\n")
	}
}

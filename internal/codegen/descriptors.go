package codegen

import (
	"strings"

	"github.com/ocompiler/ocompilerc/internal/types"
)

// methodDescriptor builds a JVM method descriptor "(<params>)<return>".
func methodDescriptor(params []types.Type, ret types.Type) string {
	var sb strings.Builder
	sb.WriteString("(")
	for _, p := range params {
		sb.WriteString(types.Descriptor(p))
	}
	sb.WriteString(")")
	sb.WriteString(types.Descriptor(ret))
	return sb.String()
}

// loadOp/storeOp pick the JVM opcode family for a type: I for
// Integer/Bool, D for Real, A for everything else (object references,
// including arrays).
func loadOp(t types.Type) string  { return opFor(t, "load") }
func storeOp(t types.Type) string { return opFor(t, "store") }
func returnOp(t types.Type) string {
	if t == nil || types.Equals(t, types.Void) {
		return "return"
	}
	return opFor(t, "return")
}

func opFor(t types.Type, suffix string) string {
	switch types.Descriptor(t) {
	case "I", "Z":
		return "i" + suffix
	case "D":
		return "d" + suffix
	default:
		return "a" + suffix
	}
}

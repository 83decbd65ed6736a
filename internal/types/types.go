// Package types models the "ClassName" type-reference shape (spec.md §3)
// as resolved, comparable Type values used by the semantic analyzer and
// code generator — as opposed to internal/ast's TypeRef, which is the
// unresolved syntactic form straight out of the parser.
package types

import (
	"fmt"
	"strings"
)

// Type is a resolved type: a built-in scalar, a user class, or a generic
// instantiation (only Array[T] is used in practice — spec.md Non-goals
// exclude user-defined generics).
type Type interface {
	typeNode()
	String() string
}

// Simple is either a built-in scalar/void or a user class name.
type Simple struct {
	Name string
}

func (*Simple) typeNode()        {}
func (s *Simple) String() string { return s.Name }

// Generic is a type constructor applied to type arguments (Array[T]).
type Generic struct {
	Name string
	Args []Type
}

func (*Generic) typeNode() {}
func (g *Generic) String() string {
	parts := make([]string, len(g.Args))
	for i, a := range g.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", g.Name, strings.Join(parts, ", "))
}

type unknownType struct{}

func (*unknownType) typeNode()        {}
func (*unknownType) String() string   { return "Unknown" }

// Unknown is produced when a field/method is accessed through a receiver
// whose static type cannot carry members (spec.md §4.4 phase 5: "If the
// receiver is a built-in type, FieldAccess yields Unknown"). It never
// fails a check — Assignable treats it as compatible with anything.
var Unknown Type = &unknownType{}

// Built-in scalar and void types.
var (
	Integer = &Simple{Name: "Integer"}
	Real    = &Simple{Name: "Real"}
	Bool    = &Simple{Name: "Bool"}
	Void    = &Simple{Name: "void"}
)

// ArrayOf builds the Array[T] generic instantiation.
func ArrayOf(elem Type) *Generic {
	return &Generic{Name: "Array", Args: []Type{elem}}
}

// IsUnknown reports whether t is the Unknown sentinel.
func IsUnknown(t Type) bool {
	_, ok := t.(*unknownType)
	return ok
}

// IsBuiltinScalar reports whether t is one of Integer/Real/Bool/void.
func IsBuiltinScalar(t Type) bool {
	s, ok := t.(*Simple)
	if !ok {
		return false
	}
	switch s.Name {
	case "Integer", "Real", "Bool", "void":
		return true
	default:
		return false
	}
}

// IsArray reports whether t is an Array[T] instantiation and, if so,
// returns its element type.
func IsArray(t Type) (Type, bool) {
	g, ok := t.(*Generic)
	if !ok || g.Name != "Array" || len(g.Args) != 1 {
		return nil, false
	}
	return g.Args[0], true
}

// Equals is structural equality, per spec.md §3 ("Equality is structural").
func Equals(a, b Type) bool {
	switch at := a.(type) {
	case *Simple:
		bt, ok := b.(*Simple)
		return ok && at.Name == bt.Name
	case *Generic:
		bt, ok := b.(*Generic)
		if !ok || at.Name != bt.Name || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !Equals(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	case *unknownType:
		_, ok := b.(*unknownType)
		return ok
	default:
		return false
	}
}

// SlotSize returns the number of JVM local-variable slots a value of this
// type consumes (spec.md §4.8): 2 for Real/Double, 1 otherwise.
func SlotSize(t Type) int {
	if s, ok := t.(*Simple); ok && s.Name == "Real" {
		return 2
	}
	return 1
}

// Descriptor returns the JVM type descriptor for t (spec.md §4.7). Every
// *Simple name other than a built-in takes the "L<Name>;" form, whether or
// not a class of that name exists.
func Descriptor(t Type) string {
	switch v := t.(type) {
	case *Simple:
		switch v.Name {
		case "Integer", "Int":
			return "I"
		case "Real", "Double":
			return "D"
		case "Bool", "Boolean":
			return "Z"
		case "void", "Void":
			return "V"
		default:
			return "L" + v.Name + ";"
		}
	case *Generic:
		if v.Name == "Array" && len(v.Args) == 1 {
			switch elemDescriptor(v.Args[0]) {
			case "I":
				return "[I"
			case "D":
				return "[D"
			case "Z":
				return "[Z"
			default:
				return "[Ljava/lang/Object;"
			}
		}
		return "Ljava/lang/Object;"
	default:
		return "Ljava/lang/Object;"
	}
}

func elemDescriptor(t Type) string {
	if s, ok := t.(*Simple); ok {
		switch s.Name {
		case "Integer", "Int":
			return "I"
		case "Real", "Double":
			return "D"
		case "Bool", "Boolean":
			return "Z"
		}
	}
	return ""
}

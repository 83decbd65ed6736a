// Package codegen walks the optimized AST and class table produced by
// internal/semantic and emits Jasmin assembly text, one file per declared
// class (spec.md §4.7), grounded on the generator/emitter shape of the
// teacher pack's its-hmny-nand2tetris vm.CodeGenerator: a small struct
// wrapping the thing to translate, with Generate returning a map of
// named outputs and an error, and one specialized Generate<X> method per
// AST shape.
package codegen

import (
	"fmt"
	"strings"

	"github.com/ocompiler/ocompilerc/internal/semantic"
)

// Generator emits Jasmin text for every class in a semantic.Result.
// labelCounter is a single monotonically increasing counter shared across
// every method compiled by this instance (spec.md §9: "Label generation").
type Generator struct {
	classes      *semantic.ClassTable
	labelCounter int
}

func New(classes *semantic.ClassTable) *Generator {
	return &Generator{classes: classes}
}

// Generate emits one .j file per class, keyed by "<ClassName>.j". Output
// is buffered entirely in memory and returned only once every class has
// generated successfully (spec.md §5: "the generator should write all
// class files or none").
func (g *Generator) Generate() (map[string]string, error) {
	out := make(map[string]string)
	for _, class := range g.classes.Classes() {
		text, err := g.generateClass(class)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", class.Name, err)
		}
		out[class.Name+".j"] = text
	}
	return out, nil
}

func (g *Generator) generateClass(class *semantic.ClassSymbol) (string, error) {
	var sb strings.Builder

	superName := "java/lang/Object"
	if class.Parent != nil {
		superName = class.Parent.Name
	}
	fmt.Fprintf(&sb, ".class public %s\n", class.Name)
	fmt.Fprintf(&sb, ".super %s\n\n", superName)

	g.emitFields(&sb, class)
	if err := g.emitConstructors(&sb, class, superName); err != nil {
		return "", err
	}
	if err := g.emitMethods(&sb, class); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// nextLabel returns the next globally unique label suffix for this
// generator instance.
func (g *Generator) nextLabel(prefix string) string {
	g.labelCounter++
	return fmt.Sprintf("%s_%d", prefix, g.labelCounter)
}

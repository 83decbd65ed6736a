package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ocompilerc",
	Short: "Compiler for the O language, targeting Jasmin/JVM bytecode",
	Long: `ocompilerc compiles a single .o source file into one Jasmin (.j)
assembly file per declared class.

O is a small class-based, statically-typed language: classes with single
inheritance, fields, methods, constructors, and a fixed set of built-in
scalar and Array[T] types. ocompilerc lexes, parses, runs six semantic
passes (class registration, inheritance resolution, member declaration,
name resolution, type checking, optimization), then emits Jasmin text.`,
	Version: Version,
	RunE:    compile,
	Args:    cobra.MaximumNArgs(1),
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	registerCompileFlags(rootCmd)
}

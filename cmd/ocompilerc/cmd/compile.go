package cmd

import (
	"fmt"
	"os"

	"github.com/ocompiler/ocompilerc/internal/config"
	"github.com/ocompiler/ocompilerc/internal/driver"
	"github.com/spf13/cobra"
)

var (
	outputDir     string
	interactive   bool
	diagnoseFlags bool
)

func registerCompileFlags(c *cobra.Command) {
	c.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for generated .j files")
	c.Flags().BoolVar(&interactive, "interactive", false, "prompt for file vs. console input (spec.md §6)")
	c.Flags().BoolVarP(&diagnoseFlags, "verbose", "v", false, "print the token stream, class table, and AST dumps")
}

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile an O source file to Jasmin assembly",
	Long: `Compile runs the full pipeline: lex, parse, analyze (six semantic
passes including optimization), then emit one .j file per declared class.

Examples:
  ocompilerc compile Program.o
  ocompilerc compile Program.o -o build/
  ocompilerc compile --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: compile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	registerCompileFlags(compileCmd)
}

func compile(_ *cobra.Command, args []string) error {
	proj, err := config.Load(".ocompiler.yaml")
	if err != nil {
		return fmt.Errorf("failed to load .ocompiler.yaml: %w", err)
	}

	filename := proj.Source
	if len(args) == 1 {
		filename = args[0]
	}

	var source string
	if interactive {
		text, exit, err := driver.ChooseInputSource(os.Stdin, os.Stdout, filename)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
		source = text
	} else {
		if filename == "" {
			return fmt.Errorf("no input file given (pass a path or set 'source' in .ocompiler.yaml)")
		}
		text, err := driver.ReadSource(filename)
		if err != nil {
			return err
		}
		source = text
	}

	dir := outputDir
	if dir == "" {
		dir = proj.OutputDir
	}

	return driver.Compile(driver.Options{
		Source:   source,
		File:     filename,
		OutDir:   dir,
		Diagnose: diagnoseFlags,
	})
}

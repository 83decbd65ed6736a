package cmd

import (
	"fmt"

	"github.com/ocompiler/ocompilerc/internal/driver"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse an O file and print the AST before optimization",
	Args:  cobra.ExactArgs(1),
	RunE:  parseFile,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseFile(_ *cobra.Command, args []string) error {
	filename := args[0]
	source, err := driver.ReadSource(filename)
	if err != nil {
		return err
	}

	tokens := driver.Lex(source)
	if err := driver.CheckLexErrors(tokens, source, filename); err != nil {
		return err
	}

	program, err := driver.Parse(tokens, source, filename)
	if err != nil {
		return err
	}
	fmt.Println(program.String())
	return nil
}

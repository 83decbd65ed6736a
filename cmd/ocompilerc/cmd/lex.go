package cmd

import (
	"fmt"

	"github.com/ocompiler/ocompilerc/internal/driver"
	"github.com/ocompiler/ocompilerc/pkg/token"
	"github.com/spf13/cobra"
)

var lexOnlyErrors bool

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize an O file and print the resulting tokens",
	Long: `Tokenize an O source file and print the token stream.

Examples:
  ocompilerc lex Program.o
  ocompilerc lex --only-errors Program.o`,
	Args: cobra.ExactArgs(1),
	RunE: lexFile,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&lexOnlyErrors, "only-errors", false, "show only ERROR tokens")
}

func lexFile(_ *cobra.Command, args []string) error {
	filename := args[0]
	source, err := driver.ReadSource(filename)
	if err != nil {
		return err
	}

	tokens := driver.Lex(source)
	errorCount := 0
	for _, tok := range tokens {
		isError := tok.Kind == token.ERROR
		if isError {
			errorCount++
		}
		if lexOnlyErrors && !isError {
			continue
		}
		if tok.Kind == token.EOF {
			fmt.Println("EOF")
			continue
		}
		fmt.Printf("[%-14s] %q @%d\n", tok.Kind, tok.Text, tok.Line)
	}

	if lexOnlyErrors && errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

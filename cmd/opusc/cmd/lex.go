package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opuslang/opusc/internal/diagnostics"
	"github.com/opuslang/opusc/internal/lexer"
	"github.com/opuslang/opusc/internal/token"
)

var lexCmd = &cobra.Command{
	Use:   "lex <source_file.opus>",
	Short: "Tokenize a file and print its token stream",
	Long: `lex tokenizes an Opus source file and prints one line per token in the
success wire format from §6: <Token:Kind, Lexeme:"lexeme"> at location L:C

Error tokens print in the error wire format instead, so a file with
unrecognizable input still produces a full token dump rather than
stopping at the first problem. An unclosed bracket is only discoverable
once the whole stream has been read, so it prints after the token dump
rather than inline with the token that triggered it.`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}

	l := lexer.New(src)
	errorCount := 0
	for {
		tok := l.NextToken()
		if tok.Kind == token.Error {
			errorCount++
			fmt.Fprintf(os.Stderr, "<ERROR:%s, Lexeme:%q> at location %s\n", tok.ErrorKind, tok.Lexeme, tok.Pos)
			continue
		}
		fmt.Printf("<Token:%s, Lexeme:%q> at location %s\n", tok.Kind, tok.Lexeme, tok.Pos)
		if tok.Kind == token.EOF {
			break
		}
	}

	streamDiags := streamDiagnostics(l)
	if len(streamDiags) > 0 {
		fmt.Fprint(os.Stderr, diagnostics.FormatAll(streamDiags))
	}

	if errorCount > 0 || len(streamDiags) > 0 {
		return exitError{code: ExitLexParse}
	}
	return nil
}

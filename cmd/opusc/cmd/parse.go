package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opuslang/opusc/internal/ast"
	"github.com/opuslang/opusc/internal/diagnostics"
	"github.com/opuslang/opusc/internal/lexer"
	"github.com/opuslang/opusc/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse <source_file.opus>",
	Short: "Parse a file and print its AST dump",
	Long: `parse tokenizes and parses an Opus source file and prints the resulting
AST as a box-drawing-prefixed tree (§6), one node per line. Parser errors
print in the two-line "Parsing Error" wire format on standard error; the
partial tree (with *ast.Error nodes spliced in at each failed production)
still prints on standard output, since panic-mode recovery always
produces a full Program.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}

	lx := lexer.New(src)
	p := parser.New(lx)
	prog, diags := p.Parse()
	diags = append(diags, streamDiagnostics(lx)...)

	fmt.Print(ast.Dump(prog))

	if len(diags) > 0 {
		fmt.Fprint(os.Stderr, diagnostics.FormatAll(diags))
		return exitError{code: ExitLexParse}
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opuslang/opusc/internal/ast"
	"github.com/opuslang/opusc/internal/diagnostics"
	"github.com/opuslang/opusc/internal/lexer"
	"github.com/opuslang/opusc/internal/parser"
	"github.com/opuslang/opusc/internal/semantic"
	"github.com/opuslang/opusc/internal/symtab"
)

var dumpSymbols bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <source_file.opus>",
	Short: "Parse and semantically analyze a file, printing its annotated AST",
	Long: `analyze runs the full front end — lex, parse, semantic analysis — and
prints the annotated AST (each expression's dump line includes its
inferred type; folded values are not printed). Pass --symbols to print the surviving symbol
table instead, in the fixed-column format from §6.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&dumpSymbols, "symbols", false, "print the symbol table instead of the AST")
}

func runAnalyze(_ *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}

	lx := lexer.New(src)
	p := parser.New(lx)
	prog, parseDiags := p.Parse()
	parseDiags = append(parseDiags, streamDiagnostics(lx)...)
	if len(parseDiags) > 0 {
		fmt.Fprint(os.Stderr, diagnostics.FormatAll(parseDiags))
		return exitError{code: ExitLexParse}
	}

	analyzer := semantic.New()
	ok := analyzer.Analyze(prog)

	if dumpSymbols {
		fmt.Print(symtab.Dump(analyzer.SymbolTable()))
	} else {
		fmt.Print(ast.Dump(prog))
	}

	if !ok {
		fmt.Fprint(os.Stderr, diagnostics.FormatAll(analyzer.Diagnostics()))
		return exitError{code: ExitAnalysis}
	}
	return nil
}

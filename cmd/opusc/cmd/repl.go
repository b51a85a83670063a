package cmd

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/opuslang/opusc/internal/ast"
	"github.com/opuslang/opusc/internal/diagnostics"
	"github.com/opuslang/opusc/internal/lexer"
	"github.com/opuslang/opusc/internal/parser"
	"github.com/opuslang/opusc/internal/semantic"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Lex, parse, and analyze one line of Opus at a time",
	Long: `repl is an interactive line-at-a-time front end for manual debugging: it
tokenizes, parses, and semantically analyzes whatever you type, printing
the resulting AST dump and any diagnostics. It carries no state across
lines beyond what a single statement's Program and fresh symbol table
would ever have — there is no runtime to evaluate against.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

var (
	replPrompt  = color.New(color.FgCyan)
	replDiagCol = color.New(color.FgRed)
)

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	rl, err := readline.New("opus> ")
	if err != nil {
		return exitError{code: ExitIO, message: err.Error()}
	}
	defer rl.Close()

	replPrompt.Println("opusc repl — type a statement, Ctrl+D to exit")

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rl.SaveHistory(line)
		evalLine(line)
	}
	return nil
}

func evalLine(line string) {
	lx := lexer.New(line + "\n")
	p := parser.New(lx)
	prog, diags := p.Parse()
	diags = append(diags, streamDiagnostics(lx)...)
	if len(diags) > 0 {
		replDiagCol.Print(diagnostics.FormatAll(diags))
		return
	}

	analyzer := semantic.New()
	if !analyzer.Analyze(prog) {
		replDiagCol.Print(diagnostics.FormatAll(analyzer.Diagnostics()))
		return
	}

	fmt.Print(ast.Dump(prog))
}

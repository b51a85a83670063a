// Package cmd implements the opusc command tree: a root command that
// performs the §6 single-file compile contract, plus lex/parse/analyze
// debug subcommands and an interactive repl — grounded on the teacher's
// `cmd/dwscript/cmd` layout (root.go's package-level rootCmd, one file
// per subcommand, PersistentFlags for cross-cutting switches).
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/opuslang/opusc/internal/config"
	"github.com/opuslang/opusc/internal/diagnostics"
	"github.com/opuslang/opusc/internal/lexer"
	"github.com/opuslang/opusc/internal/parser"
	"github.com/opuslang/opusc/internal/semantic"
)

// Exit codes for the single-file compile contract (§6): distinct values
// per failure layer so scripts invoking opusc can tell them apart.
const (
	ExitOK = iota
	ExitUsage
	ExitIO
	ExitLexParse
	ExitAnalysis
)

var (
	configPath string
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "opusc <source_file.opus>",
	Short: "Front end for the Opus compiler: lex, parse, and type-check a single file",
	Long: `opusc reads a single .opus source file, lexes and parses it into an
abstract syntax tree, and runs semantic analysis over that tree: name
resolution, type inference and checking, and constant folding.

It produces no executable output — codegen is out of scope. A clean run
exits 0 silently; any diagnostic is written to standard error and the
process exits non-zero.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCompile,
}

// Execute runs the root command tree and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(exitError); ok {
			if exitErr.message != "" {
				fmt.Fprintln(os.Stderr, exitErr.message)
			}
			return exitErr.code
		}
		fmt.Fprintln(os.Stderr, err)
		return ExitIO
	}
	return ExitOK
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to an .opusrc.yaml config file (read by the compile command only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized diagnostics (compile command only)")
	// Set here rather than in the literal: usageError reads rootCmd.
	rootCmd.Args = func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return usageError()
		}
		return nil
	}
}

// exitError carries a specific process exit code through cobra's error
// return path, which otherwise only distinguishes error/no-error.
type exitError struct {
	code    int
	message string
}

func (e exitError) Error() string { return e.message }

func usageError() error {
	return exitError{code: ExitUsage, message: fmt.Sprintf("Usage: %s <source_file.opus>", rootCmd.Name())}
}

func loadConfig(sourcePath string) *config.Config {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load(filepath.Dir(sourcePath))
	}
	if err != nil {
		cfg = config.Default()
	}
	if noColor {
		off := false
		cfg.Color = &off
	}
	return cfg
}

func runCompile(_ *cobra.Command, args []string) error {
	path := args[0]
	if filepath.Ext(path) != ".opus" {
		return exitError{code: ExitUsage, message: fmt.Sprintf("%s: not the source code (expected a .opus file)", path)}
	}

	cfg := loadConfig(path)
	color.NoColor = !cfg.ColorEnabled()

	content, err := os.ReadFile(path)
	if err != nil {
		return exitError{code: ExitIO, message: fmt.Sprintf("%s: %v", path, err)}
	}

	lx := lexer.New(string(content))
	p := parser.New(lx)
	prog, parseDiags := p.Parse()
	allDiags := append(parseDiags, streamDiagnostics(lx)...)
	if len(allDiags) > 0 {
		fmt.Fprint(os.Stderr, diagnostics.FormatAll(allDiags))
		return exitError{code: ExitLexParse}
	}

	analyzer := semantic.New()
	if ok := analyzer.Analyze(prog); !ok {
		fmt.Fprint(os.Stderr, diagnostics.FormatAll(analyzer.Diagnostics()))
		return exitError{code: ExitAnalysis}
	}

	return nil
}

// streamDiagnostics folds a lexer's end-of-stream findings (currently
// just unclosed brackets, reported only once NextToken has reached EOF)
// into ordinary diagnostics, so they are never silently dropped by a
// caller that only looked at parser diagnostics.
func streamDiagnostics(lx *lexer.Lexer) []diagnostics.Diagnostic {
	streamErrs := lx.StreamErrors()
	if len(streamErrs) == 0 {
		return nil
	}
	out := make([]diagnostics.Diagnostic, len(streamErrs))
	for i, se := range streamErrs {
		out[i] = diagnostics.Lexer(se.ErrorKind, se.Lexeme, se.Pos)
	}
	return out
}

// readSource loads and validates a .opus file the same way runCompile
// does, shared by the lex/parse/analyze debug subcommands.
func readSource(args []string) (string, error) {
	if len(args) != 1 {
		return "", usageError()
	}
	path := args[0]
	if filepath.Ext(path) != ".opus" {
		return "", exitError{code: ExitUsage, message: fmt.Sprintf("%s: not the source code (expected a .opus file)", path)}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", exitError{code: ExitIO, message: fmt.Sprintf("%s: %v", path, err)}
	}
	return string(content), nil
}

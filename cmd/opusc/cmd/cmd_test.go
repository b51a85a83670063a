package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSource drops src into a fresh *.opus file under t.TempDir() and
// returns its path, so each test exercises the full readSource -> lex ->
// parse -> analyze pipeline against a real file on disk.
func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.opus")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

// captureOutput redirects os.Stdout and os.Stderr for the duration of fn
// and returns what each collected. The cmd package's subcommands print
// straight to os.Stdout/os.Stderr rather than a cobra-supplied writer, so
// this is the only way to observe their output without exec'ing a binary.
func captureOutput(t *testing.T, fn func() error) (stdout, stderr string, runErr error) {
	t.Helper()

	origOut, origErr := os.Stdout, os.Stderr
	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	errR, errW, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout, os.Stderr = outW, errW

	runErr = fn()

	outW.Close()
	errW.Close()
	os.Stdout, os.Stderr = origOut, origErr

	outBytes, _ := io.ReadAll(outR)
	errBytes, _ := io.ReadAll(errR)
	return string(outBytes), string(errBytes), runErr
}

func TestRunCompileSucceedsOnCleanSource(t *testing.T) {
	path := writeSource(t, "let x: Int = 2 + 3\n")
	_, stderr, err := captureOutput(t, func() error {
		return runCompile(nil, []string{path})
	})
	assert.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestRunCompileRejectsNonOpusExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("let x: Int = 1\n"), 0o644))

	_, _, err := captureOutput(t, func() error {
		return runCompile(nil, []string{path})
	})

	require.Error(t, err)
	exitErr, ok := err.(exitError)
	require.True(t, ok)
	assert.Equal(t, ExitUsage, exitErr.code)
}

func TestRunCompileReportsIOFailureOnMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.opus")

	_, _, err := captureOutput(t, func() error {
		return runCompile(nil, []string{path})
	})

	require.Error(t, err)
	exitErr, ok := err.(exitError)
	require.True(t, ok)
	assert.Equal(t, ExitIO, exitErr.code)
}

func TestRunCompileReportsAnalyzerFailureOnRedeclaration(t *testing.T) {
	path := writeSource(t, "let x: Int = 1\nlet x: Int = 2\n")

	_, stderr, err := captureOutput(t, func() error {
		return runCompile(nil, []string{path})
	})

	require.Error(t, err)
	exitErr, ok := err.(exitError)
	require.True(t, ok)
	assert.Equal(t, ExitAnalysis, exitErr.code)
	assert.Contains(t, stderr, "Redeclared symbol")
}

func TestRunCompileFlagsUnclosedBraceAtEOF(t *testing.T) {
	// parseCodeBlock's loop exits cleanly on EOF as well as RBrace (it has
	// to, or a genuinely truncated file would hang the parser), so a
	// missing '}' produces no parser diagnostic on its own — only the
	// lexer's end-of-stream bracket vector catches it.
	path := writeSource(t, "func f() -> Int {\nreturn 1\n")

	_, stderr, err := captureOutput(t, func() error {
		return runCompile(nil, []string{path})
	})

	require.Error(t, err)
	exitErr, ok := err.(exitError)
	require.True(t, ok)
	assert.Equal(t, ExitLexParse, exitErr.code)
	assert.Contains(t, stderr, "UnclosedBracket")
}

func TestRunLexPrintsTokenStreamAndFlagsErrorTokens(t *testing.T) {
	path := writeSource(t, "let x: Int = 1\n")
	stdout, stderr, err := captureOutput(t, func() error {
		return runLex(nil, []string{path})
	})
	assert.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Lexeme:")
}

func TestRunLexFlagsUnclosedBracketAfterTokenDump(t *testing.T) {
	path := writeSource(t, "(1\n")

	stdout, stderr, err := captureOutput(t, func() error {
		return runLex(nil, []string{path})
	})

	require.Error(t, err)
	exitErr, ok := err.(exitError)
	require.True(t, ok)
	assert.Equal(t, ExitLexParse, exitErr.code)
	assert.NotEmpty(t, stdout)
	assert.Contains(t, stderr, "UnclosedBracket")
}

func TestRunParsePrintsDumpEvenWhenDiagnosticsExist(t *testing.T) {
	path := writeSource(t, "let x Int = 1\n")
	stdout, stderr, err := captureOutput(t, func() error {
		return runParse(nil, []string{path})
	})
	require.Error(t, err)
	assert.NotEmpty(t, stdout)
	assert.NotEmpty(t, stderr)
}

func TestRunAnalyzeSymbolsFlagPrintsSymbolTable(t *testing.T) {
	dumpSymbols = true
	defer func() { dumpSymbols = false }()

	path := writeSource(t, "let x: Int = 1\n")
	stdout, _, err := captureOutput(t, func() error {
		return runAnalyze(nil, []string{path})
	})
	assert.NoError(t, err)
	assert.Contains(t, stdout, "Identifier")
	assert.Contains(t, stdout, "x")
}

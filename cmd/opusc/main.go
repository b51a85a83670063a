// Command opusc is the Opus compiler front end: lexer, parser, and
// semantic analyzer wired behind a small cobra CLI.
package main

import (
	"os"

	"github.com/opuslang/opusc/cmd/opusc/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

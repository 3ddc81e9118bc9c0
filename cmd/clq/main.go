// Command clq translates Common Logic select queries into Common Logic,
// infix Common Logic, SPARQL and Prolog.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/clq/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// Commands report their own ExitErrors.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/pubx/cmd/cli"
	"github.com/temirov/pubx/internal/execshell"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the pubx command-line application. Delegated tool failures
// propagate their exit codes unchanged.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)

	var commandFailure execshell.CommandFailedError
	if errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode > 0 {
		os.Exit(commandFailure.Result.ExitCode)
	}
	os.Exit(1)
}

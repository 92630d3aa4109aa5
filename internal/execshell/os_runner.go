package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
)

const environmentEntryTemplateConstant = "%s=%s"

// OSCommandRunner executes shell commands against the host operating system.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs an OSCommandRunner instance.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the provided command, capturing standard streams and the exit code.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executableCommand := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)

	if len(command.Details.WorkingDirectory) > 0 {
		executableCommand.Dir = command.Details.WorkingDirectory
	}

	executableCommand.Env = mergeProcessEnvironment(command.Details.EnvironmentVariables)

	if len(command.Details.StandardInput) > 0 {
		executableCommand.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executableCommand.Stdout = &standardOutputBuffer
	executableCommand.Stderr = &standardErrorBuffer

	runError := executableCommand.Run()

	executionResult := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}

	if runError == nil {
		return executionResult, nil
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) {
		executionResult.ExitCode = exitError.ExitCode()
		return executionResult, nil
	}

	return executionResult, runError
}

func mergeProcessEnvironment(additionalEnvironment map[string]string) []string {
	if len(additionalEnvironment) == 0 {
		return os.Environ()
	}

	mergedEnvironment := os.Environ()

	additionalKeys := make([]string, 0, len(additionalEnvironment))
	for environmentKey := range additionalEnvironment {
		additionalKeys = append(additionalKeys, environmentKey)
	}
	sort.Strings(additionalKeys)

	for _, environmentKey := range additionalKeys {
		mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentEntryTemplateConstant, environmentKey, additionalEnvironment[environmentKey]))
	}

	return mergedEnvironment
}

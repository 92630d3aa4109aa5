// Package shelltask executes configuration-defined tasks in an embedded POSIX
// shell interpreter so custom tasks behave identically across platforms.
package shelltask

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

const (
	scriptEmptyMessageConstant          = "script has no content to execute"
	scriptSyntaxErrorTemplateConstant   = "script syntax error: %w"
	interpreterCreationErrorTemplate    = "unable to create shell interpreter: %w"
	scriptFailureMessageTemplate        = "script exited with code %d"
	scriptSourceNameConstant            = "script"
	environmentEntryTemplateConstant    = "%s=%s"
	scriptExecutionErrorTemplateMessage = "script execution failed: %w"
)

// ErrScriptEmpty indicates a custom task carried no script content.
var ErrScriptEmpty = errors.New(scriptEmptyMessageConstant)

// ScriptFailedError reports a script that completed with a non-zero exit status.
type ScriptFailedError struct {
	ExitCode int
}

// Error describes the script failure.
func (scriptError ScriptFailedError) Error() string {
	return fmt.Sprintf(scriptFailureMessageTemplate, scriptError.ExitCode)
}

// ExecutionOptions describes a single script invocation.
type ExecutionOptions struct {
	Script               string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	Arguments            []string
	Output               io.Writer
	Errors               io.Writer
}

// ScriptRuntime parses and runs shell scripts with the embedded interpreter.
type ScriptRuntime struct {
	parser *syntax.Parser
}

// NewScriptRuntime constructs a ScriptRuntime instance.
func NewScriptRuntime() *ScriptRuntime {
	return &ScriptRuntime{parser: syntax.NewParser()}
}

// Validate parses the script and reports syntax errors without executing it.
func (runtime *ScriptRuntime) Validate(script string) error {
	if len(strings.TrimSpace(script)) == 0 {
		return ErrScriptEmpty
	}
	_, parseError := runtime.parser.Parse(strings.NewReader(script), scriptSourceNameConstant)
	if parseError != nil {
		return fmt.Errorf(scriptSyntaxErrorTemplateConstant, parseError)
	}
	return nil
}

// Run executes the script, propagating its exit status as a ScriptFailedError.
func (runtime *ScriptRuntime) Run(executionContext context.Context, options ExecutionOptions) error {
	if len(strings.TrimSpace(options.Script)) == 0 {
		return ErrScriptEmpty
	}

	parsedScript, parseError := runtime.parser.Parse(strings.NewReader(options.Script), scriptSourceNameConstant)
	if parseError != nil {
		return fmt.Errorf(scriptSyntaxErrorTemplateConstant, parseError)
	}

	outputWriter := options.Output
	if outputWriter == nil {
		outputWriter = os.Stdout
	}
	errorWriter := options.Errors
	if errorWriter == nil {
		errorWriter = os.Stderr
	}

	runnerOptions := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(environmentList(options.EnvironmentVariables)...)),
		interp.StdIO(nil, outputWriter, errorWriter),
	}
	if len(strings.TrimSpace(options.WorkingDirectory)) > 0 {
		runnerOptions = append(runnerOptions, interp.Dir(options.WorkingDirectory))
	}
	// A leading "--" keeps user arguments from being read as shell options.
	if len(options.Arguments) > 0 {
		runnerOptions = append(runnerOptions, interp.Params(append([]string{"--"}, options.Arguments...)...))
	}

	shellRunner, creationError := interp.New(runnerOptions...)
	if creationError != nil {
		return fmt.Errorf(interpreterCreationErrorTemplate, creationError)
	}

	runError := shellRunner.Run(executionContext, parsedScript)
	if runError == nil {
		return nil
	}

	var exitStatus interp.ExitStatus
	if errors.As(runError, &exitStatus) {
		return ScriptFailedError{ExitCode: int(exitStatus)}
	}

	return fmt.Errorf(scriptExecutionErrorTemplateMessage, runError)
}

func environmentList(additionalEnvironment map[string]string) []string {
	environmentEntries := os.Environ()
	if len(additionalEnvironment) == 0 {
		return environmentEntries
	}

	additionalKeys := make([]string, 0, len(additionalEnvironment))
	for environmentKey := range additionalEnvironment {
		additionalKeys = append(additionalKeys, environmentKey)
	}
	sort.Strings(additionalKeys)

	for _, environmentKey := range additionalKeys {
		environmentEntries = append(environmentEntries, fmt.Sprintf(environmentEntryTemplateConstant, environmentKey, additionalEnvironment[environmentKey]))
	}

	return environmentEntries
}

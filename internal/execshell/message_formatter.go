package execshell

import (
	"fmt"
	"strings"
)

const (
	startedMessageTemplateConstant          = "Running %s"
	successMessageTemplateConstant          = "Completed %s"
	failureMessageTemplateConstant          = "%s failed (exit code %d: %s)"
	executionFailureMessageTemplateConstant = "Unable to run %s: %v"
	noDetailPlaceholderConstant             = "no output"
)

// CommandMessageFormatter renders human-readable lifecycle messages for delegated commands.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command that is about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return fmt.Sprintf(startedMessageTemplateConstant, formatter.describeCommand(command))
}

// BuildSuccessMessage describes a command that completed with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return fmt.Sprintf(successMessageTemplateConstant, formatter.describeCommand(command))
}

// BuildFailureMessage describes a command that exited with a non-zero code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	detail := strings.TrimSpace(result.StandardError)
	if len(detail) == 0 {
		detail = strings.TrimSpace(result.StandardOutput)
	}
	if len(detail) == 0 {
		detail = noDetailPlaceholderConstant
	}
	return fmt.Sprintf(failureMessageTemplateConstant, formatter.describeCommand(command), result.ExitCode, firstLine(detail))
}

// BuildExecutionFailureMessage describes a command the runner could not execute at all.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, cause error) string {
	return fmt.Sprintf(executionFailureMessageTemplateConstant, formatter.describeCommand(command), cause)
}

// Version probes of the git executable are routine noise in console mode.
func (formatter CommandMessageFormatter) shouldLogStartMessage(command ShellCommand) bool {
	return command.Name != CommandGit
}

func (formatter CommandMessageFormatter) describeCommand(command ShellCommand) string {
	if len(command.Details.Arguments) == 0 {
		return string(command.Name)
	}
	return fmt.Sprintf("%s %s", command.Name, strings.Join(command.Details.Arguments, " "))
}

func firstLine(text string) string {
	if lineBreakIndex := strings.IndexByte(text, '\n'); lineBreakIndex >= 0 {
		return strings.TrimSpace(text[:lineBreakIndex])
	}
	return text
}

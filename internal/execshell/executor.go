package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/pubx/internal/registryauth"
)

const (
	installerCommandNameStringConstant        = "uv"
	linterCommandNameStringConstant           = "pre-commit"
	uploaderCommandNameStringConstant         = "twine"
	gitCommandNameStringConstant              = "git"
	loggerNotConfiguredMessageConstant        = "shell executor logger not configured"
	commandRunnerNotConfiguredMessageConstant = "shell executor command runner not configured"
	commandNameMissingMessageConstant         = "shell command name not provided"
	commandStartMessageConstant               = "command execution starting"
	commandSuccessMessageConstant             = "command execution completed"
	commandFailureMessageConstant             = "command returned non-zero status"
	commandRunnerErrorMessageConstant         = "command execution error"
	commandNameFieldNameConstant              = "command"
	commandArgumentsFieldNameConstant         = "arguments"
	workingDirectoryFieldNameConstant         = "working_directory"
	exitCodeFieldNameConstant                 = "exit_code"
	standardErrorFieldNameConstant            = "stderr"
)

// CommandName identifies a supported executable name.
type CommandName string

// Supported command names.
const (
	CommandInstaller CommandName = CommandName(installerCommandNameStringConstant)
	CommandLinter    CommandName = CommandName(linterCommandNameStringConstant)
	CommandUploader  CommandName = CommandName(uploaderCommandNameStringConstant)
	CommandGit       CommandName = CommandName(gitCommandNameStringConstant)
)

// CommandDetails describes command invocation properties.
type CommandDetails struct {
	Arguments                []string
	WorkingDirectory         string
	EnvironmentVariables     map[string]string
	StandardInput            []byte
	RegistryTokenVariable    string
	RegistryTokenRequirement registryauth.TokenRequirement
}

// ShellCommand represents a fully qualified command invocation.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures observable command results.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner executes shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// ShellExecutor orchestrates running shell commands with logging.
type ShellExecutor struct {
	commandRunner        CommandRunner
	logger               *zap.Logger
	humanReadableLogging bool
	messageFormatter     CommandMessageFormatter
	executableOverrides  map[CommandName]string
}

var (
	// ErrLoggerNotConfigured indicates the logger dependency was missing.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates the command runner dependency was missing.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
	// ErrCommandNameMissing indicates the command name was not provided.
	ErrCommandNameMissing = errors.New(commandNameMissingMessageConstant)
)

// CommandFailedError provides details about commands exiting with a non-zero code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

const commandFailureErrorMessageTemplateConstant = "%s command exited with code %d"

// Error describes the failure in a readable format.
func (commandError CommandFailedError) Error() string {
	baseMessage := fmt.Sprintf(commandFailureErrorMessageTemplateConstant, commandError.Command.Name, commandError.Result.ExitCode)

	if len(commandError.Command.Details.Arguments) > 0 {
		baseMessage = fmt.Sprintf("%s (%s)", baseMessage, strings.Join(commandError.Command.Details.Arguments, " "))
	}

	detail := strings.TrimSpace(commandError.Result.StandardError)
	if len(detail) == 0 {
		detail = strings.TrimSpace(commandError.Result.StandardOutput)
	}
	if len(detail) > 0 {
		lines := strings.Split(detail, "\n")
		maxLines := 3
		if len(lines) > maxLines {
			lines = lines[:maxLines]
		}
		normalized := make([]string, 0, len(lines))
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			normalized = append(normalized, trimmed)
		}
		if len(normalized) > 0 {
			baseMessage = fmt.Sprintf("%s: %s", baseMessage, strings.Join(normalized, " | "))
		}
	}

	return baseMessage
}

// CommandExecutionError wraps unexpected execution failures from the runner.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

const commandExecutionErrorMessageTemplateConstant = "%s command execution failed"

// Error describes the underlying runner failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorMessageTemplateConstant, executionError.Command.Name)
}

// Unwrap exposes the underlying error.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// NewShellExecutor builds an executor for the provided runner and logger.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner, humanReadableLogging bool) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	return &ShellExecutor{
		commandRunner:        commandRunner,
		logger:               logger,
		humanReadableLogging: humanReadableLogging,
		messageFormatter:     CommandMessageFormatter{},
	}, nil
}

// SetExecutableOverrides substitutes executable names before delegation, keyed by canonical command name.
func (executor *ShellExecutor) SetExecutableOverrides(overrides map[CommandName]string) {
	if len(overrides) == 0 {
		executor.executableOverrides = nil
		return
	}
	cloned := make(map[CommandName]string, len(overrides))
	for commandName, executablePath := range overrides {
		trimmedPath := strings.TrimSpace(executablePath)
		if len(trimmedPath) == 0 {
			continue
		}
		cloned[commandName] = trimmedPath
	}
	executor.executableOverrides = cloned
}

// Execute runs the provided shell command and logs lifecycle events.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if len(command.Name) == 0 {
		return ExecutionResult{}, ErrCommandNameMissing
	}

	var preparationError error
	command, preparationError = executor.prepareCommand(command)
	if preparationError != nil {
		return ExecutionResult{}, preparationError
	}

	if executor.humanReadableLogging {
		if executor.messageFormatter.shouldLogStartMessage(command) {
			executor.logger.Info(executor.messageFormatter.BuildStartedMessage(command))
		}
	} else {
		executor.logger.Info(commandStartMessageConstant,
			zap.String(commandNameFieldNameConstant, string(command.Name)),
			zap.Strings(commandArgumentsFieldNameConstant, command.Details.Arguments),
			zap.String(workingDirectoryFieldNameConstant, command.Details.WorkingDirectory),
		)
	}

	executionResult, runnerError := executor.commandRunner.Run(executionContext, command)
	if runnerError != nil {
		if executor.humanReadableLogging {
			executor.logger.Error(executor.messageFormatter.BuildExecutionFailureMessage(command, runnerError))
		} else {
			executor.logger.Error(commandRunnerErrorMessageConstant,
				zap.String(commandNameFieldNameConstant, string(command.Name)),
				zap.Error(runnerError),
			)
		}
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runnerError}
	}

	if executionResult.ExitCode != 0 {
		if executor.humanReadableLogging {
			executor.logger.Warn(executor.messageFormatter.BuildFailureMessage(command, executionResult))
		} else {
			executor.logger.Warn(commandFailureMessageConstant,
				zap.String(commandNameFieldNameConstant, string(command.Name)),
				zap.Int(exitCodeFieldNameConstant, executionResult.ExitCode),
				zap.String(standardErrorFieldNameConstant, executionResult.StandardError),
			)
		}
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	if executor.humanReadableLogging {
		executor.logger.Info(executor.messageFormatter.BuildSuccessMessage(command))
	} else {
		executor.logger.Info(commandSuccessMessageConstant,
			zap.String(commandNameFieldNameConstant, string(command.Name)),
			zap.Int(exitCodeFieldNameConstant, executionResult.ExitCode),
		)
	}
	return executionResult, nil
}

// ExecuteInstaller runs the dependency installer executable with the provided details.
func (executor *ShellExecutor) ExecuteInstaller(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandInstaller, Details: details})
}

// ExecuteLinter runs the linter runner executable with the provided details.
func (executor *ShellExecutor) ExecuteLinter(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandLinter, Details: details})
}

// ExecuteUploader runs the upload tool executable with the provided details.
func (executor *ShellExecutor) ExecuteUploader(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandUploader, Details: details})
}

// ExecuteGit runs the git executable with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

func (executor *ShellExecutor) prepareCommand(command ShellCommand) (ShellCommand, error) {
	if override, overrideExists := executor.executableOverrides[command.Name]; overrideExists {
		command.Name = CommandName(override)
	}

	tokenVariableName := strings.TrimSpace(command.Details.RegistryTokenVariable)
	if len(tokenVariableName) == 0 {
		return command, nil
	}

	token, tokenAvailable := registryauth.ResolveToken(command.Details.EnvironmentVariables, tokenVariableName)
	if !tokenAvailable {
		if command.Details.RegistryTokenRequirement == registryauth.TokenRequired {
			missingError := registryauth.NewMissingTokenError(tokenVariableName, strings.Join(command.Details.Arguments, " "))
			return command, missingError
		}

		executor.logger.Warn("registry token missing; proceeding without credentials",
			zap.Strings(commandArgumentsFieldNameConstant, command.Details.Arguments),
		)
		return command, nil
	}

	command.Details.EnvironmentVariables = ensureUploaderEnvironment(command.Details.EnvironmentVariables, token)
	return command, nil
}

func ensureUploaderEnvironment(environment map[string]string, token string) map[string]string {
	clone := cloneEnvironment(environment)
	if value, exists := clone[registryauth.EnvUploaderUsername]; !exists || len(strings.TrimSpace(value)) == 0 {
		clone[registryauth.EnvUploaderUsername] = registryauth.TokenUsernamePlaceholder
	}
	if value, exists := clone[registryauth.EnvUploaderPassword]; !exists || len(strings.TrimSpace(value)) == 0 {
		clone[registryauth.EnvUploaderPassword] = token
	}
	return clone
}

func cloneEnvironment(environment map[string]string) map[string]string {
	if len(environment) == 0 {
		return map[string]string{}
	}
	cloned := make(map[string]string, len(environment))
	for key, value := range environment {
		cloned[key] = value
	}
	return cloned
}

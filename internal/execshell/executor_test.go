package execshell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/pubx/internal/execshell"
	"github.com/temirov/pubx/internal/registryauth"
)

const (
	testExecutionSuccessCaseNameConstant         = "success"
	testExecutionFailureCaseNameConstant         = "failure_exit_code"
	testExecutionRunnerErrorCaseNameConstant     = "runner_error"
	testInstallerWrapperCaseNameConstant         = "installer_wrapper"
	testLinterWrapperCaseNameConstant            = "linter_wrapper"
	testUploaderWrapperCaseNameConstant          = "uploader_wrapper"
	testGitWrapperCaseNameConstant               = "git_wrapper"
	testCommandArgumentConstant                  = "--version"
	testWorkingDirectoryConstant                 = "."
	testStandardErrorOutputConstant              = "failure"
	testRunnerFailureMessageConstant             = "runner failure"
	testLoggerInitializationCaseNameConstant     = "logger_validation"
	testRunnerInitializationCaseNameConstant     = "runner_validation"
	testSuccessfulInitializationCaseNameConstant = "successful_initialization"
	testTokenVariableNameConstant                = "TEST_PYPI_TOKEN"
	testTokenValueConstant                       = "pypi-token-value"
	testUploadSubcommandConstant                 = "upload"
	testOverriddenInstallerNameConstant          = "uv-preview"
)

type recordingCommandRunner struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	return runner.executionResult, runner.executionError
}

func TestShellExecutorInitializationValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logger        *zap.Logger
		runner        execshell.CommandRunner
		expectError   error
		expectSuccess bool
	}{
		{
			name:        testLoggerInitializationCaseNameConstant,
			logger:      nil,
			runner:      &recordingCommandRunner{},
			expectError: execshell.ErrLoggerNotConfigured,
		},
		{
			name:        testRunnerInitializationCaseNameConstant,
			logger:      zap.NewNop(),
			runner:      nil,
			expectError: execshell.ErrCommandRunnerNotConfigured,
		},
		{
			name:          testSuccessfulInitializationCaseNameConstant,
			logger:        zap.NewNop(),
			runner:        &recordingCommandRunner{},
			expectSuccess: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor, creationError := execshell.NewShellExecutor(testCase.logger, testCase.runner, false)
			if testCase.expectSuccess {
				require.NoError(testInstance, creationError)
				require.NotNil(testInstance, executor)
			} else {
				require.Error(testInstance, creationError)
				require.ErrorIs(testInstance, creationError, testCase.expectError)
			}
		})
	}
}

func TestShellExecutorExecuteBehavior(testInstance *testing.T) {
	testCases := []struct {
		name            string
		runnerResult    execshell.ExecutionResult
		runnerError     error
		expectErrorType any
		expectedLevels  []zapcore.Level
	}{
		{
			name: testExecutionSuccessCaseNameConstant,
			runnerResult: execshell.ExecutionResult{
				StandardOutput: "ok",
				ExitCode:       0,
			},
			expectedLevels: []zapcore.Level{zap.InfoLevel, zap.InfoLevel},
		},
		{
			name: testExecutionFailureCaseNameConstant,
			runnerResult: execshell.ExecutionResult{
				StandardError: testStandardErrorOutputConstant,
				ExitCode:      2,
			},
			expectErrorType: &execshell.CommandFailedError{},
			expectedLevels:  []zapcore.Level{zap.InfoLevel, zap.WarnLevel},
		},
		{
			name:            testExecutionRunnerErrorCaseNameConstant,
			runnerError:     errors.New(testRunnerFailureMessageConstant),
			expectErrorType: &execshell.CommandExecutionError{},
			expectedLevels:  []zapcore.Level{zap.InfoLevel, zap.ErrorLevel},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observedCore, observedLogs := observer.New(zap.InfoLevel)
			commandRunner := &recordingCommandRunner{
				executionResult: testCase.runnerResult,
				executionError:  testCase.runnerError,
			}

			executor, creationError := execshell.NewShellExecutor(zap.New(observedCore), commandRunner, false)
			require.NoError(testInstance, creationError)

			executionResult, executionError := executor.ExecuteInstaller(context.Background(), execshell.CommandDetails{
				Arguments:        []string{testCommandArgumentConstant},
				WorkingDirectory: testWorkingDirectoryConstant,
			})

			switch expectedError := testCase.expectErrorType.(type) {
			case *execshell.CommandFailedError:
				require.Error(testInstance, executionError)
				require.ErrorAs(testInstance, executionError, expectedError)
				require.Equal(testInstance, testCase.runnerResult.ExitCode, expectedError.Result.ExitCode)
			case *execshell.CommandExecutionError:
				require.Error(testInstance, executionError)
				require.ErrorAs(testInstance, executionError, expectedError)
				require.ErrorIs(testInstance, executionError, testCase.runnerError)
			default:
				require.NoError(testInstance, executionError)
				require.Equal(testInstance, testCase.runnerResult, executionResult)
			}

			loggedEntries := observedLogs.All()
			require.Len(testInstance, loggedEntries, len(testCase.expectedLevels))
			for entryIndex, expectedLevel := range testCase.expectedLevels {
				require.Equal(testInstance, expectedLevel, loggedEntries[entryIndex].Level)
			}
		})
	}
}

func TestShellExecutorToolWrappers(testInstance *testing.T) {
	testDetails := execshell.CommandDetails{
		Arguments:        []string{testCommandArgumentConstant},
		WorkingDirectory: testWorkingDirectoryConstant,
	}

	testCases := []struct {
		name         string
		expectedName execshell.CommandName
		invoke       func(executor *execshell.ShellExecutor) (execshell.ExecutionResult, error)
	}{
		{
			name:         testInstallerWrapperCaseNameConstant,
			expectedName: execshell.CommandInstaller,
			invoke: func(executor *execshell.ShellExecutor) (execshell.ExecutionResult, error) {
				return executor.ExecuteInstaller(context.Background(), testDetails)
			},
		},
		{
			name:         testLinterWrapperCaseNameConstant,
			expectedName: execshell.CommandLinter,
			invoke: func(executor *execshell.ShellExecutor) (execshell.ExecutionResult, error) {
				return executor.ExecuteLinter(context.Background(), testDetails)
			},
		},
		{
			name:         testUploaderWrapperCaseNameConstant,
			expectedName: execshell.CommandUploader,
			invoke: func(executor *execshell.ShellExecutor) (execshell.ExecutionResult, error) {
				return executor.ExecuteUploader(context.Background(), testDetails)
			},
		},
		{
			name:         testGitWrapperCaseNameConstant,
			expectedName: execshell.CommandGit,
			invoke: func(executor *execshell.ShellExecutor) (execshell.ExecutionResult, error) {
				return executor.ExecuteGit(context.Background(), testDetails)
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			commandRunner := &recordingCommandRunner{}
			executor, creationError := execshell.NewShellExecutor(zap.NewNop(), commandRunner, false)
			require.NoError(testInstance, creationError)

			_, executionError := testCase.invoke(executor)
			require.NoError(testInstance, executionError)
			require.Len(testInstance, commandRunner.recordedCommands, 1)
			require.Equal(testInstance, testCase.expectedName, commandRunner.recordedCommands[0].Name)
			require.Equal(testInstance, testDetails.Arguments, commandRunner.recordedCommands[0].Details.Arguments)
		})
	}
}

func TestShellExecutorInjectsUploaderCredentials(testInstance *testing.T) {
	commandRunner := &recordingCommandRunner{}
	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), commandRunner, false)
	require.NoError(testInstance, creationError)

	_, executionError := executor.ExecuteUploader(context.Background(), execshell.CommandDetails{
		Arguments:                []string{testUploadSubcommandConstant},
		EnvironmentVariables:     map[string]string{testTokenVariableNameConstant: testTokenValueConstant},
		RegistryTokenVariable:    testTokenVariableNameConstant,
		RegistryTokenRequirement: registryauth.TokenRequired,
	})
	require.NoError(testInstance, executionError)
	require.Len(testInstance, commandRunner.recordedCommands, 1)

	preparedEnvironment := commandRunner.recordedCommands[0].Details.EnvironmentVariables
	require.Equal(testInstance, registryauth.TokenUsernamePlaceholder, preparedEnvironment[registryauth.EnvUploaderUsername])
	require.Equal(testInstance, testTokenValueConstant, preparedEnvironment[registryauth.EnvUploaderPassword])
}

func TestShellExecutorRejectsUploadWithoutRequiredToken(testInstance *testing.T) {
	commandRunner := &recordingCommandRunner{}
	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), commandRunner, false)
	require.NoError(testInstance, creationError)

	_, executionError := executor.ExecuteUploader(context.Background(), execshell.CommandDetails{
		Arguments:                []string{testUploadSubcommandConstant},
		RegistryTokenVariable:    "PUBX_TEST_ABSENT_TOKEN_VARIABLE",
		RegistryTokenRequirement: registryauth.TokenRequired,
	})

	var missingTokenError registryauth.MissingTokenError
	require.Error(testInstance, executionError)
	require.ErrorAs(testInstance, executionError, &missingTokenError)
	require.Empty(testInstance, commandRunner.recordedCommands)
}

func TestShellExecutorAppliesExecutableOverrides(testInstance *testing.T) {
	commandRunner := &recordingCommandRunner{}
	executor, creationError := execshell.NewShellExecutor(zap.NewNop(), commandRunner, false)
	require.NoError(testInstance, creationError)

	executor.SetExecutableOverrides(map[execshell.CommandName]string{
		execshell.CommandInstaller: testOverriddenInstallerNameConstant,
	})

	_, executionError := executor.ExecuteInstaller(context.Background(), execshell.CommandDetails{})
	require.NoError(testInstance, executionError)
	require.Len(testInstance, commandRunner.recordedCommands, 1)
	require.Equal(testInstance, execshell.CommandName(testOverriddenInstallerNameConstant), commandRunner.recordedCommands[0].Name)
}

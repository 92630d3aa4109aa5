package tests

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationUnexpectedSuccessMessageConstant = "command succeeded unexpectedly"
	integrationUnexpectedSuccessFormatConstant  = "%s\n%s"
	integrationCommandFailureFormatConstant     = "command failed: %v\n%s"
	pathEnvironmentVariableNameConstant         = "PATH"
	environmentAssignmentSeparatorConstant      = "="
	integrationBinaryFileNameConstant           = "pubx-integration"
	stubScriptTemplateConstant                  = "#!/bin/sh\nprintf '%%s\\n' \"$*\" >> %q\nexit %d\n"
	stubScriptPermissionConstant                = 0o755
	integrationTimeoutConstant                  = 2 * time.Minute
)

var (
	integrationBinaryOnce sync.Once
	integrationBinaryPath string
	integrationBinaryErr  error
)

type integrationCommandOptions struct {
	WorkingDirectory     string
	PathVariable         string
	EnvironmentOverrides map[string]string
}

func buildIntegrationBinary(testInstance *testing.T) string {
	testInstance.Helper()

	integrationBinaryOnce.Do(func() {
		repositoryRoot, rootError := filepath.Abs("..")
		if rootError != nil {
			integrationBinaryErr = rootError
			return
		}

		binaryPath := filepath.Join(os.TempDir(), integrationBinaryFileNameConstant)
		buildCommand := exec.Command("go", "build", "-o", binaryPath, ".")
		buildCommand.Dir = repositoryRoot
		if outputBytes, buildError := buildCommand.CombinedOutput(); buildError != nil {
			integrationBinaryErr = fmt.Errorf(integrationCommandFailureFormatConstant, buildError, string(outputBytes))
			return
		}
		integrationBinaryPath = binaryPath
	})

	require.NoError(testInstance, integrationBinaryErr)
	return integrationBinaryPath
}

// writeStubTool creates an executable that appends its arguments to a log
// file and exits with the provided code.
func writeStubTool(testInstance *testing.T, binDirectory string, toolName string, logPath string, exitCode int) {
	testInstance.Helper()

	scriptContent := fmt.Sprintf(stubScriptTemplateConstant, logPath, exitCode)
	require.NoError(testInstance, os.WriteFile(filepath.Join(binDirectory, toolName), []byte(scriptContent), stubScriptPermissionConstant))
}

func readStubLog(testInstance *testing.T, logPath string) string {
	testInstance.Helper()

	logBytes, readError := os.ReadFile(logPath)
	if readError != nil {
		return ""
	}
	return string(logBytes)
}

func runIntegrationCommand(testInstance *testing.T, options integrationCommandOptions, arguments []string) string {
	testInstance.Helper()
	outputText, commandError := executeIntegrationCommand(testInstance, options, arguments)
	require.NoError(testInstance, commandError, outputText)
	return outputText
}

func runFailingIntegrationCommand(testInstance *testing.T, options integrationCommandOptions, arguments []string) (string, error) {
	testInstance.Helper()
	outputText, commandError := executeIntegrationCommand(testInstance, options, arguments)
	if commandError == nil {
		testInstance.Fatalf(integrationUnexpectedSuccessFormatConstant, integrationUnexpectedSuccessMessageConstant, outputText)
	}
	return outputText, commandError
}

func executeIntegrationCommand(testInstance *testing.T, options integrationCommandOptions, arguments []string) (string, error) {
	testInstance.Helper()

	binaryPath := buildIntegrationBinary(testInstance)

	executionContext, cancel := context.WithTimeout(context.Background(), integrationTimeoutConstant)
	defer cancel()

	command := exec.CommandContext(executionContext, binaryPath, arguments...)
	command.Dir = options.WorkingDirectory
	command.Env = buildCommandEnvironment(options)

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}

func buildCommandEnvironment(options integrationCommandOptions) []string {
	environmentEntries := []string{}
	for _, environmentEntry := range os.Environ() {
		entryName, _, separatorFound := strings.Cut(environmentEntry, environmentAssignmentSeparatorConstant)
		if !separatorFound {
			continue
		}
		if entryName == pathEnvironmentVariableNameConstant && len(options.PathVariable) > 0 {
			continue
		}
		if _, overridden := options.EnvironmentOverrides[entryName]; overridden {
			continue
		}
		environmentEntries = append(environmentEntries, environmentEntry)
	}

	if len(options.PathVariable) > 0 {
		environmentEntries = append(environmentEntries, pathEnvironmentVariableNameConstant+environmentAssignmentSeparatorConstant+options.PathVariable)
	}
	for overrideName, overrideValue := range options.EnvironmentOverrides {
		environmentEntries = append(environmentEntries, overrideName+environmentAssignmentSeparatorConstant+overrideValue)
	}

	return environmentEntries
}

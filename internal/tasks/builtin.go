package tasks

import (
	"context"
	"fmt"
	"path"

	"go.uber.org/zap"

	"github.com/temirov/pubx/internal/execshell"
	"github.com/temirov/pubx/internal/registryauth"
)

// Builtin task names.
const (
	TaskNameInstall           = "install"
	TaskNameLint              = "lint"
	TaskNameBuild             = "build"
	TaskNamePublishTest       = "publish:test"
	TaskNamePublishProduction = "publish:prod"
	TaskNameReleaseProduction = "release:prod"
	TaskNameClean             = "clean"
)

const (
	installTaskSummaryConstant           = "Install project dependencies with the configured installer"
	lintTaskSummaryConstant              = "Run the configured linter across the whole project"
	buildTaskSummaryConstant             = "Build the distribution artifacts"
	publishTestTaskSummaryConstant       = "Upload the distribution artifacts to the staging registry"
	publishProductionTaskSummaryConstant = "Upload the distribution artifacts to the production registry"
	releaseProductionTaskSummaryConstant = "Lint, build, tag, and publish to the production registry"
	cleanTaskSummaryConstant             = "Remove generated artifacts, keeping the virtual environment"

	installStepNameConstant         = "sync dependencies"
	lintStepNameConstant            = "run linter"
	buildStepNameConstant           = "build distribution"
	uploadStepNameConstant          = "upload distribution"
	validateVersionStepNameConstant = "validate release version"
	tagReleaseStepNameConstant      = "tag release"
	cleanStepNameConstant           = "remove artifacts"

	installerSyncArgumentConstant     = "sync"
	installerBuildArgumentConstant    = "build"
	linterRunArgumentConstant         = "run"
	linterAllFilesArgumentConstant    = "--all-files"
	uploaderUploadArgumentConstant    = "upload"
	uploaderRepositoryFlagConstant    = "--repository"
	distributionGlobSuffixConstant    = "*"
	gitTagArgumentConstant            = "tag"
	gitAnnotateFlagConstant           = "-a"
	gitMessageFlagConstant            = "-m"
	gitPushArgumentConstant           = "push"
	gitOriginArgumentConstant         = "origin"
	releaseTagMessageTemplateConstant = "Release %s"

	cleanupServiceMissingTemplateConstant = "task %s requires a cleanup service"
	artifactsRemovedMessageConstant       = "artifacts removed"
	removedCountFieldConstant             = "removed"
)

// BuildBuiltinTasks constructs the fixed task set in dispatch order.
func BuildBuiltinTasks(taskSettings Settings) []Task {
	return []Task{
		BuildInstallTask(),
		BuildLintTask(),
		BuildBuildTask(),
		BuildPublishTask(TaskNamePublishTest, publishTestTaskSummaryConstant, taskSettings.Registries.Test),
		BuildPublishTask(TaskNamePublishProduction, publishProductionTaskSummaryConstant, taskSettings.Registries.Production),
		BuildReleaseTask(taskSettings.Registries.Production),
		BuildCleanTask(),
	}
}

// BuildInstallTask delegates dependency installation to the installer tool.
func BuildInstallTask() Task {
	return Task{
		Name:    TaskNameInstall,
		Summary: installTaskSummaryConstant,
		Steps: []Step{
			{
				Name: installStepNameConstant,
				Action: func(executionContext context.Context, environment *ExecutionEnvironment) error {
					_, executionError := environment.ShellExecutor.ExecuteInstaller(executionContext, execshell.CommandDetails{
						Arguments:            []string{installerSyncArgumentConstant},
						WorkingDirectory:     environment.WorkingDirectory,
						EnvironmentVariables: environment.EnvironmentVariables,
					})
					return executionError
				},
			},
		},
	}
}

// BuildLintTask delegates linting to the linter tool.
func BuildLintTask() Task {
	return Task{
		Name:    TaskNameLint,
		Summary: lintTaskSummaryConstant,
		Steps:   []Step{lintStep()},
	}
}

// BuildBuildTask delegates artifact production to the builder tool.
func BuildBuildTask() Task {
	return Task{
		Name:    TaskNameBuild,
		Summary: buildTaskSummaryConstant,
		Steps:   []Step{buildStep()},
	}
}

// BuildPublishTask uploads the distribution directory to the supplied
// registry. The upload refuses to start when the registry token variable is
// absent from the environment.
func BuildPublishTask(taskName string, taskSummary string, registryEndpoint RegistryEndpoint) Task {
	return Task{
		Name:    taskName,
		Summary: taskSummary,
		Steps:   []Step{uploadStep(registryEndpoint)},
	}
}

// BuildReleaseTask chains linting, building, optional git tagging, and the
// production upload into one fail-fast sequence.
func BuildReleaseTask(productionEndpoint RegistryEndpoint) Task {
	return Task{
		Name:    TaskNameReleaseProduction,
		Summary: releaseProductionTaskSummaryConstant,
		Steps: []Step{
			{
				Name: validateVersionStepNameConstant,
				Action: func(executionContext context.Context, environment *ExecutionEnvironment) error {
					if len(environment.Arguments) == 0 {
						return nil
					}
					return ValidateReleaseTag(environment.Arguments[0])
				},
			},
			lintStep(),
			buildStep(),
			{
				Name: tagReleaseStepNameConstant,
				Action: func(executionContext context.Context, environment *ExecutionEnvironment) error {
					if len(environment.Arguments) == 0 {
						return nil
					}
					return tagAndPushRelease(executionContext, environment, environment.Arguments[0])
				},
			},
			uploadStep(productionEndpoint),
		},
	}
}

// BuildCleanTask removes generated artifacts through the cleanup service.
func BuildCleanTask() Task {
	return Task{
		Name:    TaskNameClean,
		Summary: cleanTaskSummaryConstant,
		Steps: []Step{
			{
				Name: cleanStepNameConstant,
				Action: func(executionContext context.Context, environment *ExecutionEnvironment) error {
					if environment.CleanupService == nil {
						return fmt.Errorf(cleanupServiceMissingTemplateConstant, TaskNameClean)
					}
					removedCount, cleanupError := environment.CleanupService.Run(environment.WorkingDirectory)
					if cleanupError != nil {
						return cleanupError
					}
					if environment.Logger != nil {
						environment.Logger.Debug(artifactsRemovedMessageConstant, zap.Int(removedCountFieldConstant, removedCount))
					}
					return nil
				},
			},
		},
	}
}

func lintStep() Step {
	return Step{
		Name: lintStepNameConstant,
		Action: func(executionContext context.Context, environment *ExecutionEnvironment) error {
			_, executionError := environment.ShellExecutor.ExecuteLinter(executionContext, execshell.CommandDetails{
				Arguments:            []string{linterRunArgumentConstant, linterAllFilesArgumentConstant},
				WorkingDirectory:     environment.WorkingDirectory,
				EnvironmentVariables: environment.EnvironmentVariables,
			})
			return executionError
		},
	}
}

func buildStep() Step {
	return Step{
		Name: buildStepNameConstant,
		Action: func(executionContext context.Context, environment *ExecutionEnvironment) error {
			_, executionError := environment.ShellExecutor.ExecuteInstaller(executionContext, execshell.CommandDetails{
				Arguments:            []string{installerBuildArgumentConstant},
				WorkingDirectory:     environment.WorkingDirectory,
				EnvironmentVariables: environment.EnvironmentVariables,
			})
			return executionError
		},
	}
}

func uploadStep(registryEndpoint RegistryEndpoint) Step {
	return Step{
		Name: uploadStepNameConstant,
		Action: func(executionContext context.Context, environment *ExecutionEnvironment) error {
			distributionGlob := path.Join(environment.Settings.Project.DistributionDirectory, distributionGlobSuffixConstant)
			_, executionError := environment.ShellExecutor.ExecuteUploader(executionContext, execshell.CommandDetails{
				Arguments:                []string{uploaderUploadArgumentConstant, uploaderRepositoryFlagConstant, registryEndpoint.Name, distributionGlob},
				WorkingDirectory:         environment.WorkingDirectory,
				EnvironmentVariables:     environment.EnvironmentVariables,
				RegistryTokenVariable:    registryEndpoint.TokenVariable,
				RegistryTokenRequirement: registryauth.TokenRequired,
			})
			return executionError
		},
	}
}

func tagAndPushRelease(executionContext context.Context, environment *ExecutionEnvironment, releaseTag string) error {
	tagMessage := fmt.Sprintf(releaseTagMessageTemplateConstant, releaseTag)
	_, tagError := environment.ShellExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitTagArgumentConstant, gitAnnotateFlagConstant, releaseTag, gitMessageFlagConstant, tagMessage},
		WorkingDirectory:     environment.WorkingDirectory,
		EnvironmentVariables: environment.EnvironmentVariables,
	})
	if tagError != nil {
		return tagError
	}
	_, pushError := environment.ShellExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitPushArgumentConstant, gitOriginArgumentConstant, releaseTag},
		WorkingDirectory:     environment.WorkingDirectory,
		EnvironmentVariables: environment.EnvironmentVariables,
	})
	return pushError
}

package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/pubx/internal/shelltask"
)

const (
	customTaskNameMissingMessageConstant     = "custom task name is required"
	customTaskScriptTemplateConstant         = "custom task %s: %w"
	customTaskRuntimeMissingTemplateConstant = "task %s requires a script runtime"
	customTaskStepNameConstant               = "run script"
)

// ErrCustomTaskNameMissing indicates a custom task definition without a name.
var ErrCustomTaskNameMissing = errors.New(customTaskNameMissingMessageConstant)

// CustomTaskDefinition declares a user-supplied shell task from configuration.
type CustomTaskDefinition struct {
	Name    string `mapstructure:"name"`
	Summary string `mapstructure:"summary"`
	Script  string `mapstructure:"script"`
}

// BuildCustomTask validates the definition's script and wraps it as a task.
// Trailing command-line arguments become the script's positional parameters.
func BuildCustomTask(scriptRuntime *shelltask.ScriptRuntime, taskDefinition CustomTaskDefinition) (Task, error) {
	if len(taskDefinition.Name) == 0 {
		return Task{}, ErrCustomTaskNameMissing
	}
	if scriptRuntime == nil {
		return Task{}, fmt.Errorf(customTaskRuntimeMissingTemplateConstant, taskDefinition.Name)
	}
	if validationError := scriptRuntime.Validate(taskDefinition.Script); validationError != nil {
		return Task{}, fmt.Errorf(customTaskScriptTemplateConstant, taskDefinition.Name, validationError)
	}

	return Task{
		Name:    taskDefinition.Name,
		Summary: taskDefinition.Summary,
		Steps: []Step{
			{
				Name: customTaskStepNameConstant,
				Action: func(executionContext context.Context, environment *ExecutionEnvironment) error {
					runtimeError := environment.ScriptRuntime.Run(executionContext, shelltask.ExecutionOptions{
						Script:               taskDefinition.Script,
						WorkingDirectory:     environment.WorkingDirectory,
						EnvironmentVariables: environment.EnvironmentVariables,
						Arguments:            environment.Arguments,
						Output:               environment.Output,
						Errors:               environment.Errors,
					})
					if runtimeError != nil {
						return fmt.Errorf(customTaskScriptTemplateConstant, taskDefinition.Name, runtimeError)
					}
					return nil
				},
			},
		},
	}, nil
}

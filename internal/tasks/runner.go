package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	runnerRegistryMissingMessageConstant = "task registry is not configured"
	stepFailureTemplateConstant          = "task %s step %s: %w"
	taskStartedMessageConstant           = "task started"
	taskStepStartedMessageConstant       = "task step started"
	taskStepFailedMessageConstant        = "task step failed"
	taskCompletedMessageConstant         = "task completed"
	taskNameFieldConstant                = "task"
	stepNameFieldConstant                = "step"
)

// ErrRegistryNotConfigured indicates the runner was built without a registry.
var ErrRegistryNotConfigured = errors.New(runnerRegistryMissingMessageConstant)

// Outcome summarizes a finished task run.
type Outcome struct {
	TaskName       string
	CompletedSteps int
	TotalSteps     int
	Duration       time.Duration
	Failed         bool
}

// Runner executes registered tasks step by step, stopping at the first
// failure and reporting the elapsed time either way.
type Runner struct {
	registry *Registry
	logger   *zap.Logger
	clock    func() time.Time
}

// NewRunner builds a runner over the supplied registry.
func NewRunner(registry *Registry, logger *zap.Logger) (*Runner, error) {
	if registry == nil {
		return nil, ErrRegistryNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{registry: registry, logger: logger, clock: time.Now}, nil
}

// Run executes the named task against the supplied environment. The first
// failing step aborts the remainder and its error is returned unchanged in
// the wrap chain so callers can recover delegated exit codes.
func (runner *Runner) Run(executionContext context.Context, taskName string, environment *ExecutionEnvironment) (Outcome, error) {
	taskDefinition, lookupError := runner.registry.Lookup(taskName)
	if lookupError != nil {
		return Outcome{TaskName: taskName, Failed: true}, lookupError
	}

	startedAt := runner.clock()
	runner.logger.Debug(taskStartedMessageConstant, zap.String(taskNameFieldConstant, taskDefinition.Name))

	outcome := Outcome{TaskName: taskDefinition.Name, TotalSteps: len(taskDefinition.Steps)}
	for _, taskStep := range taskDefinition.Steps {
		runner.logger.Debug(taskStepStartedMessageConstant,
			zap.String(taskNameFieldConstant, taskDefinition.Name),
			zap.String(stepNameFieldConstant, taskStep.Name))
		if stepError := taskStep.Action(executionContext, environment); stepError != nil {
			outcome.Failed = true
			outcome.Duration = runner.clock().Sub(startedAt)
			runner.logger.Debug(taskStepFailedMessageConstant,
				zap.String(taskNameFieldConstant, taskDefinition.Name),
				zap.String(stepNameFieldConstant, taskStep.Name),
				zap.Error(stepError))
			return outcome, fmt.Errorf(stepFailureTemplateConstant, taskDefinition.Name, taskStep.Name, stepError)
		}
		outcome.CompletedSteps++
	}

	outcome.Duration = runner.clock().Sub(startedAt)
	runner.logger.Debug(taskCompletedMessageConstant,
		zap.String(taskNameFieldConstant, taskDefinition.Name),
		zap.Duration("elapsed", outcome.Duration))
	return outcome, nil
}

package taskrunner

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/pubx/internal/tasks"
)

// Executor runs named tasks against an execution environment.
type Executor interface {
	Run(executionContext context.Context, taskName string, environment *tasks.ExecutionEnvironment) (tasks.Outcome, error)
}

// Dependencies carries the collaborators the runner needs.
type Dependencies struct {
	Registry       *tasks.Registry
	Logger         *zap.Logger
	Output         io.Writer
	Errors         io.Writer
	DisableSummary bool
}

// Factory constructs an Executor given runner dependencies.
type Factory func(Dependencies) Executor

type runnerAdapter struct {
	runner *tasks.Runner
}

func (adapter runnerAdapter) Run(executionContext context.Context, taskName string, environment *tasks.ExecutionEnvironment) (tasks.Outcome, error) {
	return adapter.runner.Run(executionContext, taskName, environment)
}

// Resolve returns either the provided factory result or the default task
// runner, wrapped so every run ends with an elapsed-time summary line.
func Resolve(factory Factory, dependencies Dependencies) (Executor, error) {
	var base Executor
	if factory != nil {
		base = factory(dependencies)
	}
	if base == nil {
		defaultRunner, creationError := tasks.NewRunner(dependencies.Registry, dependencies.Logger)
		if creationError != nil {
			return nil, creationError
		}
		base = runnerAdapter{runner: defaultRunner}
	}
	return summaryExecutor{
		delegate:     base,
		dependencies: dependencies,
	}, nil
}

type summaryExecutor struct {
	delegate     Executor
	dependencies Dependencies
}

func (executor summaryExecutor) Run(executionContext context.Context, taskName string, environment *tasks.ExecutionEnvironment) (tasks.Outcome, error) {
	outcome, runError := executor.delegate.Run(executionContext, taskName, environment)
	executor.printSummary(outcome)
	return outcome, runError
}

func (executor summaryExecutor) printSummary(outcome tasks.Outcome) {
	if executor.dependencies.DisableSummary {
		return
	}
	writer := executor.summaryWriter()
	if writer == nil {
		return
	}

	summary := RenderSummaryLine(outcome)
	if len(strings.TrimSpace(summary)) == 0 {
		return
	}
	fmt.Fprintln(writer, summary)
}

func (executor summaryExecutor) summaryWriter() io.Writer {
	if executor.dependencies.Errors != nil {
		return executor.dependencies.Errors
	}
	if executor.dependencies.Output != nil {
		return executor.dependencies.Output
	}
	return nil
}

// Package tasks defines the named operations the dispatcher can execute and
// the fail-fast runner that sequences their delegated steps.
package tasks

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/pubx/internal/cleanup"
	"github.com/temirov/pubx/internal/execshell"
	"github.com/temirov/pubx/internal/shelltask"
)

// StepAction performs one delegated invocation within a task.
type StepAction func(executionContext context.Context, environment *ExecutionEnvironment) error

// Step is a named delegated invocation.
type Step struct {
	Name   string
	Action StepAction
}

// Task is a named, fixed sequence of delegated steps.
type Task struct {
	Name    string
	Summary string
	Steps   []Step
}

// ExecutionEnvironment carries the collaborators and settings each step needs.
// The environment-variable table is populated once, before any delegation, and
// inherited by every delegated call.
type ExecutionEnvironment struct {
	ShellExecutor        *execshell.ShellExecutor
	ScriptRuntime        *shelltask.ScriptRuntime
	CleanupService       *cleanup.Service
	Logger               *zap.Logger
	Output               io.Writer
	Errors               io.Writer
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	Arguments            []string
	Settings             Settings
}

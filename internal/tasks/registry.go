package tasks

import (
	"fmt"
	"sort"
)

const (
	unknownTaskErrorTemplateConstant   = "unknown task: %s"
	duplicateTaskErrorTemplateConstant = "task already registered: %s"
	emptyTaskNameErrorMessageConstant  = "task name is required"
)

// UnknownTaskError reports a dispatch request for a task no one registered.
type UnknownTaskError struct {
	TaskName string
}

// Error describes the unknown task.
func (unknownError *UnknownTaskError) Error() string {
	return fmt.Sprintf(unknownTaskErrorTemplateConstant, unknownError.TaskName)
}

// Registry maps task names to their definitions.
type Registry struct {
	tasksByName map[string]Task
}

// NewRegistry returns an empty task registry.
func NewRegistry() *Registry {
	return &Registry{tasksByName: map[string]Task{}}
}

// Register adds a task definition, rejecting blank and duplicate names.
func (registry *Registry) Register(taskDefinition Task) error {
	if len(taskDefinition.Name) == 0 {
		return fmt.Errorf(emptyTaskNameErrorMessageConstant)
	}
	if _, exists := registry.tasksByName[taskDefinition.Name]; exists {
		return fmt.Errorf(duplicateTaskErrorTemplateConstant, taskDefinition.Name)
	}
	registry.tasksByName[taskDefinition.Name] = taskDefinition
	return nil
}

// Lookup resolves a task by name.
func (registry *Registry) Lookup(taskName string) (Task, error) {
	taskDefinition, exists := registry.tasksByName[taskName]
	if !exists {
		return Task{}, &UnknownTaskError{TaskName: taskName}
	}
	return taskDefinition, nil
}

// Names lists the registered task names in lexical order.
func (registry *Registry) Names() []string {
	taskNames := make([]string, 0, len(registry.tasksByName))
	for taskName := range registry.tasksByName {
		taskNames = append(taskNames, taskName)
	}
	sort.Strings(taskNames)
	return taskNames
}

// Tasks lists the registered tasks ordered by name.
func (registry *Registry) Tasks() []Task {
	orderedTasks := make([]Task, 0, len(registry.tasksByName))
	for _, taskName := range registry.Names() {
		orderedTasks = append(orderedTasks, registry.tasksByName[taskName])
	}
	return orderedTasks
}

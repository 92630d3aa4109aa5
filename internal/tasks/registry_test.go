package tasks_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pubx/internal/tasks"
)

const (
	registeredTaskNameConstant      = "install"
	otherRegisteredTaskNameConstant = "clean"
	missingTaskNameConstant         = "deploy"
)

func TestRegistryRegisterValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		taskNames     []string
		expectedError bool
	}{
		{
			name:          "accepts_distinct_names",
			taskNames:     []string{registeredTaskNameConstant, otherRegisteredTaskNameConstant},
			expectedError: false,
		},
		{
			name:          "rejects_blank_name",
			taskNames:     []string{""},
			expectedError: true,
		},
		{
			name:          "rejects_duplicate_name",
			taskNames:     []string{registeredTaskNameConstant, registeredTaskNameConstant},
			expectedError: true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtestInstance *testing.T) {
			taskRegistry := tasks.NewRegistry()

			var lastError error
			for _, taskName := range testCase.taskNames {
				lastError = taskRegistry.Register(tasks.Task{Name: taskName})
			}

			if testCase.expectedError {
				require.Error(subtestInstance, lastError)
				return
			}
			require.NoError(subtestInstance, lastError)
		})
	}
}

func TestRegistryLookupReportsUnknownTask(testInstance *testing.T) {
	taskRegistry := tasks.NewRegistry()
	require.NoError(testInstance, taskRegistry.Register(tasks.Task{Name: registeredTaskNameConstant}))

	_, lookupError := taskRegistry.Lookup(missingTaskNameConstant)

	var unknownTaskError *tasks.UnknownTaskError
	require.True(testInstance, errors.As(lookupError, &unknownTaskError))
	require.Equal(testInstance, missingTaskNameConstant, unknownTaskError.TaskName)
}

func TestRegistryNamesAreSorted(testInstance *testing.T) {
	taskRegistry := tasks.NewRegistry()
	require.NoError(testInstance, taskRegistry.Register(tasks.Task{Name: registeredTaskNameConstant}))
	require.NoError(testInstance, taskRegistry.Register(tasks.Task{Name: otherRegisteredTaskNameConstant}))

	require.Equal(testInstance, []string{otherRegisteredTaskNameConstant, registeredTaskNameConstant}, taskRegistry.Names())
}

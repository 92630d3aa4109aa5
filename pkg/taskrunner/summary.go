package taskrunner

import (
	"fmt"
	"strings"
	"time"

	"github.com/temirov/pubx/internal/tasks"
)

const (
	summarySuccessTemplateConstant = "Task %s completed in %s (%d/%d steps)"
	summaryFailureTemplateConstant = "Task %s failed after %s (%d/%d steps)"
)

// RenderSummaryLine returns the line printed after each task run.
func RenderSummaryLine(outcome tasks.Outcome) string {
	taskName := strings.TrimSpace(outcome.TaskName)
	if len(taskName) == 0 {
		return ""
	}

	elapsed := outcome.Duration.Round(time.Millisecond)
	if elapsed < 0 {
		elapsed = 0
	}

	template := summarySuccessTemplateConstant
	if outcome.Failed {
		template = summaryFailureTemplateConstant
	}
	return fmt.Sprintf(template, taskName, elapsed, outcome.CompletedSteps, outcome.TotalSteps)
}

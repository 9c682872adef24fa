// Package report renders execution results for humans and persists them
// as JSON for later inspection.
package report

import (
	"fmt"
	"strings"

	"github.com/dukex/sonda/pkg/models"
)

// Render produces the plain-text execution report.
func Render(result *models.ExecutionResult) string {
	var b strings.Builder

	b.WriteString("Execution Report\n")
	b.WriteString("================\n\n")

	fmt.Fprintf(&b, "Execution ID: %s\n", result.ExecutionID)
	fmt.Fprintf(&b, "Question:     %s\n", result.Plan.Question)
	fmt.Fprintf(&b, "Complexity:   %s\n", result.Plan.Complexity)
	fmt.Fprintf(&b, "Steps:        %d declared, %d executed\n", len(result.Plan.Steps), len(result.StepResults))
	fmt.Fprintf(&b, "Success rate: %.1f%%\n", result.SuccessRate)
	fmt.Fprintf(&b, "Duration:     %.2fs\n", result.TotalExecutionTime)

	if result.EarlyTerminated {
		b.WriteString("Terminated early: yes\n")
	}

	b.WriteString("\nSteps\n-----\n")

	for _, sr := range result.StepResults {
		fmt.Fprintf(&b, "%d. [%s] %s", sr.StepID, sr.Status, sr.StepType)

		if step, found := result.Plan.Step(sr.StepID); found {
			fmt.Fprintf(&b, " - %s", step.Description)
		}

		fmt.Fprintf(&b, " (%.2fs)\n", sr.ExecutionTime)

		if sr.Error != "" {
			fmt.Fprintf(&b, "   error: %s\n", sr.Error)
		}
	}

	b.WriteString("\nFinal Answer\n------------\n")
	b.WriteString(result.FinalAnswer)
	b.WriteString("\n")

	return b.String()
}

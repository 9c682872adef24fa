package models

// StepStatus is the terminal status of one executed (or skipped) step.
type StepStatus string

const (
	StepStatusSuccess StepStatus = "success"
	StepStatusFailed  StepStatus = "failed"
	StepStatusSkipped StepStatus = "skipped"
)

// StepResult records the outcome of a single step. Output is empty unless
// the status is success.
type StepResult struct {
	StepID        int        `json:"step_id"`
	StepType      StepType   `json:"step_type"`
	Status        StepStatus `json:"status"`
	Output        string     `json:"output,omitempty"`
	Error         string     `json:"error,omitempty"`
	ExecutionTime float64    `json:"execution_time,omitempty"` // seconds
}

// ExecutionResult is the immutable outcome of executing a plan: one
// StepResult per declared step (in declared order), the folded final
// answer, and run-level metrics.
type ExecutionResult struct {
	ExecutionID        string        `json:"execution_id"`
	Plan               ExecutionPlan `json:"plan"`
	StepResults        []StepResult  `json:"step_results"`
	FinalAnswer        string        `json:"final_answer"`
	TotalExecutionTime float64       `json:"total_execution_time"` // seconds
	SuccessRate        float64       `json:"success_rate"`         // percentage over declared steps
	EarlyTerminated    bool          `json:"early_terminated"`
}

// SuccessfulSteps counts step results with status success.
func (r *ExecutionResult) SuccessfulSteps() int {
	count := 0

	for _, sr := range r.StepResults {
		if sr.Status == StepStatusSuccess {
			count++
		}
	}

	return count
}

// Package web provides the HTTP API for asking questions and inspecting
// the plans sonda builds for them.
package web

import "github.com/dukex/sonda/pkg/models"

// AskRequest is the request body for answering a question.
type AskRequest struct {
	Question   string `json:"question"    validate:"required,min=3"`
	SaveReport bool   `json:"save_report"`
}

// PlanRequest is the request body for building a plan without running it.
type PlanRequest struct {
	Question string `json:"question" validate:"required,min=3"`
}

// AskResponse carries the full execution outcome.
type AskResponse struct {
	ExecutionID        string               `json:"execution_id"`
	Question           string               `json:"question"`
	FinalAnswer        string               `json:"final_answer"`
	SuccessRate        float64              `json:"success_rate"`
	TotalExecutionTime float64              `json:"total_execution_time"`
	EarlyTerminated    bool                 `json:"early_terminated"`
	Plan               models.ExecutionPlan `json:"plan"`
	StepResults        []models.StepResult  `json:"step_results"`
	ReportPath         string               `json:"report_path,omitempty"`
}

func newAskResponse(result *models.ExecutionResult, reportPath string) AskResponse {
	return AskResponse{
		ExecutionID:        result.ExecutionID,
		Question:           result.Plan.Question,
		FinalAnswer:        result.FinalAnswer,
		SuccessRate:        result.SuccessRate,
		TotalExecutionTime: result.TotalExecutionTime,
		EarlyTerminated:    result.EarlyTerminated,
		Plan:               result.Plan,
		StepResults:        result.StepResults,
		ReportPath:         reportPath,
	}
}

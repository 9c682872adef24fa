// Package models defines the core domain models for plan-driven question answering.
package models

import (
	"fmt"
)

// StepType identifies which responder a step is dispatched to and how its
// input text is assembled.
type StepType string

const (
	StepTypeReasoning  StepType = "reasoning"   // research responder, free-form reasoning
	StepTypeWebSearch  StepType = "web_search"  // research responder, web lookup
	StepTypeNewsSearch StepType = "news_search" // research responder, recent news lookup
	StepTypeKBQuery    StepType = "kb_query"    // knowledge responder
	StepTypeAggregate  StepType = "aggregate"   // synthesis responder, folds dependency outputs
	StepTypeCompare    StepType = "compare"     // synthesis responder, labeled comparison
)

// Valid reports whether the step type is one of the known types.
func (t StepType) Valid() bool {
	switch t {
	case StepTypeReasoning, StepTypeWebSearch, StepTypeNewsSearch,
		StepTypeKBQuery, StepTypeAggregate, StepTypeCompare:
		return true
	}

	return false
}

// Complexity classifies a plan and carries a soft ceiling on its step count.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// MaxPlanSteps is the hard ceiling on declared steps, regardless of complexity.
const MaxPlanSteps = 15

// MaxSteps returns the soft step-count ceiling for the complexity.
// Unknown complexities fall back to the hard ceiling.
func (c Complexity) MaxSteps() int {
	switch c {
	case ComplexitySimple:
		return 5
	case ComplexityMedium:
		return 10
	case ComplexityComplex:
		return MaxPlanSteps
	default:
		return MaxPlanSteps
	}
}

// ExecutionStep is one unit of work in a plan.
type ExecutionStep struct {
	StepID         int      `json:"step_id"         validate:"required,min=1"`
	StepType       StepType `json:"step_type"       validate:"required"`
	Description    string   `json:"description"     validate:"required"`
	Action         string   `json:"action"          validate:"required"`
	Dependencies   []int    `json:"dependencies"`
	ExpectedOutput string   `json:"expected_output"`
}

// ExecutionPlan is an ordered, dependency-annotated list of steps that
// answers a question. Plans are constructed once and never mutated; the
// declared order is the execution order.
type ExecutionPlan struct {
	Question            string          `json:"question"              validate:"required"`
	Analysis            string          `json:"analysis"`
	Steps               []ExecutionStep `json:"steps"                 validate:"required,max=15,dive"`
	ExpectedFinalOutput string          `json:"expected_final_output"`
	Complexity          Complexity      `json:"complexity"            validate:"required"`
}

// Validate performs the structural checks a plan must pass before
// execution: unique step ids, known step types, and dependencies that
// reference strictly earlier-declared steps. Declared order is therefore
// a valid topological order by construction; cycles and forward
// references cannot pass.
//
// The complexity step-count ceiling is deliberately not checked here —
// exceeding it is a warning at execution time, not a structural failure.
func (p *ExecutionPlan) Validate() error {
	if len(p.Steps) == 0 {
		return ErrEmptySteps
	}

	if len(p.Steps) > MaxPlanSteps {
		return fmt.Errorf("%w: %d steps declared, maximum is %d", ErrTooManySteps, len(p.Steps), MaxPlanSteps)
	}

	seen := make(map[int]struct{}, len(p.Steps))

	for _, step := range p.Steps {
		if !step.StepType.Valid() {
			return fmt.Errorf("%w: step %d has type %q", ErrUnknownStepType, step.StepID, step.StepType)
		}

		if _, dup := seen[step.StepID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateStepID, step.StepID)
		}

		for _, depID := range step.Dependencies {
			if depID == step.StepID {
				return fmt.Errorf("%w: step %d", ErrSelfDependency, step.StepID)
			}

			if _, ok := seen[depID]; !ok {
				return fmt.Errorf("%w: step %d depends on %d", ErrForwardDependency, step.StepID, depID)
			}
		}

		seen[step.StepID] = struct{}{}
	}

	return nil
}

// ExceedsComplexityLimit reports whether the declared step count is over
// the soft ceiling for the plan's complexity. Callers log this; the full
// declared list still executes.
func (p *ExecutionPlan) ExceedsComplexityLimit() bool {
	return len(p.Steps) > p.Complexity.MaxSteps()
}

// Step returns the declared step with the given id.
func (p *ExecutionPlan) Step(stepID int) (ExecutionStep, bool) {
	for _, step := range p.Steps {
		if step.StepID == stepID {
			return step, true
		}
	}

	return ExecutionStep{}, false
}

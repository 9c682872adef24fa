package execution

import (
	"github.com/dukex/sonda/pkg/models"
)

// DefaultMinSynthesisLength is the output length a synthesis step must
// exceed before the engine considers stopping early.
const DefaultMinSynthesisLength = 800

// TerminationPolicy decides whether a run may stop before all declared
// steps execute. It is a tunable heuristic, not an optimal stopping rule:
// once a synthesis output longer than MinSynthesisLength exists and every
// remaining step's type is in SkippableTypes, the marginal value of the
// tail is assumed low.
type TerminationPolicy struct {
	// MinSynthesisLength is the strict lower bound (exclusive) on the
	// synthesis output length.
	MinSynthesisLength int `json:"min_synthesis_length" yaml:"min_synthesis_length"`

	// SkippableTypes lists the step types the run may abandon. A pending
	// step of any other type keeps the run alive.
	SkippableTypes []models.StepType `json:"skippable_types" yaml:"skippable_types"`
}

// DefaultTerminationPolicy allows abandoning exploratory steps only:
// pending aggregate, compare, and kb_query steps always block early
// termination.
func DefaultTerminationPolicy() TerminationPolicy {
	return TerminationPolicy{
		MinSynthesisLength: DefaultMinSynthesisLength,
		SkippableTypes: []models.StepType{
			models.StepTypeWebSearch,
			models.StepTypeNewsSearch,
			models.StepTypeReasoning,
		},
	}
}

// ShouldTerminate reports whether the run may stop, given the output of a
// just-succeeded synthesis step and the not-yet-executed remainder of the
// plan. Callers gate on the step being a successful aggregate/compare
// that is not the plan's last declared step.
func (p TerminationPolicy) ShouldTerminate(output string, remaining []models.ExecutionStep) bool {
	if len(remaining) == 0 {
		return false
	}

	if len(output) <= p.MinSynthesisLength {
		return false
	}

	for _, step := range remaining {
		if !p.skippable(step.StepType) {
			return false
		}
	}

	return true
}

func (p TerminationPolicy) skippable(stepType models.StepType) bool {
	for _, t := range p.SkippableTypes {
		if t == stepType {
			return true
		}
	}

	return false
}

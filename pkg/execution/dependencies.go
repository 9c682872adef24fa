package execution

import (
	"github.com/dukex/sonda/pkg/models"
)

// dependenciesNotMetError is recorded on steps skipped because a
// prerequisite did not succeed.
const dependenciesNotMetError = "Dependencies not met"

// dependenciesMet reports whether every dependency of the step has a
// recorded result with status success. A missing, failed, or skipped
// dependency makes the step unmet; such a step is skipped and never
// re-evaluated within the run.
func dependenciesMet(step models.ExecutionStep, state *executionState) bool {
	for _, depID := range step.Dependencies {
		status, ok := state.status(depID)
		if !ok {
			return false
		}

		if status != models.StepStatusSuccess {
			return false
		}
	}

	return true
}

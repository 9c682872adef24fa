package execution

import (
	"github.com/dukex/sonda/pkg/models"
)

// executionState is the mutable scratch space for one Execute call. It is
// created at loop start and discarded when the result is assembled, so an
// Engine value stays safe for concurrent Execute calls.
type executionState struct {
	results         map[int]models.StepResult
	outputs         map[int]string
	order           []int // step ids in the order they were recorded
	earlyTerminated bool
}

func newExecutionState() *executionState {
	return &executionState{
		results: make(map[int]models.StepResult),
		outputs: make(map[int]string),
	}
}

func (s *executionState) record(result models.StepResult) {
	if _, seen := s.results[result.StepID]; !seen {
		s.order = append(s.order, result.StepID)
	}

	s.results[result.StepID] = result

	if result.Status == models.StepStatusSuccess {
		s.outputs[result.StepID] = result.Output
	}
}

func (s *executionState) status(stepID int) (models.StepStatus, bool) {
	result, ok := s.results[stepID]
	if !ok {
		return "", false
	}

	return result.Status, true
}

func (s *executionState) output(stepID int) (string, bool) {
	output, ok := s.outputs[stepID]

	return output, ok
}

// stepResults returns the recorded results in recording order, which for
// a sequential run is the declared order of the reached steps.
func (s *executionState) stepResults() []models.StepResult {
	results := make([]models.StepResult, 0, len(s.order))
	for _, stepID := range s.order {
		results = append(results, s.results[stepID])
	}

	return results
}

// finalAnswer selects the output of the highest step id that produced
// one. Trailing declared steps may have failed, been skipped, or never
// run, so this is not necessarily the last declared step.
func (s *executionState) finalAnswer() (string, bool) {
	best := 0
	found := false

	for stepID := range s.outputs {
		if !found || stepID > best {
			best = stepID
			found = true
		}
	}

	if !found {
		return "", false
	}

	return s.outputs[best], true
}

func (s *executionState) successfulSteps() int {
	count := 0

	for _, result := range s.results {
		if result.Status == models.StepStatusSuccess {
			count++
		}
	}

	return count
}

package execution

import (
	"strings"
	"testing"

	"github.com/dukex/sonda/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestTerminationPolicy_ShouldTerminate(t *testing.T) {
	policy := DefaultTerminationPolicy()

	long := strings.Repeat("x", 801)
	short := strings.Repeat("x", 800)

	remaining := []models.ExecutionStep{
		{StepID: 4, StepType: models.StepTypeWebSearch},
		{StepID: 5, StepType: models.StepTypeReasoning},
	}

	assert.True(t, policy.ShouldTerminate(long, remaining))
	assert.False(t, policy.ShouldTerminate(short, remaining), "length bound is exclusive")
	assert.False(t, policy.ShouldTerminate(long, nil), "nothing left to skip")
}

func TestTerminationPolicy_ShouldTerminate_BlockedByPendingSynthesis(t *testing.T) {
	policy := DefaultTerminationPolicy()
	long := strings.Repeat("x", 2000)

	for _, pending := range []models.StepType{
		models.StepTypeKBQuery,
		models.StepTypeAggregate,
		models.StepTypeCompare,
	} {
		remaining := []models.ExecutionStep{
			{StepID: 4, StepType: models.StepTypeWebSearch},
			{StepID: 5, StepType: pending},
		}

		assert.False(t, policy.ShouldTerminate(long, remaining), "pending %s must block termination", pending)
	}
}

func TestTerminationPolicy_CustomThreshold(t *testing.T) {
	policy := TerminationPolicy{
		MinSynthesisLength: 100,
		SkippableTypes:     []models.StepType{models.StepTypeWebSearch},
	}

	remaining := []models.ExecutionStep{{StepID: 2, StepType: models.StepTypeWebSearch}}

	assert.True(t, policy.ShouldTerminate(strings.Repeat("x", 101), remaining))
	assert.False(t, policy.ShouldTerminate(strings.Repeat("x", 100), remaining))

	remaining[0].StepType = models.StepTypeReasoning
	assert.False(t, policy.ShouldTerminate(strings.Repeat("x", 101), remaining))
}

func TestEngine_WithTerminationPolicy(t *testing.T) {
	policy := TerminationPolicy{
		MinSynthesisLength: 10,
		SkippableTypes: []models.StepType{
			models.StepTypeWebSearch,
			models.StepTypeNewsSearch,
			models.StepTypeReasoning,
		},
	}

	engine := NewEngine(staticResponders("search out", "kb out", "a short synthesis"), testLogger()).
		WithTerminationPolicy(policy)

	plan := testPlan(models.ComplexityMedium,
		models.ExecutionStep{StepID: 1, StepType: models.StepTypeWebSearch, Description: "a", Action: "a"},
		models.ExecutionStep{StepID: 2, StepType: models.StepTypeAggregate, Description: "b", Action: "b", Dependencies: []int{1}},
		models.ExecutionStep{StepID: 3, StepType: models.StepTypeWebSearch, Description: "c", Action: "c"},
	)

	result := engine.Execute(t.Context(), plan)

	assert.True(t, result.EarlyTerminated)
	assert.Len(t, result.StepResults, 2)
}

package execution

import (
	"context"
	"strconv"
	"time"

	"github.com/dukex/sonda/pkg/eventbus"
	"github.com/dukex/sonda/pkg/events"
	"github.com/dukex/sonda/pkg/models"
)

// Event publishing is fire-and-forget: a slow or failing bus must never
// change execution semantics, so publish errors are swallowed here.

func (e *Engine) publish(ctx context.Context, key string, event eventbus.Event) {
	if e.eventBus == nil {
		return
	}

	_ = e.eventBus.Publish(ctx, key, event)
}

func (e *Engine) publishStarted(ctx context.Context, executionID string, plan *models.ExecutionPlan) {
	e.publish(ctx, executionID, events.ExecutionStarted{
		BaseEvent:  events.NewBaseEvent(events.ExecutionStartedEvent, executionID),
		Question:   plan.Question,
		Complexity: plan.Complexity,
		StepCount:  len(plan.Steps),
	})
}

func (e *Engine) publishCompleted(ctx context.Context, executionID string, result *models.ExecutionResult) {
	e.publish(ctx, executionID, events.ExecutionCompleted{
		BaseEvent:       events.NewBaseEvent(events.ExecutionCompletedEvent, executionID),
		SuccessRate:     result.SuccessRate,
		DurationSeconds: result.TotalExecutionTime,
		StepsExecuted:   len(result.StepResults),
		EarlyTerminated: result.EarlyTerminated,
	})
}

func (e *Engine) publishEarlyTerminated(ctx context.Context, executionID string, afterStepID, outputLength, remaining int) {
	e.publish(ctx, executionID, events.ExecutionEarlyTerminated{
		BaseEvent:      events.NewBaseEvent(events.ExecutionEarlyTerminatedEvent, executionID),
		AfterStepID:    afterStepID,
		OutputLength:   outputLength,
		RemainingSteps: remaining,
	})
}

func (e *Engine) publishStepStarted(ctx context.Context, executionID string, step models.ExecutionStep) {
	e.publish(ctx, stepKey(executionID, step), events.StepStarted{
		BaseEvent: events.NewBaseEvent(events.StepStartedEvent, executionID),
		StepID:    step.StepID,
		StepType:  step.StepType,
	})
}

func (e *Engine) publishStepFinished(ctx context.Context, executionID string, step models.ExecutionStep, outputLength int, elapsed time.Duration) {
	e.publish(ctx, stepKey(executionID, step), events.StepFinished{
		BaseEvent:       events.NewBaseEvent(events.StepFinishedEvent, executionID),
		StepID:          step.StepID,
		StepType:        step.StepType,
		OutputLength:    outputLength,
		DurationSeconds: elapsed.Seconds(),
	})
}

func (e *Engine) publishStepFailed(ctx context.Context, executionID string, step models.ExecutionStep, err error, elapsed time.Duration) {
	e.publish(ctx, stepKey(executionID, step), events.StepFailed{
		BaseEvent:       events.NewBaseEvent(events.StepFailedEvent, executionID),
		StepID:          step.StepID,
		StepType:        step.StepType,
		Error:           err.Error(),
		DurationSeconds: elapsed.Seconds(),
	})
}

func (e *Engine) publishSkipped(ctx context.Context, executionID string, step models.ExecutionStep, reason string) {
	e.publish(ctx, stepKey(executionID, step), events.StepSkipped{
		BaseEvent: events.NewBaseEvent(events.StepSkippedEvent, executionID),
		StepID:    step.StepID,
		StepType:  step.StepType,
		Reason:    reason,
	})
}

func stepKey(executionID string, step models.ExecutionStep) string {
	return executionID + "-step-" + strconv.Itoa(step.StepID)
}

// Package execution drives the sequential step loop that turns an
// execution plan into a final answer and a per-step report.
package execution

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/sonda/pkg/eventbus"
	"github.com/dukex/sonda/pkg/models"
	"github.com/dukex/sonda/pkg/otelhelper"
	"github.com/dukex/sonda/pkg/protocol"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// NoResultsAvailable is the final answer when no step produced output.
const NoResultsAvailable = "No results available"

// EarlyTerminationNotice is appended to the final answer of a run the
// termination policy cut short.
const EarlyTerminationNotice = "\n\n(Early completion: sufficient information collected)"

// Engine executes plans strictly sequentially in declared order. One step
// runs at a time, responder calls block with no engine-level timeout, and
// no step is ever retried. All per-run state lives in the Execute call,
// so a single Engine value serves concurrent executions.
type Engine struct {
	dispatcher *dispatcher
	policy     TerminationPolicy
	logger     *slog.Logger
	eventBus   eventbus.EventPublisher
	tracer     trace.Tracer
}

// NewEngine creates an engine over the given responders with the default
// termination policy.
func NewEngine(responders protocol.Responders, logger *slog.Logger) *Engine {
	return &Engine{
		dispatcher: &dispatcher{responders: responders},
		policy:     DefaultTerminationPolicy(),
		logger:     logger,
	}
}

// WithTerminationPolicy overrides the early-termination policy.
func (e *Engine) WithTerminationPolicy(policy TerminationPolicy) *Engine {
	e.policy = policy

	return e
}

// WithEventBus enables lifecycle event publishing. Publishing is
// best-effort; a failing bus never affects the run.
func (e *Engine) WithEventBus(bus eventbus.EventPublisher) *Engine {
	e.eventBus = bus

	return e
}

// WithTracer enables span creation per execution and per step.
func (e *Engine) WithTracer(tracer trace.Tracer) *Engine {
	e.tracer = tracer

	return e
}

// Execute runs the plan and always returns a best-effort result: step
// failures are recorded, dependents of failed or skipped steps are
// skipped, and nothing at step level escalates to the caller.
func (e *Engine) Execute(ctx context.Context, plan *models.ExecutionPlan) models.ExecutionResult {
	executionID := generateExecutionID()

	logger := e.logger.With(
		"execution_id", executionID,
		"complexity", plan.Complexity,
		"steps", len(plan.Steps),
	)

	if e.tracer != nil {
		var span trace.Span

		ctx, span = otelhelper.StartSpan(ctx, e.tracer, "execution.execute",
			attribute.String(otelhelper.ExecutionIDKey, executionID),
			attribute.String(otelhelper.ComplexityKey, string(plan.Complexity)),
			attribute.Int(otelhelper.StepCountKey, len(plan.Steps)),
		)
		defer span.End()
	}

	logger.Info("Starting plan execution", "question", plan.Question)

	if plan.ExceedsComplexityLimit() {
		// Non-fatal: the declared list is the execution authority.
		logger.Warn("Plan exceeds step ceiling for its complexity",
			"declared", len(plan.Steps),
			"ceiling", plan.Complexity.MaxSteps(),
		)
	}

	start := time.Now()
	state := newExecutionState()

	e.publishStarted(ctx, executionID, plan)

	for idx, step := range plan.Steps {
		e.executeStep(ctx, logger, executionID, step, state)

		if step.StepType != models.StepTypeAggregate && step.StepType != models.StepTypeCompare {
			continue
		}

		if status, ok := state.status(step.StepID); !ok || status != models.StepStatusSuccess {
			continue
		}

		if idx == len(plan.Steps)-1 {
			continue
		}

		output, _ := state.output(step.StepID)
		remaining := plan.Steps[idx+1:]

		if e.policy.ShouldTerminate(output, remaining) {
			logger.Info("Early termination: sufficient synthesis collected",
				"after_step", step.StepID,
				"output_length", len(output),
				"remaining_steps", len(remaining),
			)

			state.earlyTerminated = true

			e.publishEarlyTerminated(ctx, executionID, step.StepID, len(output), len(remaining))

			break
		}
	}

	finalAnswer, found := state.finalAnswer()
	if !found {
		finalAnswer = NoResultsAvailable
	}

	if state.earlyTerminated {
		finalAnswer += EarlyTerminationNotice
	}

	successful := state.successfulSteps()
	successRate := float64(successful) / float64(len(plan.Steps)) * 100

	result := models.ExecutionResult{
		ExecutionID:        executionID,
		Plan:               *plan,
		StepResults:        state.stepResults(),
		FinalAnswer:        finalAnswer,
		TotalExecutionTime: time.Since(start).Seconds(),
		SuccessRate:        successRate,
		EarlyTerminated:    state.earlyTerminated,
	}

	e.publishCompleted(ctx, executionID, &result)

	logger.Info("Plan execution completed",
		"successful", successful,
		"success_rate", fmt.Sprintf("%.1f%%", successRate),
		"duration_s", fmt.Sprintf("%.2f", result.TotalExecutionTime),
		"early_terminated", state.earlyTerminated,
	)

	return result
}

func (e *Engine) executeStep(ctx context.Context, logger *slog.Logger, executionID string, step models.ExecutionStep, state *executionState) {
	stepLogger := logger.With("step_id", step.StepID, "step_type", step.StepType)

	if e.tracer != nil {
		var span trace.Span

		ctx, span = otelhelper.StartSpan(ctx, e.tracer, "execution.step",
			attribute.String(otelhelper.ExecutionIDKey, executionID),
			attribute.Int(otelhelper.StepIDKey, step.StepID),
			attribute.String(otelhelper.StepTypeKey, string(step.StepType)),
		)
		defer span.End()
	}

	if !dependenciesMet(step, state) {
		stepLogger.Warn("Step dependencies not met, skipping")

		state.record(models.StepResult{
			StepID:   step.StepID,
			StepType: step.StepType,
			Status:   models.StepStatusSkipped,
			Error:    dependenciesNotMetError,
		})

		e.publishSkipped(ctx, executionID, step, dependenciesNotMetError)

		return
	}

	stepLogger.Info("Executing step", "description", step.Description)
	e.publishStepStarted(ctx, executionID, step)

	output, elapsed, err := e.dispatcher.dispatch(ctx, step, state)
	if err != nil {
		stepLogger.Error("Step failed", "error", err, "duration_s", elapsed.Seconds())

		state.record(models.StepResult{
			StepID:        step.StepID,
			StepType:      step.StepType,
			Status:        models.StepStatusFailed,
			Error:         err.Error(),
			ExecutionTime: elapsed.Seconds(),
		})

		e.publishStepFailed(ctx, executionID, step, err, elapsed)

		return
	}

	stepLogger.Info("Step completed", "duration_s", elapsed.Seconds(), "output_length", len(output))

	state.record(models.StepResult{
		StepID:        step.StepID,
		StepType:      step.StepType,
		Status:        models.StepStatusSuccess,
		Output:        output,
		ExecutionTime: elapsed.Seconds(),
	})

	e.publishStepFinished(ctx, executionID, step, len(output), elapsed)
}

// generateExecutionID generates a unique execution ID.
func generateExecutionID() string {
	return "exec-" + uuid.New().String()[:8]
}

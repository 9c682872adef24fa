package execution

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dukex/sonda/pkg/models"
	"github.com/dukex/sonda/pkg/protocol"
)

// dispatcher routes a step to the responder its type maps to and
// assembles the responder's input text. It measures the wall clock of
// every responder call; a responder error surfaces to the engine, which
// records the step as failed and keeps going.
type dispatcher struct {
	responders protocol.Responders
}

// dispatch executes one step and returns its output and call duration.
func (d *dispatcher) dispatch(ctx context.Context, step models.ExecutionStep, state *executionState) (string, time.Duration, error) {
	start := time.Now()
	output, err := d.call(ctx, step, state)
	elapsed := time.Since(start)

	return output, elapsed, err
}

func (d *dispatcher) call(ctx context.Context, step models.ExecutionStep, state *executionState) (string, error) {
	switch step.StepType {
	case models.StepTypeReasoning, models.StepTypeWebSearch:
		return d.responders.Research.Research(ctx, step.Action)
	case models.StepTypeNewsSearch:
		return d.responders.Research.Research(ctx, protocol.NewsQueryPrefix+step.Action)
	case models.StepTypeKBQuery:
		return d.responders.Knowledge.Retrieve(ctx, step.Action)
	case models.StepTypeAggregate:
		return d.responders.Synthesis.Synthesize(ctx, aggregateInput(step, state))
	case models.StepTypeCompare:
		return d.responders.Synthesis.Synthesize(ctx, compareInput(step, state))
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownStepType, step.StepType)
	}
}

// aggregateInput concatenates each dependency's recorded output under an
// aggregation preamble, each labeled with its step id.
func aggregateInput(step models.ExecutionStep, state *executionState) string {
	var b strings.Builder

	b.WriteString("Aggregate the following data:\n\n")

	for _, depID := range step.Dependencies {
		output, ok := state.output(depID)
		if !ok {
			continue
		}

		fmt.Fprintf(&b, "Step %d output:\n%s\n\n", depID, output)
	}

	return b.String()
}

// compareInput places the comparison instruction before the labeled
// dependency outputs, under a comparison preamble.
func compareInput(step models.ExecutionStep, state *executionState) string {
	var b strings.Builder

	b.WriteString("Compare the following data:\n\n")
	fmt.Fprintf(&b, "Comparison task: %s\n\n", step.Action)

	for _, depID := range step.Dependencies {
		output, ok := state.output(depID)
		if !ok {
			continue
		}

		fmt.Fprintf(&b, "Data from step %d:\n%s\n\n", depID, output)
	}

	return b.String()
}

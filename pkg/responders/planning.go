package responders

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// Planning asks the model for a plan document. It returns the raw model
// text; decoding and fallback live in the planner package.
type Planning struct {
	model llms.Model
}

func NewPlanning(model llms.Model) *Planning {
	return &Planning{model: model}
}

func (p *Planning) Plan(ctx context.Context, question string) (string, error) {
	return complete(ctx, p.model, planningSystemPrompt, question)
}

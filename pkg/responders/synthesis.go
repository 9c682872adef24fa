package responders

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// Synthesis folds already-collected step outputs into a single answer.
// The input arrives fully assembled; this responder only runs the model.
type Synthesis struct {
	model llms.Model
}

func NewSynthesis(model llms.Model) *Synthesis {
	return &Synthesis{model: model}
}

func (s *Synthesis) Synthesize(ctx context.Context, input string) (string, error) {
	return complete(ctx, s.model, synthesisSystemPrompt, input)
}

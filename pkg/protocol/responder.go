// Package protocol defines the contracts between the execution engine and
// its external responders. Responders are opaque beyond these interfaces:
// the engine never inspects how an answer was produced.
package protocol

import "context"

// NewsQueryPrefix marks a research query as news-oriented. The engine
// prepends it for news search steps; responders may use it to pick a
// recency-biased source.
const NewsQueryPrefix = "Search recent news about: "

// ResearchResponder answers exploratory queries: reasoning, web search,
// and news search steps all route here.
type ResearchResponder interface {
	Research(ctx context.Context, query string) (string, error)
}

// KnowledgeResponder answers queries against an internal knowledge base.
type KnowledgeResponder interface {
	Retrieve(ctx context.Context, query string) (string, error)
}

// SynthesisResponder folds text from multiple sources into a single
// answer. Aggregation and comparison differ only in the prompt the
// dispatcher assembles.
type SynthesisResponder interface {
	Synthesize(ctx context.Context, input string) (string, error)
}

// PlanningResponder turns a question into raw plan text. Decoding the
// text into an ExecutionPlan — and falling back when it cannot be
// decoded — is the planner package's job, not the responder's.
type PlanningResponder interface {
	Plan(ctx context.Context, question string) (string, error)
}

// Responders bundles the four responder contracts the engine consumes.
type Responders struct {
	Research  ResearchResponder
	Knowledge KnowledgeResponder
	Synthesis SynthesisResponder
	Planning  PlanningResponder
}

// Package planner turns a user question into a validated execution plan.
// The planning responder proposes plan text; everything about trusting
// or rejecting that text lives here.
package planner

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/dukex/sonda/pkg/models"
	"github.com/dukex/sonda/pkg/protocol"
	"github.com/xeipuuv/gojsonschema"
)

// Planner produces execution plans. It never fails: any responder error,
// undecodable output, or invalid plan degrades to a minimal single-step
// fallback plan, so a bad planning round costs answer quality rather
// than availability.
type Planner struct {
	responder protocol.PlanningResponder
	logger    *slog.Logger
}

func NewPlanner(responder protocol.PlanningResponder, logger *slog.Logger) *Planner {
	return &Planner{
		responder: responder,
		logger:    logger.With("module", "planner"),
	}
}

// CreatePlan asks the planning responder for a plan for the question and
// decodes it. The returned plan always passes models.ExecutionPlan.Validate.
func (p *Planner) CreatePlan(ctx context.Context, question string) *models.ExecutionPlan {
	raw, err := p.responder.Plan(ctx, question)
	if err != nil {
		p.logger.Warn("Planning responder failed, using fallback plan", "error", err)

		return FallbackPlan(question)
	}

	plan, err := p.decode(raw)
	if err != nil {
		p.logger.Warn("Discarding undecodable plan, using fallback plan", "error", err)

		return FallbackPlan(question)
	}

	if plan.Question == "" {
		plan.Question = question
	}

	p.logger.Info("Plan created",
		"complexity", plan.Complexity,
		"steps", len(plan.Steps),
	)

	if plan.ExceedsComplexityLimit() {
		p.logger.Warn("Plan exceeds step ceiling for its complexity",
			"declared", len(plan.Steps),
			"ceiling", plan.Complexity.MaxSteps(),
		)
	}

	return plan
}

func (p *Planner) decode(raw string) (*models.ExecutionPlan, error) {
	document := extractJSON(raw)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(planSchema),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return nil, err
	}

	if !result.Valid() {
		return nil, &schemaError{violations: result.Errors()}
	}

	var plan models.ExecutionPlan

	err = json.Unmarshal([]byte(document), &plan)
	if err != nil {
		return nil, err
	}

	err = plan.Validate()
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

// FallbackPlan is the plan used when no trustworthy plan exists: a
// single web search carrying the question verbatim.
func FallbackPlan(question string) *models.ExecutionPlan {
	return &models.ExecutionPlan{
		Question:   question,
		Analysis:   "Fallback plan: direct search for the question",
		Complexity: models.ComplexitySimple,
		Steps: []models.ExecutionStep{
			{
				StepID:      1,
				StepType:    models.StepTypeWebSearch,
				Description: "Search for information about the question",
				Action:      question,
			},
		},
	}
}

// extractJSON strips a markdown code fence when the responder wrapped
// its JSON in one, and otherwise returns the trimmed text as-is.
func extractJSON(raw string) string {
	text := strings.TrimSpace(raw)

	if after, found := strings.CutPrefix(text, "```json"); found {
		text = after
	} else if after, found := strings.CutPrefix(text, "```"); found {
		text = after
	} else {
		return text
	}

	if before, _, found := strings.Cut(text, "```"); found {
		text = before
	}

	return strings.TrimSpace(text)
}

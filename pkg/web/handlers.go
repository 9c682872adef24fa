package web

import (
	"context"
	"log/slog"

	"github.com/dukex/sonda/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// PlanCreator builds a plan for a question. It never fails; a bad
// planning round yields a fallback plan.
type PlanCreator interface {
	CreatePlan(ctx context.Context, question string) *models.ExecutionPlan
}

// Executor runs a plan to a best-effort result.
type Executor interface {
	Execute(ctx context.Context, plan *models.ExecutionPlan) models.ExecutionResult
}

// ReportSaver persists an execution result and returns its location.
type ReportSaver interface {
	Save(result *models.ExecutionResult) (string, error)
}

type APIHandlers struct {
	planner   PlanCreator
	executor  Executor
	reports   ReportSaver
	validator *validator.Validate
	logger    *slog.Logger
}

func NewAPIHandlers(
	planner PlanCreator,
	executor Executor,
	reports ReportSaver,
	validator *validator.Validate,
	logger *slog.Logger,
) *APIHandlers {
	return &APIHandlers{
		planner:   planner,
		executor:  executor,
		reports:   reports,
		validator: validator,
		logger:    logger.With("module", "web"),
	}
}

// Router mounts the API routes on the app.
func (h *APIHandlers) Router(app *fiber.App) {
	app.Get("/health", h.GetHealth)
	app.Post("/questions", h.PostQuestion)
	app.Post("/plans", h.PostPlan)
}

func (h *APIHandlers) GetHealth(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}

// PostQuestion plans and executes a question, returning the full
// execution outcome.
func (h *APIHandlers) PostQuestion(c fiber.Ctx) error {
	var req AskRequest

	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	plan := h.planner.CreatePlan(c.Context(), req.Question)
	result := h.executor.Execute(c.Context(), plan)

	reportPath := ""

	if req.SaveReport && h.reports != nil {
		path, err := h.reports.Save(&result)
		if err != nil {
			// The answer exists; losing the report is not worth a 500.
			h.logger.Error("Failed to save execution report", "error", err, "execution_id", result.ExecutionID)
		} else {
			reportPath = path
		}
	}

	return c.JSON(newAskResponse(&result, reportPath))
}

// PostPlan builds and returns the plan for a question without executing it.
func (h *APIHandlers) PostPlan(c fiber.Ctx) error {
	var req PlanRequest

	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	plan := h.planner.CreatePlan(c.Context(), req.Question)

	return c.JSON(plan)
}

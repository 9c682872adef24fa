package main

import (
	"log/slog"
	"strconv"

	"github.com/dukex/sonda/pkg/config"
	"github.com/dukex/sonda/pkg/eventbus"
	"github.com/dukex/sonda/pkg/execution"
	"github.com/dukex/sonda/pkg/planner"
	"github.com/dukex/sonda/pkg/protocol"
	"github.com/dukex/sonda/pkg/report"
	"github.com/dukex/sonda/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger     *slog.Logger
	cfg        *config.Config
	responders protocol.Responders
	eventBus   eventbus.EventBus
	validate   *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	cfg *config.Config,
	responders protocol.Responders,
	eventBus eventbus.EventBus,
) *API {
	return &API{
		logger:     logger,
		cfg:        cfg,
		responders: responders,
		eventBus:   eventBus,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	engine := execution.NewEngine(a.responders, a.logger).
		WithTerminationPolicy(a.cfg.Termination).
		WithEventBus(a.eventBus)

	plannerService := planner.NewPlanner(a.responders.Planning, a.logger)
	reportWriter := report.NewWriter(a.cfg.Reports.Dir, a.logger)

	handlers := web.NewAPIHandlers(plannerService, engine, reportWriter, a.validate, a.logger)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Sonda API")
	})

	handlers.Router(app)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}

package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/stargate-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	People  *handlers.PersonHandler
	Duties  *handlers.DutyHandler
	Metrics http.Handler
}

// NewApp builds the fiber application. Paths are unescaped before routing so names with
// spaces resolve as path parameters.
func NewApp(name string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               name,
		UnescapePath:          true,
		DisableStartupMessage: true,
	})
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	api := app.Group("/api")
	api.Get("/GetPeople", cfg.People.GetPeople)
	api.Get("/GetPersonByName/:name?", cfg.People.GetPersonByName)
	api.Post("/Create", cfg.People.Create)
	api.Post("/UpdatePersonByName", cfg.People.UpdatePersonByName)

	// no separator between the route and the name
	api.Get("/GetDutiesByName:name?", cfg.Duties.GetDutiesByName)
	api.Post("/AssignAstronautDuty", cfg.Duties.AssignAstronautDuty)
}

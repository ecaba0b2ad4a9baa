package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	APIPrefix string
	Health    *handlers.HealthHandler
	Employees *handlers.EmployeesHandler
}

// RegisterRoutes wires HTTP routes under the configured API prefix. Static
// employee routes are registered before the :id routes so /stats/summary and
// /export/csv never match as ids.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group(cfg.APIPrefix)

	api.Get("/health", cfg.Health.Check)
	api.Get("/health/ready", cfg.Health.Ready)

	employees := api.Group("/employees")
	employees.Get("/", cfg.Employees.List)
	employees.Post("/", cfg.Employees.Create)
	employees.Post("/bulk", cfg.Employees.BulkCreate)
	employees.Get("/stats/summary", cfg.Employees.Stats)
	employees.Get("/export/csv", cfg.Employees.ExportCSV)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Put("/:id", cfg.Employees.Update)
	employees.Delete("/:id", cfg.Employees.Delete)
}

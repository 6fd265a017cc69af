package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samadhi-app/record-service/internal/api/http/handlers"
	"github.com/samadhi-app/record-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Records *handlers.RecordsHandler
	Session *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/sign-up", cfg.Auth.SignUp)
	authGroup.Get("/user", cfg.Auth.GetUserInfo)
	authGroup.Put("/update", cfg.Session.Handle, cfg.Auth.UpdateInfo)

	records := app.Group("/api/record", cfg.Session.Handle)
	records.Post("/", cfg.Records.Create)
	records.Get("/", cfg.Records.List)
	records.Get("/:record_id", cfg.Records.Get)
}

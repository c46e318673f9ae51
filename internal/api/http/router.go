package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/roster-service/internal/api/http/handlers"
	"github.com/spec-kit/roster-service/internal/auth"
	"github.com/spec-kit/roster-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Me             *handlers.MeHandler
	Restaurants    *handlers.RestaurantsHandler
	Employees      *handlers.EmployeesHandler
	AreaLeads      *handlers.AreaLeadsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/auth/logout", cfg.Auth.Logout)

	protected.Get("/me", cfg.Me.Get)
	protected.Put("/me/email", cfg.Me.ChangeEmail)
	protected.Put("/me/password", cfg.Me.ChangePassword)
	protected.Put("/me/avatar", cfg.Me.ChangeAvatar)
	protected.Get("/me/avatar", cfg.Me.GetAvatar)

	protected.Get("/restaurants", cfg.Restaurants.List)
	global := protected.Group("/restaurants/active", auth.RequireRole(domain.RoleAdmin, domain.RoleOffice))
	global.Get("", cfg.Restaurants.GetActive)
	global.Put("", cfg.Restaurants.SetActive)

	roster := protected.Group("", auth.RequireRosterManager())
	roster.Get("/employees", cfg.Employees.List)
	roster.Post("/employees", cfg.Employees.Create)
	roster.Get("/employees/:id", cfg.Employees.Get)
	roster.Put("/employees/:id", cfg.Employees.Update)
	roster.Post("/employees/:id/activate", cfg.Employees.Activate)
	roster.Post("/employees/:id/deactivate", cfg.Employees.Deactivate)
	roster.Delete("/employees/:id", cfg.Employees.Delete)

	roster.Post("/employees/:id/area-leads", cfg.AreaLeads.Assign)
	roster.Delete("/employees/:id/area-leads/:leadID", cfg.AreaLeads.Revoke)
	roster.Get("/area-leads", cfg.AreaLeads.List)
}

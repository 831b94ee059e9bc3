package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-portal-service/internal/api/http/handlers"
	"github.com/spec-kit/admin-portal-service/internal/auth"
	"github.com/spec-kit/admin-portal-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Sessions       *handlers.SessionsHandler
	Admins         *handlers.AdminsHandler
	Skills         *handlers.SkillsHandler
	Experiences    *handlers.ExperiencesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin), cfg.Health.Metrics)

	authenticated := cfg.AuthMiddleware.Handle
	anyRole := auth.RequireRole()
	clearance := auth.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin)

	// Sessions
	app.Post("/sessions/login", cfg.Sessions.Login)
	app.Post("/sessions/logout", authenticated, anyRole, cfg.Sessions.Logout)
	app.Get("/sessions/is-logged-in", authenticated, anyRole, cfg.Sessions.IsLoggedIn)
	app.Get("/sessions", authenticated, anyRole, cfg.Sessions.ListOwn)
	app.Delete("/sessions/:id", authenticated, clearance, cfg.Sessions.DeleteSession)
	app.Delete("/inactive-sessions", authenticated, clearance, cfg.Sessions.DeleteInactive)

	// Password reset (public: the caller has no session yet)
	app.Post("/passwords/reset-request", cfg.Sessions.RequestPasswordReset)
	app.Post("/passwords/:id/reset/:token", cfg.Sessions.SetPassword)

	// Admins
	app.Post("/admins", authenticated, clearance, cfg.Admins.Create)
	app.Get("/admins/:id", authenticated, clearance, cfg.Admins.Get)
	app.Get("/admins", authenticated, clearance, cfg.Admins.List)
	app.Patch("/admins/update-profile", authenticated, anyRole, cfg.Admins.UpdateProfile)
	app.Patch("/admins/update-email", authenticated, anyRole, cfg.Admins.UpdateEmail)
	app.Patch("/admins/update-password", authenticated, anyRole, cfg.Admins.UpdatePassword)
	app.Patch("/admins/:id/update-role", authenticated, clearance, cfg.Admins.UpdateRole)
	app.Patch("/admins/:id/disable", authenticated, clearance, cfg.Admins.Disable)
	app.Delete("/admins/:id", authenticated, clearance, cfg.Admins.Delete)

	// Skills (public reads)
	app.Post("/skills", authenticated, anyRole, cfg.Skills.Create)
	app.Get("/skills/:id", cfg.Skills.Get)
	app.Get("/skills", cfg.Skills.List)
	app.Patch("/skills/:id", authenticated, anyRole, cfg.Skills.Update)
	app.Delete("/skills/:id", authenticated, anyRole, cfg.Skills.Delete)

	// Experiences (public reads)
	app.Post("/experiences", authenticated, anyRole, cfg.Experiences.Create)
	app.Get("/experiences/:id", cfg.Experiences.Get)
	app.Get("/experiences", cfg.Experiences.List)
	app.Patch("/experiences/:id", authenticated, anyRole, cfg.Experiences.Update)
	app.Delete("/experiences/:id", authenticated, anyRole, cfg.Experiences.Delete)
}

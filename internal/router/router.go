package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/scholaris/sis-portal-api/internal/config"
	"github.com/scholaris/sis-portal-api/internal/handler"
	"github.com/scholaris/sis-portal-api/internal/middleware"
	"github.com/scholaris/sis-portal-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AccessCodeHandler   *handler.AccessCodeHandler
	RegistrationHandler *handler.RegistrationHandler
	YearLevelHandler    *handler.YearLevelHandler
	StudentHandler      *handler.StudentHandler
	PolicyHandler       *handler.PolicyHandler
	ReportHandler       *handler.ReportHandler
	SystemLogHandler    *handler.SystemLogHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Public forms surface: access-code validation is throttled against
	// guessing, submission requires a valid code.
	forms := api.Group("/forms")
	if deps.AccessCodeHandler != nil {
		codeGroup := forms.Group("/access-code", middleware.RateLimit("forms_access_code", 10, time.Minute))
		deps.AccessCodeHandler.RegisterPublic(codeGroup)
	}
	if deps.RegistrationHandler != nil {
		deps.RegistrationHandler.RegisterPublic(forms.Group("/registrations"))
	}

	// Registrar surface: registration decisions.
	if deps.RegistrationHandler != nil {
		registrar := api.Group("/registrar", jwtMiddleware,
			middleware.RequireRole(middleware.RoleRegistrar, middleware.RoleAdmin))
		deps.RegistrationHandler.Register(registrar.Group("/registrations"))
	}

	// Admin surface.
	admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole(middleware.RoleAdmin))
	if deps.YearLevelHandler != nil {
		deps.YearLevelHandler.Register(admin.Group("/year-levels"))
	}
	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(admin.Group("/students"))
	}
	if deps.PolicyHandler != nil {
		deps.PolicyHandler.Register(admin.Group("/policy"))
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(admin.Group("/reports"))
	}
	if deps.SystemLogHandler != nil {
		deps.SystemLogHandler.Register(admin.Group("/logs"))
	}
	if deps.AccessCodeHandler != nil {
		deps.AccessCodeHandler.Register(admin.Group("/access-codes"))
	}
}

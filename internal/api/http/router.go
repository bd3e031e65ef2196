package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/connect-inmobiliaria/crm-service/internal/api/http/handlers"
	"github.com/connect-inmobiliaria/crm-service/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Sessions   *handlers.SessionHandler
	Leads      *handlers.LeadsHandler
	Properties *handlers.PropertiesHandler
	Stats      *handlers.StatsHandler
	Valuation  *handlers.ValuationHandler
	Chat       *handlers.ChatHandler
	Gate       *session.Middleware
}

// RegisterRoutes wires HTTP routes. The CRM group sits behind the session
// gate; everything else is the public site surface.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	sessions := api.Group("/session")
	sessions.Post("/", cfg.Sessions.Create)
	sessions.Get("/:id", cfg.Sessions.Get)
	sessions.Post("/:id/navigate", cfg.Sessions.Navigate)
	sessions.Post("/:id/challenge", cfg.Sessions.Challenge)
	sessions.Post("/:id/challenge/dismiss", cfg.Sessions.DismissChallenge)
	sessions.Post("/:id/logout", cfg.Sessions.Logout)
	sessions.Post("/:id/select-property", cfg.Sessions.SelectProperty)

	api.Post("/leads", cfg.Leads.Create)
	api.Get("/properties", cfg.Properties.List)
	api.Get("/properties/:id", cfg.Properties.Get)
	api.Get("/properties/:id/advice", cfg.Properties.Advice)
	api.Get("/cadastral/:parcelId", cfg.Properties.LookupParcel)
	api.Post("/valuation", cfg.Valuation.Run)
	api.Post("/chat", cfg.Chat.Chat)

	crm := api.Group("", cfg.Gate.RequireUnlocked)
	crm.Get("/leads", cfg.Leads.List)
	crm.Get("/leads/board", cfg.Leads.Board)
	crm.Get("/leads/:id/activity", cfg.Leads.Activity)
	crm.Patch("/leads/by-email/:email", cfg.Leads.UpdateStatusByEmail)
	crm.Patch("/leads/:id/status", cfg.Leads.UpdateStatusByID)
	crm.Get("/stats", cfg.Stats.Get)
	crm.Post("/properties", cfg.Properties.Publish)
	crm.Get("/properties/:id/cadastral", cfg.Properties.Cadastral)
}

package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/KataCreate/report-sys/internal/auth"
	"github.com/KataCreate/report-sys/internal/handler"
	"github.com/KataCreate/report-sys/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Report  *handler.ReportHandler
	Channel *handler.ChannelHandler
	Auth    *handler.AuthHandler
	Admin   *handler.AdminHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, identity auth.Identity, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics stay outside the authenticated surface
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api")

	// Session issuance is the one unauthenticated API surface
	api.Post("/auth/signup", h.Auth.SignUp)
	api.Post("/auth/signin", h.Auth.SignIn)

	api.Use(middleware.NewRequireAuth(identity))

	// Report routes
	api.Post("/reports/generate", h.Report.Generate)
	api.Get("/reports/stats", h.Report.Stats)
	api.Get("/reports/:id/videos", h.Report.Videos)
	api.Get("/reports/:id", h.Report.Get)
	api.Delete("/reports/:id", h.Report.Delete)
	api.Get("/reports", h.Report.List)

	// Channel routes
	api.Post("/channels", h.Channel.Add)
	api.Get("/channels", h.Channel.List)
	api.Patch("/channels/:channelId", h.Channel.SetActive)
	api.Delete("/channels/:channelId", h.Channel.Delete)

	// Admin routes
	api.Get("/admin/users", h.Admin.ListUsers)
	api.Delete("/admin/users/:id", h.Admin.DeleteUser)
}
